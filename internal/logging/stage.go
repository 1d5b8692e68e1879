package logging

// Stage runs one pipeline step under Start/Complete/Error log lines,
// recording its duration on logData under the stage name. The error from fn
// is returned unchanged.
func Stage(name string, logData *LogData, fn func() error) error {
	logData.Log().Infof("Stage.%v.Start", name)

	endTimer := logData.AddTiming(name)
	err := fn()
	endTimer()

	if err != nil {
		logData.Log().WithError(err).Errorf("Stage.%v.Error", name)
		return err
	}

	logData.Log().Infof("Stage.%v.Complete", name)
	return nil
}
