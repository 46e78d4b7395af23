package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var setupOnce sync.Once //nolint:gochecknoglobals // logrus is process-wide

// Options selects verbosity and output for Setup.
type Options struct {
	Verbose bool
	Debug   bool
	Output  io.Writer
}

// Level returns the logrus level implied by the options.
func (o Options) Level() logrus.Level {
	switch {
	case o.Debug:
		return logrus.DebugLevel
	case o.Verbose:
		return logrus.InfoLevel
	default:
		return logrus.WarnLevel
	}
}

// Setup configures the standard logrus logger. Only the first call configures
// the formatter and output; the level is applied on every call.
func Setup(opts Options) {
	setupOnce.Do(func() {
		out := opts.Output
		if out == nil {
			out = os.Stderr
		}
		logrus.SetOutput(out)
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: false,
			FullTimestamp:    true,
		})
	})
	logrus.SetLevel(opts.Level())
}

// For returns a logger tagged with the component name.
func For(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
