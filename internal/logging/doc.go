// Package logging configures the process-wide logrus logger.
//
// Levels map to CLI flags:
//
//   - default: warnings and errors only
//   - --verbose: info and above
//   - --debug: everything, including per-chunk transfer details
//
// Packages obtain field loggers with For, e.g.
//
//	logging.For("fetch").WithField("url", url).Info("fetch started")
package logging
