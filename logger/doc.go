// Package logger provides structured logging for pariter using zerolog.
//
// Loggers are component-scoped: the scheduler logs through
// logger.Get("scheduler"), and every drive derives a child logger carrying
// its drive_id so all lines of one parallel run can be correlated.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("scheduler").WithDrive(id)
//	log.Debug("drive started", logger.Fields(logger.FieldLength, 1024))
package logger
