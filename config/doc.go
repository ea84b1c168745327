// Package config loads logger tree settings from YAML and applies them.
//
// A config file looks like this:
//
//	hierarchical: true
//	level: INFO
//	stack_trace_level: ERROR
//	loggers:
//	  - name: db
//	    level: DEBUG
//	  - name: http.access
//	    level: WARN
//
// Apply switches the mode, sets the root level and the stack trace
// threshold, and sets the level of every listed logger. Watch reapplies a
// file each time it changes on disk.
package config
