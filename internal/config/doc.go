// Package config loads the TOML configuration of selcore and watches it
// for changes.
//
// A configuration file has two sections:
//
//	[editor]
//	tabstop = 8
//	indentwidth = 4
//	aligntab = false
//	incsearch = true
//	max_history = 1000
//
//	[log]
//	level = "info"
//	file = ""
//	development = false
//
// Missing keys keep their default value; unknown keys are rejected.
package config
