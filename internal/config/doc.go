// Package config loads the monitor configuration from a TOML file and
// applies MONITOR_* environment overrides on top of the file values.
//
// The coercion helpers (ParseBool, ParseKeyValues, ParseList, ParseInt)
// interpret the loose value vocabulary that monitor configurations have
// historically used for plugin-provided option strings.
package config
