// Package config collects the yb60 settings from defaults, an optional
// configuration file, YB60_ environment variables and command line flags.
package config
