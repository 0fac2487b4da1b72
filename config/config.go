package config

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ENV_PREFIX is prepended to environment variable names.
const ENV_PREFIX = "YB60"

const (
	KEY_VERBOSE    = "verbose"
	KEY_LOG_FILE   = "log.file"
	KEY_LOG_LEVEL  = "log.level"
	KEY_PROMPT     = "monitor.prompt"
	KEY_STEP_LIMIT = "monitor.step_limit"
	KEY_WATCH      = "monitor.watch"
)

var _defaults = map[string]any{
	KEY_VERBOSE:    false,
	KEY_LOG_FILE:   "",
	KEY_LOG_LEVEL:  "info",
	KEY_PROMPT:     "> ",
	KEY_STEP_LIMIT: 0,
	KEY_WATCH:      false,
}

// Flag names, and the keys they set.
var _flag_keys = map[string]string{
	"verbose":    KEY_VERBOSE,
	"log-file":   KEY_LOG_FILE,
	"log-level":  KEY_LOG_LEVEL,
	"prompt":     KEY_PROMPT,
	"step-limit": KEY_STEP_LIMIT,
	"watch":      KEY_WATCH,
}

// Config is the decoded configuration.
type Config struct {
	Verbose   bool   // Verbose logging.
	LogFile   string // Log file, or empty for stderr.
	LogLevel  string // hclog level name.
	Prompt    string // Monitor prompt.
	StepLimit int    // Instructions per session, 0 for unlimited.
	Watch     bool   // Reload the object file when it changes.
}

// New returns a viper instance with the defaults and environment bound.
func New() (v *viper.Viper) {
	v = viper.New()
	for key, value := range _defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return
}

// AddFlags adds the configuration flags to a flag set.
func AddFlags(flags *pflag.FlagSet) {
	flags.BoolP("verbose", "v", false, "verbose logging")
	flags.String("log-file", "", "log to a rotated file instead of stderr")
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.String("prompt", "> ", "monitor prompt")
	flags.Int("step-limit", 0, "maximum instructions per run, 0 for no limit")
	flags.Bool("watch", false, "reload the object file when it changes")
}

// BindFlags binds every known flag of the set to its key.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) (err error) {
	flags.VisitAll(func(flag *pflag.Flag) {
		key, ok := _flag_keys[flag.Name]
		if !ok {
			return
		}
		err = errors.Join(err, v.BindPFlag(key, flag))
	})
	return
}

// Load reads a configuration file, if 'path' is set.
func Load(v *viper.Viper, path string) (err error) {
	if len(path) == 0 {
		return
	}

	v.SetConfigFile(path)
	err = v.ReadInConfig()
	if err != nil {
		err = errors.Join(ErrConfigFile, err)
		return
	}

	return
}

// Decode returns the current settings.
func Decode(v *viper.Viper) (cfg Config) {
	cfg = Config{
		Verbose:   v.GetBool(KEY_VERBOSE),
		LogFile:   v.GetString(KEY_LOG_FILE),
		LogLevel:  v.GetString(KEY_LOG_LEVEL),
		Prompt:    v.GetString(KEY_PROMPT),
		StepLimit: v.GetInt(KEY_STEP_LIMIT),
		Watch:     v.GetBool(KEY_WATCH),
	}
	return
}
