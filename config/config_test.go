package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func TestConfigDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg := Decode(New())
	assert.Equal(Config{
		LogLevel: "info",
		Prompt:   "> ",
	}, cfg)
}

func TestConfigEnv(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("YB60_MONITOR_STEP_LIMIT", "5")
	t.Setenv("YB60_VERBOSE", "true")

	cfg := Decode(New())
	assert.Equal(5, cfg.StepLimit)
	assert.True(cfg.Verbose)
}

func TestConfigFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "yb60.yaml")
	text := "log:\n  level: debug\nmonitor:\n  prompt: \"yb> \"\n  step_limit: 12\n"
	assert.NoError(os.WriteFile(path, []byte(text), 0o644))

	v := New()
	assert.NoError(Load(v, path))

	cfg := Decode(v)
	assert.Equal("debug", cfg.LogLevel)
	assert.Equal("yb> ", cfg.Prompt)
	assert.Equal(12, cfg.StepLimit)
	assert.False(cfg.Watch)

	err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(err, ErrConfigFile)

	assert.NoError(Load(v, ""))
}

func TestConfigFlags(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("YB60_MONITOR_STEP_LIMIT", "5")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(flags)
	flags.Int("other", 0, "not a configuration flag")
	assert.NoError(flags.Parse([]string{"-v", "--step-limit", "7", "--log-file", "yb60.log"}))

	v := New()
	assert.NoError(BindFlags(v, flags))

	cfg := Decode(v)
	assert.True(cfg.Verbose)
	assert.Equal(7, cfg.StepLimit)
	assert.Equal("yb60.log", cfg.LogFile)
	assert.Equal("> ", cfg.Prompt)
	assert.False(v.IsSet("other"))
}
