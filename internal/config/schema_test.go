package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSchema(t *testing.T) {
	s := DefaultSchema()
	for _, key := range []string{KeyLogLevel, KeyLogFile, KeyHome, KeyJobsWorkers, KeyColor, KeyStorageBackend} {
		assert.NotNil(t, s.Lookup("", key), key)
	}
	assert.Equal(t, []string{"build"}, s.Sections())
	assert.True(t, s.IsKnown("build", "copy"))
	assert.True(t, s.IsKnown("build", KeyColor))
	assert.False(t, s.IsKnown("", "copy"))
	assert.Nil(t, s.Lookup("nope", "copy"))
}

func TestSchema_Resolve(t *testing.T) {
	s := DefaultSchema()
	c := NewConfig()

	t.Setenv("UATHELPER_LOG_LEVEL", "")
	assert.Equal(t, "", s.Resolve(c, KeyLogLevel), "a set but empty env var still wins")

	c.SetGlobalOption(KeyJobsWorkers, "3")
	assert.Equal(t, "3", s.Resolve(c, KeyJobsWorkers))
	assert.Equal(t, 3, s.ResolveInt(c, KeyJobsWorkers))

	c.SetGlobalOption(KeyJobsWorkers, "lots")
	assert.Equal(t, 1, s.ResolveInt(c, KeyJobsWorkers))

	assert.Equal(t, "fs", s.Resolve(c, KeyStorageBackend))
	assert.Equal(t, "", s.Resolve(c, "unregistered"))
	assert.Equal(t, 0, s.ResolveInt(c, "unregistered"))
}

func TestSchema_ResolveEnv(t *testing.T) {
	s := DefaultSchema()
	c := NewConfig()
	c.SetGlobalOption(KeyColor, "always")
	t.Setenv("UATHELPER_COLOR", "never")
	assert.Equal(t, "never", s.Resolve(c, KeyColor))
}

func TestSchema_RegisterOverwrites(t *testing.T) {
	s := NewSchema()
	s.Register(ConfigOption{Key: "a", Default: "1"})
	s.Register(ConfigOption{Key: "a", Default: "2"})
	require.NotNil(t, s.Lookup("", "a"))
	assert.Equal(t, "2", s.Lookup("", "a").Default)
}

func TestSchema_UnknownType(t *testing.T) {
	s := NewSchema()
	s.Register(ConfigOption{Key: "a", Type: "weird"})
	c := NewConfig()
	c.SetGlobalOption("a", "x")
	issues := ValidateConfig(c, s)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], `unknown option type "weird"`)
}

func TestSchema_FormatHelp(t *testing.T) {
	help := DefaultSchema().FormatHelp()
	assert.True(t, strings.HasPrefix(help, "Global Options:\n"))
	assert.Contains(t, help, "one of: debug|info|warn|error, default: info, env: UATHELPER_LOG_LEVEL")
	assert.Contains(t, help, "type: int, default: 1")
	assert.Contains(t, help, "\n[build] Options:\n")
}
