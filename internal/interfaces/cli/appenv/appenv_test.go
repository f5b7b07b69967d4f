package appenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapEnvToGinMode(t *testing.T) {
	tests := map[string]string{
		"production":  "release",
		"prod":        "release",
		"development": "debug",
		"test":        "test",
		"release":     "release",
		"staging":     "debug",
	}
	for env, want := range tests {
		assert.Equal(t, want, MapEnvToGinMode(env), env)
	}
}

func TestResolveEnv(t *testing.T) {
	t.Setenv("ENV", "")
	assert.Equal(t, "test", ResolveEnv("test"))

	t.Setenv("ENV", "production")
	assert.Equal(t, "production", ResolveEnv("test"))
}
