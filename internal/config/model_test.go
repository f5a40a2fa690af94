package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/technige/n4/internal/cypher"
	"github.com/technige/n4/internal/render"
)

func TestDefaults_AreValid(t *testing.T) {
	m := Defaults()

	require.NoError(t, m.Validate())
	assert.Equal(t, cypher.DefaultConfig(), m.EncoderConfig())

	f, err := m.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, render.DefaultFormat(render.Table), f)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvURI:      "neo4j://db.example.com:7687",
		EnvPassword: "",
	}
	m := Defaults()

	m.ApplyEnv(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})

	assert.Equal(t, "neo4j://db.example.com:7687", m.Connection.URI)
	assert.Equal(t, "neo4j", m.Connection.User, "unset variables keep the current value")
	assert.Equal(t, "", m.Connection.Password, "an empty password is still a password")
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	m := Defaults()
	m.Connection.URI = ""
	m.Output.PageSize = 0
	m.Encoder.Quote = "`"
	m.Log.Level = "trace"
	m.Log.Format = "xml"

	err := m.Validate()

	require.Error(t, err)
	for _, want := range []string{
		"connection: uri cannot be empty",
		"output: page size must be positive, got 0",
		"encoder: unsupported quote",
		`log: invalid level "trace"`,
		`log: invalid format "xml"`,
	} {
		assert.ErrorContains(t, err, want)
	}
}

func TestValidate_UnknownFormat(t *testing.T) {
	m := Defaults()
	m.Output.Format = "yaml"

	assert.ErrorContains(t, m.Validate(), `output: unknown output format "yaml"`)
}
