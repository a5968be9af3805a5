package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustic-ai/codeprism-sub002/internal/core/domain"
)

func TestParseJSON(t *testing.T) {
	parser := New()

	t.Run("nested keys use dotted paths", func(t *testing.T) {
		content := `{"database": {"host": "localhost", "port": 5432}}`

		chunks := parser.Parse("app.json", content, domain.ConfigJSON)

		require.Len(t, chunks, 2)
		assert.Equal(t, "database.host: localhost", chunks[0].Content)
		assert.Equal(t, "database.host", chunks[0].Metadata["key_path"])
		assert.Equal(t, "string", chunks[0].Metadata["value_type"])
		assert.Equal(t, "database.port: 5432", chunks[1].Content)
		assert.Equal(t, "number", chunks[1].Metadata["value_type"])
	})

	t.Run("boolean values", func(t *testing.T) {
		content := `{"debug": true}`

		chunks := parser.Parse("app.json", content, domain.ConfigJSON)

		require.Len(t, chunks, 1)
		assert.Equal(t, "debug: true", chunks[0].Content)
		assert.Equal(t, "boolean", chunks[0].Metadata["value_type"])
	})

	t.Run("array elements use bracketed paths", func(t *testing.T) {
		content := `{"hosts": ["alpha", "beta"]}`

		chunks := parser.Parse("app.json", content, domain.ConfigJSON)

		require.Len(t, chunks, 2)
		assert.Equal(t, "hosts[0]: alpha", chunks[0].Content)
		assert.Equal(t, "hosts[1]: beta", chunks[1].Content)
	})

	t.Run("null values are skipped", func(t *testing.T) {
		content := `{"present": "yes", "absent": null}`

		chunks := parser.Parse("app.json", content, domain.ConfigJSON)

		require.Len(t, chunks, 1)
		assert.Equal(t, "present: yes", chunks[0].Content)
	})

	t.Run("object keys are walked in sorted order", func(t *testing.T) {
		content := `{"zeta": "1", "alpha": "2"}`

		chunks := parser.Parse("app.json", content, domain.ConfigJSON)

		require.Len(t, chunks, 2)
		assert.Equal(t, "alpha: 2", chunks[0].Content)
		assert.Equal(t, "zeta: 1", chunks[1].Content)
	})

	t.Run("invalid json degrades to one flagged chunk", func(t *testing.T) {
		content := `{"broken": `

		chunks := parser.Parse("app.json", content, domain.ConfigJSON)

		require.Len(t, chunks, 1)
		assert.Equal(t, content, chunks[0].Content)
		assert.Equal(t, true, chunks[0].Metadata["parse_error"])
	})

	t.Run("number literal format is preserved", func(t *testing.T) {
		content := `{"ratio": 0.25}`

		chunks := parser.Parse("app.json", content, domain.ConfigJSON)

		require.Len(t, chunks, 1)
		assert.Equal(t, "ratio: 0.25", chunks[0].Content)
	})
}

func TestParseYAML(t *testing.T) {
	parser := New()

	t.Run("extracts key value lines", func(t *testing.T) {
		content := "# comment\nname: demo\nport: 8080\n\nnested:\n  inner: value\n"

		chunks := parser.Parse("app.yaml", content, domain.ConfigYAML)

		require.Len(t, chunks, 3)
		assert.Equal(t, "name: demo", chunks[0].Content)
		assert.Equal(t, "port: 8080", chunks[1].Content)
		// Keys opening nested blocks carry no inline value and are skipped;
		// nested keys keep only their own name.
		assert.Equal(t, "inner: value", chunks[2].Content)
		assert.Equal(t, "inner", chunks[2].Metadata["key"])
	})

	t.Run("line spans are recorded", func(t *testing.T) {
		content := "first: 1\nsecond: 2\n"

		chunks := parser.Parse("app.yaml", content, domain.ConfigYAML)

		require.Len(t, chunks, 2)
		assert.Equal(t, 1, chunks[0].Span.StartLine)
		assert.Equal(t, 2, chunks[1].Span.StartLine)
	})
}

func TestParseTOML(t *testing.T) {
	parser := New()
	content := "# config\n[server]\nhost = \"localhost\"\nport = 8080\n"

	chunks := parser.Parse("app.toml", content, domain.ConfigTOML)

	require.Len(t, chunks, 3)
	assert.Equal(t, "server", chunks[0].Content)
	assert.Equal(t, "section", chunks[0].Metadata["element_type"])
	assert.Equal(t, `host = "localhost"`, chunks[1].Content)
	assert.Equal(t, "port = 8080", chunks[2].Content)
}

func TestParseKeyValue(t *testing.T) {
	parser := New()

	t.Run("env files", func(t *testing.T) {
		content := "# secrets\nAPI_KEY=abc123\nDEBUG=true\n"

		chunks := parser.Parse(".env", content, domain.ConfigEnv)

		require.Len(t, chunks, 2)
		assert.Equal(t, "API_KEY=abc123", chunks[0].Content)
		assert.Equal(t, "API_KEY", chunks[0].Metadata["key"])
		assert.Equal(t, "env", chunks[0].Metadata["config_type"])
	})

	t.Run("ini semicolon comments are skipped", func(t *testing.T) {
		content := "; comment\nkey=value\n"

		chunks := parser.Parse("app.ini", content, domain.ConfigINI)

		require.Len(t, chunks, 1)
		assert.Equal(t, "key=value", chunks[0].Content)
	})

	t.Run("whitespace around key and value is trimmed", func(t *testing.T) {
		content := "  spaced  =  out  \n"

		chunks := parser.Parse("app.properties", content, domain.ConfigProperties)

		require.Len(t, chunks, 1)
		assert.Equal(t, "spaced=out", chunks[0].Content)
	})
}

func TestParseXML(t *testing.T) {
	parser := New()
	content := "<config><host>localhost</host><port>8080</port><empty>  </empty></config>"

	chunks := parser.Parse("app.xml", content, domain.ConfigXML)

	require.Len(t, chunks, 2)
	assert.Equal(t, "localhost", chunks[0].Content)
	assert.Equal(t, "host", chunks[0].Metadata["tag_name"])
	assert.Equal(t, "8080", chunks[1].Content)
}
