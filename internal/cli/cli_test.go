package cli_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/joi/internal/cli"
)

func run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := cli.Run(append([]string{"--no-color"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestDemo(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		out  string
	}{
		{name: "example record", code: cli.ExitOK, out: "All good ~;)\n"},
		{name: "age above maximum", args: []string{"--age", "70"}, code: cli.ExitInvalid, out: "invalid: age: must be at most 65, got 70\n"},
		{name: "id not less than limit", args: []string{"--id", "100"}, code: cli.ExitInvalid, out: "invalid: id: must be less than 100, got 100\n"},
		{name: "lowercase name", args: []string{"--name", "leonardo"}, code: cli.ExitInvalid, out: "invalid: name: pattern validation failed\n"},
		{name: "optional email pattern", args: []string{"--email", "nope"}, code: cli.ExitOK, out: "All good ~;)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := run(t, "", append([]string{"demo"}, tt.args...)...)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.out, out)
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		stdin string
		code  int
		out   string
	}{
		{stdin: "Leonardo\n", code: cli.ExitOK, out: "All good ~;)\n"},
		{stdin: "Leonardo", code: cli.ExitOK, out: "All good ~;)\n"},
		{stdin: "leonardo\n", code: cli.ExitInvalid, out: "invalid: name: pattern validation failed\n"},
		{stdin: "", code: cli.ExitInvalid, out: "invalid: name: is required\n"},
		{stdin: strings.Repeat("a", 32) + "\n", code: cli.ExitInvalid, out: "invalid: name: must be at most 31 characters long\n"},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.stdin), func(t *testing.T) {
			code, out, _ := run(t, tt.stdin, "name")
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.out, out)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid json record", func(t *testing.T) {
		code, out, _ := run(t, "", "validate", "-f", "testdata/schemas.yaml", "-s", "user", "-r", "testdata/user.json")
		assert.Equal(t, cli.ExitOK, code)
		assert.Equal(t, "All good ~;)\n", out)
	})

	t.Run("invalid yaml record", func(t *testing.T) {
		code, out, _ := run(t, "", "validate", "-f", "testdata/schemas.yaml", "-s", "user", "-r", "testdata/user_invalid.yaml")
		assert.Equal(t, cli.ExitInvalid, code)
		assert.Equal(t, "invalid: age: must be at most 65, got 70\n", out)
	})

	t.Run("record from stdin in german", func(t *testing.T) {
		code, out, _ := run(t, `{"host": "10.0.0.1", "port": 0}`, "validate", "-f", "testdata/schemas.yaml", "-s", "server", "--lang", "de")
		assert.Equal(t, cli.ExitInvalid, code)
		assert.Equal(t, "invalid: port: muss mindestens 1 sein, erhalten 0\n", out)
	})

	t.Run("malformed schema", func(t *testing.T) {
		code, _, stderr := run(t, "{}", "validate", "-f", "testdata/broken.yaml", "-s", "user")
		assert.Equal(t, cli.ExitSchemaError, code)
		assert.Contains(t, stderr, "invalid schema")
	})

	t.Run("unknown schema", func(t *testing.T) {
		code, _, stderr := run(t, "{}", "validate", "-f", "testdata/schemas.yaml", "-s", "missing")
		assert.Equal(t, cli.ExitInvalid, code)
		assert.Contains(t, stderr, "schema not found")
	})

	t.Run("record is not an object", func(t *testing.T) {
		code, _, stderr := run(t, "[1]", "validate", "-f", "testdata/schemas.yaml", "-s", "user")
		assert.Equal(t, cli.ExitInvalid, code)
		assert.Contains(t, stderr, "decode record")
	})

	t.Run("schema flag is required", func(t *testing.T) {
		code, _, stderr := run(t, "{}", "validate", "-f", "testdata/schemas.yaml")
		assert.Equal(t, cli.ExitInvalid, code)
		assert.Contains(t, stderr, "schema")
	})
}

func TestSchemas(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		code, out, _ := run(t, "", "schemas", "-f", "testdata/schemas.yaml")
		require.Equal(t, cli.ExitOK, code)
		assert.Equal(t, "server\n  host\n  port\nuser - Registered user\n  id\n  name\n  age\n  email\n", out)
	})

	t.Run("json schema of one record", func(t *testing.T) {
		code, out, _ := run(t, "", "schemas", "user", "-f", "testdata/schemas.yaml", "--json-schema")
		require.Equal(t, cli.ExitOK, code)

		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "user", doc["title"])
	})

	t.Run("json schema of all records", func(t *testing.T) {
		code, out, _ := run(t, "", "schemas", "-f", "testdata/schemas.yaml", "--json-schema")
		require.Equal(t, cli.ExitOK, code)

		var docs map[string]map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &docs))
		assert.Len(t, docs, 2)
		assert.Equal(t, "server", docs["server"]["title"])
	})

	t.Run("unknown record", func(t *testing.T) {
		code, _, stderr := run(t, "", "schemas", "missing", "-f", "testdata/schemas.yaml")
		assert.Equal(t, cli.ExitInvalid, code)
		assert.Contains(t, stderr, "schema not found")
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, cli.ExitOK, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitInvalid, cli.ExitCode(assert.AnError))
}

func TestVersion(t *testing.T) {
	cli.SetBuildInfo("1.2.3", "abc", "today")
	code, out, _ := run(t, "", "--version")
	assert.Equal(t, cli.ExitOK, code)
	assert.Equal(t, "1.2.3 (abc) today\n", out)
}
