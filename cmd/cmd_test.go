package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/stsearch/internal/batch"
	"github.com/gnoswap-labs/stsearch/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stsearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--no-color"))
	err := root.Execute()
	return out.String(), err
}

func TestParseCmd(t *testing.T) {
	t.Parallel()
	cfg := writeConfig(t, "format: text\n")

	out, err := execute(t, "", "parse", "--config", cfg, "foo($_, ...)")
	require.NoError(t, err)

	expected := strings.Join([]string{
		"<arg 1> (5 elements)",
		`  1:1    Text          "foo("`,
		"  1:5    Metavariable  $_",
		`  1:7    Text          ", "`,
		"  1:9    Ellipsis      ...",
		`  1:12   Text          ")"`,
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestParseCmd_JSON(t *testing.T) {
	t.Parallel()
	cfg := writeConfig(t, "format: text\n")

	out, err := execute(t, "", "parse", "--config", cfg, "--format", "json", "......", "$_$_")
	require.NoError(t, err)

	var reports []struct {
		Name     string `json:"name"`
		Elements []struct {
			Kind  string `json:"kind"`
			Value string `json:"value"`
		} `json:"elements"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)

	assert.Equal(t, "<arg 1>", reports[0].Name)
	require.Len(t, reports[0].Elements, 2)
	assert.Equal(t, "ellipsis", reports[0].Elements[0].Kind)
	assert.Equal(t, "ellipsis", reports[0].Elements[1].Kind)

	require.Len(t, reports[1].Elements, 2)
	assert.Equal(t, "metavariable", reports[1].Elements[0].Kind)
	assert.Equal(t, "$_", reports[1].Elements[1].Value)
}

func TestParseCmd_Stdin(t *testing.T) {
	t.Parallel()
	cfg := writeConfig(t, "format: yaml\n")

	out, err := execute(t, "x...\n", "parse", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "<stdin>")
	assert.Contains(t, out, "kind: ellipsis")
}

func TestParseCmd_StdinLineBreaks(t *testing.T) {
	t.Parallel()
	cfg := writeConfig(t, "format: text\n")

	tests := []struct {
		name  string
		stdin string
		want  string
	}{
		{name: "crlf", stdin: "foo\r\n", want: `  1:1    Text          "foo"`},
		{name: "lf", stdin: "foo\n", want: `  1:1    Text          "foo"`},
		{name: "bare cr is kept", stdin: "foo\r", want: `  1:1    Text          "foo\r"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := execute(t, tt.stdin, "parse", "--config", cfg)
			require.NoError(t, err)
			assert.Equal(t, "<stdin> (1 element)\n"+tt.want+"\n", out)
		})
	}
}

func TestParseCmd_Files(t *testing.T) {
	t.Parallel()
	cfg := writeConfig(t, "format: text\n")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pat"), []byte("$_\n"), 0o644))

	out, err := execute(t, "", "parse", "--config", cfg, "--file", dir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "a.pat")+" (1 element)")
	assert.Contains(t, out, "Metavariable  $_")
}

func TestParseCmd_Empty(t *testing.T) {
	t.Parallel()
	cfg := writeConfig(t, "format: text\n")

	out, err := execute(t, "", "parse", "--config", cfg, "ok", "")
	require.ErrorIs(t, err, errPatternsFailed)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out, "error: empty pattern\n --> <arg 2>\n")
	assert.Contains(t, out, "<arg 1> (1 element)")
}

func TestParseCmd_UnknownFormat(t *testing.T) {
	t.Parallel()
	cfg := writeConfig(t, "format: text\n")

	_, err := execute(t, "", "parse", "--config", cfg, "--format", "xml", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
}

func TestParseCmd_BadConfig(t *testing.T) {
	t.Parallel()
	cfg := writeConfig(t, "dialect: cobol\n")

	_, err := execute(t, "", "parse", "--config", cfg, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown dialect "cobol"`)
}

func TestCheckCmd(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "rules"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules", "call.pat"), []byte("foo(...)\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules", "empty.pat"), []byte("\n"), 0o644))

	t.Run("failure", func(t *testing.T) {
		t.Parallel()
		cfg := writeConfig(t, "patterns:\n  - name: any\n    pattern: \"$_(...)\"\n")

		out, err := execute(t, "", "check", "--config", cfg, filepath.Join(dir, "rules"))
		require.ErrorIs(t, err, errPatternsFailed)
		assert.Contains(t, out, "error: empty pattern\n --> "+filepath.Join(dir, "rules", "empty.pat"))
		assert.NotContains(t, out, "call.pat")
		assert.True(t, strings.HasSuffix(out, "3 patterns checked, 1 failed\n"), out)
	})

	t.Run("success from include", func(t *testing.T) {
		t.Parallel()
		cfg := writeConfig(t, "include:\n  - "+filepath.Join(dir, "rules", "call.pat")+"\n")

		out, err := execute(t, "", "check", "--config", cfg)
		require.NoError(t, err)
		assert.Equal(t, "1 pattern checked, 0 failed\n", out)
	})

	t.Run("path matching nothing", func(t *testing.T) {
		t.Parallel()
		cfg := writeConfig(t, "format: text\n")

		_, err := execute(t, "", "check", "--config", cfg, filepath.Join(dir, "rules", "*.pet"))
		require.ErrorIs(t, err, batch.ErrNoMatch)
	})

	t.Run("include matching nothing is skipped", func(t *testing.T) {
		t.Parallel()
		cfg := writeConfig(t, "patterns:\n  - name: any\n    pattern: \"...\"\ninclude:\n  - "+filepath.Join(dir, "rules", "*.pet")+"\n")

		out, err := execute(t, "", "check", "--config", cfg)
		require.NoError(t, err)
		assert.Equal(t, "1 pattern checked, 0 failed\n", out)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		cfg := writeConfig(t, "format: json\n")

		out, err := execute(t, "", "check", "--config", cfg, filepath.Join(dir, "rules", "call.pat"))
		require.NoError(t, err)
		assert.Contains(t, out, `"source": "foo(...)"`)
		assert.NotContains(t, out, "checked")
	})
}

func TestLowerCmd(t *testing.T) {
	t.Parallel()
	cfg := writeConfig(t, "format: text\n")

	out, err := execute(t, "", "lower", "--config", cfg, "foo($_, ...)")
	require.NoError(t, err)
	assert.Equal(t, "<arg 1>\nfoo($_, /**/)\n", out)

	out, err = execute(t, "", "lower", "--config", cfg, "--dialect", "js", "--format", "json", "...")
	require.NoError(t, err)
	assert.Contains(t, out, `"lowered": "/**/"`)

	_, err = execute(t, "", "lower", "--config", cfg, "--dialect", "cobol", "...")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: javascript")
}

func TestInitCmd(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "new.yaml")

	out, err := execute(t, "", "init", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "Configuration file created: "+path+"\n", out)

	conf, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "javascript", conf.Dialect)
	require.Len(t, conf.Patterns, 1)
	assert.Equal(t, "$_(...)", conf.Patterns[0].Pattern)

	_, err = execute(t, "", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "", "init", "--config", path, "--force")
	require.NoError(t, err)
}
