package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/mcncl/jsonpc/internal/config"
	"github.com/mcncl/jsonpc/internal/errors"
	"github.com/mcncl/jsonpc/internal/models"
	"github.com/mcncl/jsonpc/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_SimpleJSON(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempJSON(t, `{"name": "John", "age": 30, "active": true}`)
	CLI.Output = filepath.Join(t.TempDir(), "out.json")

	ctx := &Context{
		Debug:  false,
		Config: config.NewConfig(),
	}
	err := run(ctx)
	require.NoError(t, err)

	output, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)

	expected := "{\n  \"active\": true,\n  \"age\": 30,\n  \"name\": \"John\"\n}\n"
	assert.Equal(t, expected, string(output))
}

func TestRun_YAMLWithKeyCase(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Expr = `{"userName": "ada", "tags": ["x", null]}`
	CLI.Output = filepath.Join(t.TempDir(), "out.yaml")

	cfg := config.NewConfig()
	cfg.Output.Format = config.FormatYAML
	cfg.Output.KeyCase = config.KeyCaseSnake

	err := run(&Context{Config: cfg})
	require.NoError(t, err)

	output, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "tags:\n  - x\n  - null\nuser_name: ada\n", string(output))
}

func TestRun_NilConfigFallsBackToDefaults(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Expr = `[1, 2]`
	CLI.Output = filepath.Join(t.TempDir(), "out.json")

	ctx := &Context{}
	require.NoError(t, run(ctx))
	assert.Equal(t, config.FormatJSON, ctx.Config.Output.Format)
}

func TestRun_WithStats(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Expr = `{"a": [1, {"b": null}]}`
	CLI.Output = filepath.Join(t.TempDir(), "out.json")
	CLI.Stats = true

	err := run(&Context{Debug: true, Config: config.NewConfig()})
	require.NoError(t, err)
}

func captureDiagnostics(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	originalOut, originalNoColor := diagnostics, color.NoColor
	diagnostics, color.NoColor = &buf, true
	t.Cleanup(func() { diagnostics, color.NoColor = originalOut, originalNoColor })
	return &buf
}

func TestRun_VerboseReportsByteCounts(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	buf := captureDiagnostics(t)
	CLI.Expr = "  [1] \xff"
	CLI.Output = filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, run(&Context{Verbose: true, Config: config.NewConfig()}))
	assert.Contains(t, buf.String(), "[debug] parsed array value, 2 bytes left over")
	assert.Contains(t, buf.String(), "[verbose] consumed 5 of 7 bytes")
	assert.Contains(t, buf.String(), "[verbose] output: format=json indent=2 key_case=preserve show_remaining=true")
}

func TestRun_DebugWithoutVerbose(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	buf := captureDiagnostics(t)
	CLI.Expr = "null"
	CLI.Output = filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, run(&Context{Debug: true, Config: config.NewConfig()}))
	assert.Contains(t, buf.String(), "[debug] parsed null value")
	assert.NotContains(t, buf.String(), "[verbose]")

	buf.Reset()
	require.NoError(t, run(&Context{Config: config.NewConfig()}))
	assert.Empty(t, buf.String())
}

func TestRun_StrictRejectsTrailingInput(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Expr = `true false`

	cfg := config.NewConfig()
	cfg.Parsing.Strict = true

	err := run(&Context{Config: cfg})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTrailingInput)
}

func TestRun_LenientKeepsLeadingValue(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Expr = `true false`
	CLI.Output = filepath.Join(t.TempDir(), "out.txt")

	cfg := config.NewConfig()
	cfg.Output.Format = config.FormatText

	require.NoError(t, run(&Context{Config: cfg}))

	output, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "true\n", string(output))
}

func TestRun_UnsupportedFormat(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Expr = `null`

	cfg := config.NewConfig()
	cfg.Output.Format = "xml"

	err := run(&Context{Config: cfg})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)
	assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeFormat})
}

func TestParseInput_FromExpr(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	// the expression wins over a file that does not exist
	CLI.Expr = `  [1, "two"]`
	CLI.Input = "/non/existent/file.json"

	doc, err := parseInput(parser.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, models.KindArray, doc.RootKind)
	assert.Equal(t, models.JSONArray{1.0, "two"}, doc.Root)
}

func TestParseInput_FromFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempJSON(t, `{"user": {"name": "Alice", "id": 42}}`)

	doc, err := parseInput(parser.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, models.KindObject, doc.RootKind)
	assert.Equal(t, models.JSONObject{"user": models.JSONObject{"name": "Alice", "id": 42.0}}, doc.Root)
}

func TestParseInput_FromStdin(t *testing.T) {
	// Save original CLI state and stdin
	originalCLI := CLI
	originalStdin := os.Stdin
	defer func() {
		CLI = originalCLI
		os.Stdin = originalStdin
	}()

	// Clear input file to force stdin reading
	CLI.Input = ""
	CLI.Expr = ""

	// Create a pipe to simulate stdin
	jsonData := `[{"item": "apple"}, {"item": "banana"}]`
	r, w, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		defer func() { _ = w.Close() }()
		_, _ = w.WriteString(jsonData)
	}()

	os.Stdin = r
	defer func() { _ = r.Close() }()

	doc, err := parseInput(parser.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, models.KindArray, doc.RootKind)
	assert.Len(t, doc.Root, 2)
}

func TestParseInput_EmptyStdin(t *testing.T) {
	originalCLI := CLI
	originalStdin := os.Stdin
	defer func() {
		CLI = originalCLI
		os.Stdin = originalStdin
	}()

	CLI.Input = ""
	CLI.Expr = ""

	r, w, err := os.Pipe()
	require.NoError(t, err)
	_ = w.Close()

	os.Stdin = r
	defer func() { _ = r.Close() }()

	_, err = parseInput(parser.DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
}

func TestParseInput_EmptyFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempJSON(t, "")

	_, err := parseInput(parser.DefaultOptions())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestParseInput_InvalidJSON(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempJSON(t, `{"invalid": json}`)

	_, err := parseInput(parser.DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoMatch)
}

func TestParseInput_NonExistentFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = "/non/existent/file.json"

	_, err := parseInput(parser.DefaultOptions())
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
}

func TestWriteOutput_ToFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Output = filepath.Join(t.TempDir(), "out.json")

	err := writeOutput(`{"a": 1}`)
	require.NoError(t, err)

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\": 1}\n", string(content))
}

func TestWriteOutput_ToStdout(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	// Clear output file to force stdout
	CLI.Output = ""

	err := writeOutput("null")
	assert.NoError(t, err)
}

func TestWriteOutput_FileError(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	// Try to write to a directory that doesn't exist
	CLI.Output = "/non/existent/dir/output.json"

	err := writeOutput("null")
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeOutput})
}

func TestReadInteractiveInput_FromPipe(t *testing.T) {
	originalStdin := os.Stdin
	defer func() { os.Stdin = originalStdin }()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		defer func() { _ = w.Close() }()
		_, _ = w.WriteString("{\n  \"a\": [true,\n false]\n}")
	}()

	os.Stdin = r
	defer func() { _ = r.Close() }()

	doc, err := readInteractiveInput(parser.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, models.JSONObject{"a": models.JSONArray{true, false}}, doc.Root)
}

func TestLoadConfig_CLIOverridesFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	path := filepath.Join(t.TempDir(), ".jsonpc.yml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: yaml\n  indent: 4\n"), 0644))

	CLI.Config = path
	CLI.Format = config.FormatText
	CLI.Strict = true
	CLI.Verbose = true

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.FormatText, cfg.Output.Format)
	assert.Equal(t, 4, cfg.Output.Indent)
	assert.True(t, cfg.Parsing.Strict)
	assert.True(t, cfg.Dev.Verbose)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	path := filepath.Join(t.TempDir(), ".jsonpc.yml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  key_case: shouting\n"), 0644))
	CLI.Config = path

	_, err := loadConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidKeyCase)
	assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeConfig})
}
