package formatter

import (
	"testing"

	"github.com/mcncl/jsonpc/internal/config"
	"github.com/mcncl/jsonpc/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_ParserFormatter(t *testing.T) {
	// Test the full pipeline: Parser -> Formatter
	jsonInput := `{
		"user_id": 123,
		"username": "johndoe",
		"is_active": true,
		"profile": {
			"full_name": "John Doe",
			"email": "john.doe@example.com"
		},
		"user_id": 124
	}`

	doc, err := parser.ParseString(jsonInput, parser.Options{Strict: true, AllowTrailingWhitespace: true})
	require.NoError(t, err)

	cfg := config.NewConfig()
	cfg.Output.Format = config.FormatText
	cfg.Output.KeyCase = config.KeyCaseLowerCamel

	out, err := NewFormatterWithConfig(cfg).Format(doc.Root)
	require.NoError(t, err)

	expected := `{"isActive": true, "profile": {"email": "john.doe@example.com", "fullName": "John Doe"}, "userId": 124, "username": "johndoe"}`
	assert.Equal(t, expected, out)
}

func TestIntegration_RoundTripThroughJSON(t *testing.T) {
	// formatting a parsed value as JSON and parsing it again yields the same value
	jsonInput := `[{"a": "xA\n", "b": [1.5e3, -0.25, null]}, true, "", {}]`

	first, err := parser.ParseString(jsonInput, parser.DefaultOptions())
	require.NoError(t, err)

	rendered, err := NewFormatter().Format(first.Root)
	require.NoError(t, err)

	second, err := parser.ParseString(rendered, parser.Options{Strict: true})
	require.NoError(t, err)
	assert.Equal(t, first.Root, second.Root)
}
