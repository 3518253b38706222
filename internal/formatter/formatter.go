package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mcncl/jsonpc/internal/config"
	"github.com/mcncl/jsonpc/internal/errors"
	"github.com/mcncl/jsonpc/internal/models"
	"gopkg.in/yaml.v3"
)

// Formatter renders parsed JSON values as text
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter with default configuration
func NewFormatter() *Formatter {
	return &Formatter{config: config.NewConfig()}
}

// NewFormatterWithConfig creates a new Formatter using cfg's output settings
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// Format renders value in the configured output format
func (f *Formatter) Format(value models.JSONValue) (string, error) {
	value = f.transformKeys(value)

	switch f.config.Output.Format {
	case config.FormatJSON:
		return f.formatJSON(value)
	case config.FormatYAML:
		return f.formatYAML(value)
	case config.FormatText:
		var sb strings.Builder
		writeText(&sb, value)
		return sb.String(), nil
	default:
		return "", fmt.Errorf("format '%s': %w", f.config.Output.Format, errors.ErrUnsupportedFormat)
	}
}

// transformKeys returns a copy of value with every object key rewritten
// according to the configured key case. Keys that collide after rewriting
// keep the value of the last key in sorted order.
func (f *Formatter) transformKeys(value models.JSONValue) models.JSONValue {
	if f.config.Output.KeyCase == config.KeyCasePreserve || f.config.Output.KeyCase == "" {
		return value
	}

	switch v := value.(type) {
	case models.JSONObject:
		out := make(models.JSONObject, len(v))
		for _, key := range sortedKeys(v) {
			out[f.config.TransformKey(key)] = f.transformKeys(v[key])
		}
		return out
	case models.JSONArray:
		out := make(models.JSONArray, len(v))
		for i, item := range v {
			out[i] = f.transformKeys(item)
		}
		return out
	default:
		return v
	}
}

func (f *Formatter) formatJSON(value models.JSONValue) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if f.config.Output.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", f.config.Output.Indent))
	}
	if err := enc.Encode(value); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func (f *Formatter) formatYAML(value models.JSONValue) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if f.config.Output.Indent > 0 {
		enc.SetIndent(f.config.Output.Indent)
	}
	if err := enc.Encode(value); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// writeText writes a compact single-line rendering with sorted object keys
func writeText(sb *strings.Builder, value models.JSONValue) {
	switch v := value.(type) {
	case nil:
		sb.WriteString("null")
	case bool:
		sb.WriteString(strconv.FormatBool(v))
	case float64:
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		sb.WriteString(strconv.Quote(v))
	case models.JSONArray:
		sb.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeText(sb, item)
		}
		sb.WriteByte(']')
	case models.JSONObject:
		sb.WriteByte('{')
		for i, key := range sortedKeys(v) {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(key))
			sb.WriteString(": ")
			writeText(sb, v[key])
		}
		sb.WriteByte('}')
	default:
		fmt.Fprintf(sb, "%v", v)
	}
}

func sortedKeys(obj models.JSONObject) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
