package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/mcncl/jsonpc/internal/config"
	"github.com/mcncl/jsonpc/internal/errors" // Custom errors package
	"github.com/mcncl/jsonpc/internal/grammar"
	"github.com/mcncl/jsonpc/internal/models"
)

// Options controls how much of the input a parse must consume
type Options struct {
	Strict                  bool
	AllowTrailingWhitespace bool
}

// OptionsFromConfig extracts parse options from the parsing section of cfg
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Strict:                  cfg.Parsing.Strict,
		AllowTrailingWhitespace: cfg.Parsing.AllowTrailingWhitespace,
	}
}

// DefaultOptions returns lenient options: leftover input is reported, not rejected
func DefaultOptions() Options {
	return OptionsFromConfig(config.NewConfig())
}

const whitespace = " \t\n\r"

// Parse reads all of reader and parses it as a single JSON value
func Parse(reader io.Reader, opts Options) (models.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read input", err)
	}
	return parseText(string(data), opts)
}

func parseText(text string, opts Options) (models.Document, error) {
	// The grammar matches a value at the very start of its input, so skip
	// leading whitespace here.
	body := strings.TrimLeft(text, whitespace)
	if body == "" {
		return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	match, err := grammar.Parse(body)
	if err != nil {
		if stderrors.Is(err, errors.ErrNoMatch) {
			return models.Document{}, errors.NewParsingError("input does not start with a valid JSON value", err)
		}
		return models.Document{}, errors.NewParsingError("failed to parse JSON", err)
	}

	if opts.Strict && !fullyConsumed(match.Remaining, opts.AllowTrailingWhitespace) {
		consumed := len(body) - len(match.Remaining)
		return models.Document{}, errors.NewParsingError(
			fmt.Sprintf("unexpected input after JSON value: %q", preview(match.Remaining)),
			fmt.Errorf("value ended after %d bytes: %w", consumed, errors.ErrTrailingInput),
		)
	}

	return models.Document{
		Root:      match.Value,
		RootKind:  models.KindOf(match.Value),
		Remaining: match.Remaining,
		Consumed:  len(text) - len(match.Remaining),
	}, nil
}

func fullyConsumed(remaining string, allowWhitespace bool) bool {
	if allowWhitespace {
		remaining = strings.TrimLeft(remaining, whitespace)
	}
	return remaining == ""
}

// preview shortens leftover input for error messages
func preview(s string) string {
	const limit = 20
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

// ParseString parses JSON from a string
func ParseString(jsonString string, opts Options) (models.Document, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Document{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return parseText(jsonString, opts)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string, opts Options) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file, opts)
}
