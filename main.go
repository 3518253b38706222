package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mcncl/jsonpc/internal/analyzer"
	"github.com/mcncl/jsonpc/internal/config"
	"github.com/mcncl/jsonpc/internal/errors"
	"github.com/mcncl/jsonpc/internal/formatter"
	"github.com/mcncl/jsonpc/internal/models"
	"github.com/mcncl/jsonpc/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Expr        string `help:"JSON text to parse, instead of a file or stdin." short:"e"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Format      string `help:"Output format: json, yaml or text. Overrides the config file." short:"f"`
	Config      string `help:"Path to config file. Defaults to the nearest .jsonpc.yml." short:"c" type:"path"`
	Strict      bool   `help:"Fail if anything other than whitespace follows the JSON value." short:"s"`
	Stats       bool   `help:"Print a structural summary of the parsed value to stderr."`
	NoColor     bool   `help:"Disable coloured status output."`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Verbose     bool   `help:"Like --debug, plus byte counts and the effective output settings."`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug   bool
	Verbose bool
	Config  *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

var (
	statusColor = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	debugColor  = color.New(color.FgCyan)
	errorColor  = color.New(color.FgRed, color.Bold)

	// diagnostics receives debug and verbose lines
	diagnostics io.Writer = os.Stderr
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsonpc"),
		kong.Description("Parse JSON with a parser-combinator grammar and print the result"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsonpc version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		_, _ = errorColor.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
	color.NoColor = color.NoColor || !cfg.Display.Color

	err = run(&Context{Debug: cfg.Dev.Debug, Verbose: cfg.Dev.Verbose, Config: cfg})
	if err != nil {
		_, _ = errorColor.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonpc --help\n")
		os.Exit(1)
	}
}

// loadConfig finds the config file, if any, and applies CLI overrides on top of it
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, config.CLIOverrides{
		Format:  CLI.Format,
		Strict:  CLI.Strict,
		NoColor: CLI.NoColor,
		Debug:   CLI.Debug,
		Verbose: CLI.Verbose,
	})
	if err != nil {
		source := "command-line flags"
		if configPath != "" {
			source = fmt.Sprintf("'%s'", configPath)
		}
		return nil, errors.NewConfigError(fmt.Sprintf("invalid configuration in %s: %v", source, err), err)
	}
	return cfg, nil
}

// debugf writes a debug line when debug or verbose logging is enabled
func (ctx *Context) debugf(format string, args ...interface{}) {
	if !ctx.Debug && !ctx.Verbose {
		return
	}
	_, _ = debugColor.Fprintf(diagnostics, "[debug] "+format+"\n", args...)
}

// verbosef writes a line only in verbose mode
func (ctx *Context) verbosef(format string, args ...interface{}) {
	if !ctx.Verbose {
		return
	}
	_, _ = debugColor.Fprintf(diagnostics, "[verbose] "+format+"\n", args...)
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	opts := parser.OptionsFromConfig(ctx.Config)
	ctx.debugf("parse options: strict=%t allow_trailing_whitespace=%t", opts.Strict, opts.AllowTrailingWhitespace)

	// 1. Parse JSON input
	doc, err := parseInput(opts)
	if err != nil {
		return err
	}
	ctx.debugf("parsed %s value, %d bytes left over", doc.RootKind, len(doc.Remaining))
	ctx.verbosef("consumed %d of %d bytes", doc.Consumed, doc.Consumed+len(doc.Remaining))
	ctx.verbosef("output: format=%s indent=%d key_case=%s show_remaining=%t",
		ctx.Config.Output.Format, ctx.Config.Output.Indent, ctx.Config.Output.KeyCase, ctx.Config.Output.ShowRemaining)

	// 2. Render the value
	out, err := formatter.NewFormatterWithConfig(ctx.Config).Format(doc.Root)
	if err != nil {
		return errors.NewFormatError(fmt.Sprintf("failed to render value as %s: %v", ctx.Config.Output.Format, err), err)
	}

	// 3. Report leftovers and statistics on stderr so stdout stays parseable
	reportRemaining(ctx, doc)
	if CLI.Stats {
		summary, err := analyzer.NewAnalyzer().Analyze(doc.Root)
		if err != nil {
			return errors.NewFormatError("failed to summarize value", err)
		}
		fmt.Fprintln(os.Stderr, summary.String())
		fmt.Fprintf(os.Stderr, "consumed: %s of %s\n",
			humanize.Bytes(uint64(doc.Consumed)), humanize.Bytes(uint64(doc.Consumed+len(doc.Remaining))))
	}

	// 4. Output the result
	return writeOutput(out)
}

func reportRemaining(ctx *Context, doc models.Document) {
	if !ctx.Config.Output.ShowRemaining || strings.TrimSpace(doc.Remaining) == "" {
		return
	}
	_, _ = warnColor.Fprintf(os.Stderr, "remaining input: %q\n", doc.Remaining)
}

// parseInput reads JSON from the expression flag, a file or stdin
func parseInput(opts parser.Options) (models.Document, error) {
	if CLI.Expr != "" {
		return parser.ParseString(CLI.Expr, opts)
	}

	if CLI.Input != "" {
		return parser.ParseFile(CLI.Input, opts)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		if CLI.Interactive {
			return readInteractiveInput(opts)
		}
		return models.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return models.Document{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseString(string(jsonData), opts)
}

// writeOutput writes the rendered value to file or stdout
func writeOutput(out string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(out+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		_, _ = statusColor.Fprintf(os.Stderr, "Parse result written to %s\n", CLI.Output)
		return nil
	}

	_, err := fmt.Println(out)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput(opts parser.Options) (models.Document, error) {
	_, _ = statusColor.Fprintln(os.Stderr, "jsonpc Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Document{}, errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if strings.TrimSpace(jsonData) == "" {
		return models.Document{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return parser.ParseString(jsonData, opts)
}
