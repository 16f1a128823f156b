package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	transpiler "github.com/isabella232/bson-transpilers"
	"github.com/isabella232/bson-transpilers/langs/pygen"
)

// Sentinel errors
var (
	ErrNoInput = errors.New("no input: provide an expression argument, --input, or pipe to stdin")
)

// TranslateCmd represents the translate command
type TranslateCmd struct {
	Expression string `arg:"" optional:"" help:"Expression to translate"`
	Input      string `short:"i" help:"Input file ('-' for stdin)" type:"path"`
	Output     string `short:"o" help:"Output file (default stdout)"`
}

// Run executes the translate command
func (cmd *TranslateCmd) Run(ctx *Context) error {
	config, err := transpiler.LoadConfigOrDefault(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	source, err := cmd.readSource()
	if err != nil {
		return err
	}

	if ctx.Verbose {
		color.Blue("Translating %d bytes to %s", len(source), config.Target)
	}

	output := pygen.Translate(strings.TrimSpace(source))

	if strings.HasPrefix(output, "Error: ") && !ctx.Quiet {
		color.Red("%s", output)
	}

	return cmd.writeOutput(config, output)
}

func (cmd *TranslateCmd) readSource() (string, error) {
	if cmd.Expression != "" {
		return cmd.Expression, nil
	}

	if cmd.Input == "" || cmd.Input == "-" {
		stat, err := os.Stdin.Stat()
		if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return "", fmt.Errorf("failed to read stdin: %w", err)
			}

			return string(data), nil
		}

		return "", ErrNoInput
	}

	data, err := os.ReadFile(cmd.Input)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}

	return string(data), nil
}

func (cmd *TranslateCmd) writeOutput(config *transpiler.Config, output string) error {
	path := cmd.Output
	if path == "" {
		path = config.Output
	}

	if path == "" || path == "-" {
		fmt.Println(output)
		return nil
	}

	if err := os.WriteFile(path, []byte(output+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}
