// Copyright 2026 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command toon converts between JSON/YAML and TOON.
//
// Direction is detected from the input file extension (.json, .yaml, and
// .yml encode; anything else decodes) and may be forced with --encode or
// --decode. Input defaults to stdin and output to stdout.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"rivaas.dev/toon"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	output       string
	encode       bool
	decode       bool
	delimiter    delimiterFlag
	indent       int
	lengthMarker bool
	stats        bool
	noStrict     bool
	verbose      bool
}

// delimiterFlag adapts toon.Delimiter to the pflag.Value interface so
// --delimiter accepts ",", "|", and "\t".
type delimiterFlag struct {
	value toon.Delimiter
}

var _ pflag.Value = (*delimiterFlag)(nil)

func (d *delimiterFlag) String() string {
	if d.value == toon.Tab {
		return `\t`
	}
	return d.value.String()
}

func (d *delimiterFlag) Set(s string) error {
	parsed, err := toon.ParseDelimiter(s)
	if err != nil {
		return err
	}
	d.value = parsed
	return nil
}

func (d *delimiterFlag) Type() string { return "delimiter" }

func rootCmd() *cobra.Command {
	flags := &cliFlags{}

	cmd := &cobra.Command{
		Use:   "toon [flags] [input]",
		Short: "Convert between JSON/YAML and TOON",
		Long: `Convert between JSON/YAML and TOON (Token-Oriented Object Notation).

Reads from a file or stdin ('-'), auto-detects direction from the file
extension, and writes to stdout unless -o is given.`,
		Example: `  toon data.json -o data.toon
  toon data.toon -o data.json
  cat data.json | toon --stats
  toon --delimiter '|' data.json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return run(flags, input)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
	f.BoolVarP(&flags.encode, "encode", "e", false, "force encode mode (JSON/YAML to TOON)")
	f.BoolVarP(&flags.decode, "decode", "d", false, "force decode mode (TOON to JSON)")
	f.Var(&flags.delimiter, "delimiter", `array delimiter: "," "|" or "\t"`)
	f.IntVar(&flags.indent, "indent", toon.DefaultIndent, "indentation spaces")
	f.BoolVar(&flags.lengthMarker, "length-marker", false, "add # prefix to array lengths")
	f.BoolVar(&flags.stats, "stats", false, "show token count estimates on encode")
	f.BoolVar(&flags.noStrict, "no-strict", false, "disable strict validation on decode")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func run(flags *cliFlags, input string) error {
	logger, err := newLogger(flags.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if flags.indent < 1 {
		return fmt.Errorf("indent must be >= 1, got %d", flags.indent)
	}

	req := convertRequest{
		mode:   pickMode(flags, input),
		format: inputFormat(input),
		stats:  flags.stats,
		options: []toon.Option{
			toon.WithIndent(flags.indent),
			toon.WithDelimiter(flags.delimiter.value),
			toon.WithLengthMarker(flags.lengthMarker),
			toon.WithStrict(!flags.noStrict),
		},
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}
	logger.Debug("input read", zap.String("source", sourceName(input)), zap.Int("bytes", len(data)))

	out, stats, err := convert(data, req)
	if err != nil {
		return err
	}
	if stats != nil {
		fmt.Fprintf(os.Stderr, "JSON tokens: %d, TOON tokens: %d, savings: %d%%\n",
			stats.inputTokens, stats.outputTokens, stats.savingsPercent())
	}
	logger.Debug("converted", zap.String("mode", string(req.mode)), zap.Int("bytes", len(out)))

	return writeOutput(out, flags.output)
}

// pickMode resolves the conversion direction: explicit flags win, then the
// input extension; stdin defaults to encoding.
func pickMode(flags *cliFlags, input string) mode {
	switch {
	case flags.encode:
		return modeEncode
	case flags.decode:
		return modeDecode
	default:
		return detectMode(input)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func readInput(input string) ([]byte, error) {
	if input == "" || input == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(input)
}

func writeOutput(out []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

func sourceName(input string) string {
	if input == "" || input == "-" {
		return "stdin"
	}
	return input
}
