package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"madmapper/internal/config"
	"madmapper/mapper"
)

const stdinName = "-"

var errUnknownFormat = errors.New("unknown format")

type mapOptions struct {
	instructions string
	output       string
	inputFormat  string
	dump         bool
	jobs         int
}

func newMapCmd(a *app) *cobra.Command {
	opts := &mapOptions{}

	cmd := &cobra.Command{
		Use:   "map [input...]",
		Short: "Map JSON or YAML documents with an instruction file",
		Long: `Reads every input document, maps it with the instruction file and
prints the results in argument order. Inputs are mapped concurrently.

The input format follows the file extension (.yaml and .yml are YAML,
anything else is JSON) unless --input-format says otherwise. Without
inputs, or with "-", the document is read from stdin.

Example:
  madmapper map -i hydrate.yaml rows.json
  madmapper map -i hydrate.yaml -o yaml < rows.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.instructions, "instructions", "i", "", "instruction file (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")
	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "auto", "input format: auto, json or yaml")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "print results as Go values")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 4, "number of inputs mapped at once")

	_ = cmd.MarkFlagRequired("instructions")

	return cmd
}

func runMap(cmd *cobra.Command, a *app, opts *mapOptions, args []string) error {
	if opts.output != "json" && opts.output != "yaml" {
		return fmt.Errorf("%w: output %q", errUnknownFormat, opts.output)
	}

	doc, err := config.LoadFile(opts.instructions)
	if err != nil {
		return err
	}

	prog, err := config.Compile(doc, a.registry)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.instructions, err)
	}

	if len(args) == 0 {
		args = []string{stdinName}
	}

	// stdin can only be read once
	stdin, err := readStdin(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	m := mapper.New(mapper.WithLogger(a.logger))
	results := make([]any, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(opts.jobs, 1))

	for i, name := range args {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			start := time.Now()

			input, err := readInput(name, opts.inputFormat, stdin)
			if err != nil {
				return err
			}

			out, err := prog.Run(m, input)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			a.logger.Debug("mapped input",
				zap.String("input", name),
				zap.Duration("took", time.Since(start)))

			results[i] = out

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return writeResults(cmd.OutOrStdout(), opts, results)
}

func readStdin(in io.Reader, args []string) ([]byte, error) {
	for _, name := range args {
		if name == stdinName {
			data, err := io.ReadAll(in)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}

			return data, nil
		}
	}

	return nil, nil
}

// readInput decodes one input document.
func readInput(name, format string, stdin []byte) (any, error) {
	data := stdin
	if name != stdinName {
		var err error

		data, err = os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read input %s: %w", name, err)
		}
	}

	if format == "auto" {
		format = "json"

		switch strings.ToLower(filepath.Ext(name)) {
		case ".yaml", ".yml":
			format = "yaml"
		}
	}

	v, err := decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input %s: %w", name, err)
	}

	return v, nil
}

func decode(data []byte, format string) (any, error) {
	var v any

	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()

		if err := dec.Decode(&v); err != nil {
			return nil, err
		}

		return v, nil

	case "yaml":
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}

		return v, nil

	default:
		return nil, fmt.Errorf("%w: input %q", errUnknownFormat, format)
	}
}

func writeResults(w io.Writer, opts *mapOptions, results []any) error {
	if opts.dump {
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		for _, r := range results {
			cfg.Fdump(w, r)
		}

		return nil
	}

	switch opts.output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("failed to write YAML: %w", err)
			}
		}

		return enc.Close()

	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("failed to write JSON: %w", err)
			}
		}

		return nil
	}
}
