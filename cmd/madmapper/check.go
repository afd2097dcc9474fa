package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"madmapper/internal/config"
)

var errInvalid = errors.New("instruction files have errors")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file...]",
		Short: "Validate instruction files",
		Long: `Loads every instruction file and reports errors, warnings and
suggestions for misspelled strategy, aggregate and operator names.
Exits non-zero when any file has errors.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), a, args)
		},
	}
}

func runCheck(w io.Writer, a *app, files []string) error {
	failed := 0

	for _, file := range files {
		doc, err := config.LoadFile(file)
		if err != nil {
			fmt.Fprintf(w, "%s: error: %v\n", file, err)
			failed++

			continue
		}

		res := config.Validate(doc, a.registry)
		for _, d := range res.All() {
			fmt.Fprintf(w, "%s: %s: %s\n", file, d.Severity, d)
		}

		a.logger.Debug("checked instruction file",
			zap.String("file", file),
			zap.Int("errors", len(res.Errors)),
			zap.Int("warnings", len(res.Warnings)))

		if res.HasErrors() {
			failed++
			continue
		}

		fmt.Fprintf(w, "%s: ok\n", file)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalid, failed, len(files))
	}

	return nil
}
