package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/modcheck/config"
	"github.com/dhamidi/modcheck/format"
	"github.com/dhamidi/modcheck/modlang"
)

func newCheckCmd() *cobra.Command {
	var outputFormat string
	var plain bool

	cmd := &cobra.Command{
		Use:   "check <file.mod>...",
		Short: "Check whether module documents are valid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := checkFiles(cfg, args)
			if err != nil {
				return err
			}

			var enc format.ReportEncoder
			switch {
			case outputFormat == "text" && !plain:
				enc = format.NewTextReportEncoder(cmd.OutOrStdout(), styleVerdict)
			default:
				enc, err = format.NewReportEncoder(cmd.OutOrStdout(), outputFormat)
				if err != nil {
					return err
				}
			}
			if err := enc.Encode(reports); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			for _, r := range reports {
				if !r.Result.Valid {
					return errInvalid
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&plain, "plain", false, "do not style text output")

	return cmd
}

// checkFiles checks every path, refusing names without the configured
// document extension before reading any of them.
func checkFiles(c *config.Config, paths []string) ([]format.Report, error) {
	for _, path := range paths {
		if filepath.Ext(path) != c.Check.Extension {
			return nil, fmt.Errorf("unrecognized command or file type: %s", path)
		}
	}

	opts := c.ParserOptions()
	reports := make([]format.Report, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		fileOpts := append([]modlang.Option{modlang.WithFile(path)}, opts...)
		reports = append(reports, format.Report{
			File:   path,
			Result: modlang.Check(string(data), fileOpts...),
		})
	}
	return reports, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
