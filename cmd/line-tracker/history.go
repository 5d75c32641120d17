package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"line-tracker/internal/config"
	"line-tracker/internal/history"
	"line-tracker/internal/report"
)

func newHistoryCmd(g *globalFlags, stdout, _ io.Writer) *cobra.Command {
	var (
		path   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored scans without scanning",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			histPath, err := config.Config{HistoryFile: g.historyFile}.HistoryPath()
			if err != nil {
				return err
			}
			h, err := history.Load(histPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("path") {
				h = history.Matching(h, &path)
			}
			return writeHistory(stdout, h, output, g.noColor)
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", "", "only show scans of this search path")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}

func writeHistory(w io.Writer, h history.History, format string, noColor bool) error {
	switch format {
	case "text":
		report.New(w, useColor(noColor, w)).Snapshots(h)
		return nil
	case "json":
		data, err := history.Encode(h)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(h); err != nil {
			return err
		}
		return enc.Close()
	default:
		return usageError{fmt.Errorf("unknown output format %q", format)}
	}
}
