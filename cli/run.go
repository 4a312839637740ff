package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/delegate/page"
)

func newRunCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "run PAGE.html [SCRIPT.js ...]",
		Short: "Load a page, run its scripts and then the given scripts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			runner := page.NewRunner(cfg, logger)
			result := runner.Run(args[0], args[1:])
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				data, err := runner.ExportJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := runner.ExportYAML()
				if err != nil {
					return err
				}
				fmt.Fprint(out, string(data))
			case "text":
				printResult(out, result)
				passed, failed, errored := runner.Summary()
				fmt.Fprintf(out, "\nSummary: %d passed, %d failed, %d errored\n", passed, failed, errored)
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			if runner.Failed() {
				return fmt.Errorf("%s: %s", result.Page, result.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "text", "output format: text, json or yaml")
	return cmd
}

func printResult(w io.Writer, result page.Result) {
	fmt.Fprintf(w, "%s (%s, %.2fs)\n", result.Page, result.Status, result.Duration.Seconds())
	if result.Error != "" {
		fmt.Fprintf(w, "  ERROR: %s\n", result.Error)
	}
	for _, sr := range result.Scripts {
		fmt.Fprintf(w, "  %s %s\n", statusSymbol(sr.Status), sr.Name)
		if sr.Message != "" && sr.Status != page.StatusPass {
			for _, line := range strings.Split(sr.Message, "\n") {
				fmt.Fprintf(w, "      %s\n", line)
			}
		}
	}
	for _, entry := range result.Entries {
		fmt.Fprintf(w, "  listening: %s on %s (%d handlers)\n", entry.EventType, entry.Container, entry.Handlers)
	}
}

func statusSymbol(status page.Status) string {
	switch status {
	case page.StatusPass:
		return "✓"
	case page.StatusFail:
		return "✗"
	default:
		return "!"
	}
}
