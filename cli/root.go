// Package cli implements the delegate command line.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/delegate/config"
	"github.com/chrisuehlinger/delegate/internal/log"
)

const appName = "delegate"

type options struct {
	configPath string
	logLevel   string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   appName + " [command]",
		Short: "Run pages against the action delegation engine",
		Long: appName + " loads an HTML page, binds the document and action globals\n" +
			"for its scripts and routes events to declared actions.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"YAML configuration file (attribute, splitter, namespace, eventType, logLevel)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"log level: debug, info, warn, error or none (overrides the config file)")

	root.AddCommand(newRunCommand(opts))
	root.AddCommand(newReplCommand(opts))
	return root
}

// load resolves the configuration file and logger for a command.
func (o *options) load(stderr io.Writer) (*config.File, *log.Logger, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return nil, nil, err
		}
	}
	level := cfg.Level()
	if o.logLevel != "" {
		level = log.LevelFromString(o.logLevel)
	}
	return cfg, log.New(stderr, level), nil
}

// Execute runs the command line with args and returns the process exit
// code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err.Error())
		return 1
	}
	return 0
}
