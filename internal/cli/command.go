package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/liner"
)

// ExitError carries a non-zero exit code out of the cobra command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// NewCommand returns the liner root command.
func NewCommand() *cobra.Command {
	var cfg Config
	cmd := &cobra.Command{
		Use:   "liner [flags] [FILE...]",
		Short: "Render input lines as a formatted list",
		Long: `liner reads lines from each FILE in turn (or stdin when no FILE or "-" is
given) and prints every line formatted through a template.

The default template "{prefix} {element}" turns input into a dash list.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Paths = args
			if cfg.Formatter == "go-template" && !cmd.Flags().Changed("template") {
				cfg.Template = liner.DefaultGoTemplate
			}
			if code := Run(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()); code != ExitOK {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.Prefix, "prefix", "p", liner.DefaultPrefix, "text substituted for {prefix}")
	flags.StringVarP(&cfg.Template, "template", "t", liner.DefaultTemplate, "line template")
	flags.StringVarP(&cfg.Separator, "separator", "s", `\n`, "text placed between lines")
	flags.StringVarP(&cfg.Formatter, "formatter", "f", "text",
		"element formatter: "+strings.Join(liner.FormatterNames(), ", "))
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "log debug information to stderr")
	return cmd
}
