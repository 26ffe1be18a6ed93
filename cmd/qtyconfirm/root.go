package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/qtyconfirm/cmd/qtyconfirm/commands"
	"github.com/walteh/qtyconfirm/cmd/qtyconfirm/opts"
	"github.com/walteh/qtyconfirm/pkg/config"
	"github.com/walteh/qtyconfirm/pkg/log"
	"github.com/walteh/qtyconfirm/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the persistent flags shared by every command
type rootFlags struct {
	configFile string
	debug      bool
	dryRun     bool
	compat     bool
}

// NewRootCmd creates the qtyconfirm command tree
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	ro := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "qtyconfirm <input> <output>",
		Short: "Append a confirm button after every quantity increment button",
		Long: `qtyconfirm reads an HTML file, finds every increment button of the form

    <button ... onclick="updateQty('ID', 1)" ...>+</button>

and writes a copy where each of them is followed by a confirm button calling
confirmSingleItem(this, 'ID'). The input is treated as UTF-8 text; nothing
else in the document changes.`,
		Example: `  qtyconfirm menu.html menu.confirm.html
  qtyconfirm --config qtyconfirm.yaml --dry-run menu.html out.html
  qtyconfirm batch --root site --out dist`,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if flags.compat {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// arguments are valid at this point, so later failures are not usage errors
			cmd.SilenceUsage = true
			return setupRootOpts(cmd, flags, ro)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				zerolog.Ctx(cmd.Context()).Debug().Int("args", len(args)).Msg("fewer than two arguments, nothing to do")
				return nil
			}
			return commands.RunInject(cmd.Context(), ro, args[0], args[1])
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewBatchCmd(ro),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "rule file (.yaml, .yml, .hcl or .json)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "report matches without writing files")
	cmd.Flags().BoolVar(&flags.compat, "compat", false, "exit silently when fewer than two arguments are given")
}

// setupRootOpts configures logging and loads the rule for the command being run
func setupRootOpts(cmd *cobra.Command, flags *rootFlags, ro *opts.RootOpts) error {
	level := zerolog.InfoLevel
	if flags.debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	cfg := config.Default()
	if flags.configFile != "" {
		loaded, err := config.Load(ctx, flags.configFile)
		if err != nil {
			return errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	injector, err := text.NewInjector(cfg.Rule())
	if err != nil {
		return errors.Errorf("creating injector: %w", err)
	}

	ro.Config = cfg
	ro.Injector = injector
	ro.Console = log.New(cmd.OutOrStdout(), level)
	ro.UserLogger = log.NewUserLogger(ctx)
	ro.Logger = &logger
	ro.DryRun = flags.dryRun

	return nil
}
