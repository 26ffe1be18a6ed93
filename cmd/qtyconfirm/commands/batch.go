package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/qtyconfirm/cmd/qtyconfirm/opts"
	"github.com/walteh/qtyconfirm/pkg/operation"
	"github.com/walteh/qtyconfirm/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewBatchCmd creates a new batch command
func NewBatchCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		root   string
		out    string
		globs  []string
		ignore []string
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Inject confirm buttons into every matching file under a directory",
		Long: `Batch walks --root, picks every file matching --glob (default **/*.html),
skips files matching --ignore, and writes each transformed file to the same
relative path under --out. Files already under --out are never picked up.

Flags override the batch block of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "batch").Logger().WithContext(cmd.Context())

			if !cmd.Flags().Changed("glob") {
				globs = ro.Config.BatchGlobs()
			}
			if !cmd.Flags().Changed("ignore") {
				ignore = ro.Config.BatchIgnore()
			}
			if !cmd.Flags().Changed("jobs") {
				jobs = ro.Config.BatchJobs()
			}

			ro.Console.Header(fmt.Sprintf("batch %s -> %s", root, out))

			store := status.New(out, ro.Logger)
			op := operation.NewBatchOperation(operation.Options{
				Replacer: ro.Injector,
				Store:    store,
				Console:  ro.Console,
				Logger:   ro.Logger,
				DryRun:   ro.DryRun,
			}, root, globs, ignore, jobs)
			op.OutDir = out

			// async so an interrupt stops waiting on in-flight files
			runner := operation.NewRunner(ro.Logger, true)
			if err := runner.Run(ctx, "batch", op); err != nil {
				return errors.Errorf("running batch: %w", err)
			}

			files, err := store.ListFiles(ctx)
			if err != nil {
				return errors.Errorf("listing processed files: %w", err)
			}

			if ro.DryRun {
				ro.Console.Infof("dry run, nothing written to %s", out)
			} else {
				ro.Console.Successf("wrote %d file(s) to %s", len(files), out)
			}

			ro.UserLogger.LogSummary(len(files), op.Matches(), ro.DryRun)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "directory to read inputs from")
	cmd.Flags().StringVar(&out, "out", "", "directory to write outputs to (required)")
	cmd.Flags().StringSliceVar(&globs, "glob", nil, "input pattern relative to --root, repeatable")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "pattern of inputs to skip, repeatable")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files processed in parallel, 0 for one per CPU")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
