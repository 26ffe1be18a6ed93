package commands

import (
	"context"
	"fmt"

	"github.com/walteh/qtyconfirm/cmd/qtyconfirm/opts"
	"github.com/walteh/qtyconfirm/pkg/operation"
	"github.com/walteh/qtyconfirm/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// RunInject transforms a single input file into output
func RunInject(ctx context.Context, ro *opts.RootOpts, input, output string) error {
	store := status.New("", ro.Logger)

	exists, err := store.FileExists(ctx, output)
	if err != nil {
		return errors.Errorf("checking output: %w", err)
	}
	action := "creating"
	if exists {
		action = "overwriting"
	}
	ro.UserLogger.LogStateChange(fmt.Sprintf("%s %s from %s", action, output, input))

	op := operation.NewInjectOperation(operation.Options{
		Replacer: ro.Injector,
		Store:    store,
		Console:  ro.Console,
		Logger:   ro.Logger,
		DryRun:   ro.DryRun,
	}, input, output)

	runner := operation.NewRunner(ro.Logger, false)
	if err := runner.Run(ctx, "inject", op); err != nil {
		return errors.Errorf("injecting confirm buttons: %w", err)
	}

	info, err := store.GetFileInfo(ctx, output)
	if err != nil {
		return errors.Errorf("reading status of %s: %w", output, err)
	}

	if info.Matches == 0 {
		ro.Console.Warningf("no increment buttons found in %s", input)
	}
	if ro.DryRun {
		ro.Console.Infof("dry run, %s was not written", output)
	}

	ro.UserLogger.LogSummary(1, info.Matches, ro.DryRun)
	return nil
}
