// Package operation wires the injector to file I/O and reporting
package operation

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/qtyconfirm/pkg/log"
	"github.com/walteh/qtyconfirm/pkg/status"
	"github.com/walteh/qtyconfirm/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work run by a Runner
type Operation interface {
	Execute(ctx context.Context) error
}

// 💾 Store is the file I/O and status tracking an operation needs
type Store interface {
	status.FileManager
	status.StatusReporter
}

// 🔧 Options contains what every operation shares
type Options struct {
	// Replacer injects confirm buttons
	Replacer text.TextReplacer
	// Store reads inputs, writes outputs and tracks their status
	Store Store
	// Console prints one line per processed file, may be nil
	Console *log.Logger
	// Logger receives debug output, may be nil
	Logger *zerolog.Logger
	// DryRun reports matches without writing anything
	DryRun bool
}

// 🧱 BaseOperation holds validated Options for concrete operations
type BaseOperation struct {
	Options
}

// 🏭 NewBaseOperation fills in defaults for optional fields
func NewBaseOperation(opts Options) BaseOperation {
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}
	if opts.Console == nil {
		opts.Console = log.New(io.Discard, zerolog.Disabled)
	}
	return BaseOperation{Options: opts}
}

// validate checks the required fields
func (op *BaseOperation) validate() error {
	if op.Replacer == nil {
		return errors.New("replacer is required")
	}
	if op.Store == nil {
		return errors.New("store is required")
	}
	return nil
}

// logFile reports a processed file on the console
func (op *BaseOperation) logFile(ctx context.Context, source, dest string, st status.FileStatus, matches int) {
	op.Console.LogFileOperation(ctx, log.FileOperation{
		Path:       dest,
		Source:     source,
		Status:     st.String(),
		Matches:    matches,
		IsNew:      st == status.StatusNew,
		IsModified: st == status.StatusModified,
		IsSkipped:  st == status.StatusSkipped,
		IsFailed:   st == status.StatusFailed,
	})
}
