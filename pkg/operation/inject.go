package operation

import (
	"bytes"
	"context"

	"github.com/walteh/qtyconfirm/pkg/status"
	"github.com/walteh/qtyconfirm/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📄 InjectOperation transforms one input document into one output document
type InjectOperation struct {
	BaseOperation

	Source      string
	Destination string

	result *text.ReplacementResult
	status status.FileStatus
}

// 🏭 NewInjectOperation creates a single-file operation
func NewInjectOperation(opts Options, source, destination string) *InjectOperation {
	return &InjectOperation{
		BaseOperation: NewBaseOperation(opts),
		Source:        source,
		Destination:   destination,
	}
}

// 🏃 Execute reads Source, injects confirm buttons and writes Destination
func (op *InjectOperation) Execute(ctx context.Context) error {
	if err := op.validate(); err != nil {
		return err
	}

	err := op.execute(ctx)
	if err != nil {
		op.status = status.StatusFailed
		op.Store.TrackFile(ctx, op.Destination, status.FileInfo{
			Source: op.Source,
			Status: status.StatusFailed,
			Error:  err,
		})
		op.logFile(ctx, op.Source, op.Destination, status.StatusFailed, 0)
	}
	return err
}

func (op *InjectOperation) execute(ctx context.Context) error {
	logger := op.Logger.With().Str("source", op.Source).Str("destination", op.Destination).Logger()
	ctx = logger.WithContext(ctx)

	content, err := op.Store.ReadFile(ctx, op.Source)
	if err != nil {
		return errors.Errorf("reading %s: %w", op.Source, err)
	}

	result, err := op.Replacer.ReplaceText(ctx, bytes.NewReader(content))
	if err != nil {
		return errors.Errorf("transforming %s: %w", op.Source, err)
	}
	op.result = result

	fileStatus := status.StatusSkipped
	if !op.DryRun {
		fileStatus, err = op.Store.Classify(ctx, op.Destination, result.ModifiedContent)
		if err != nil {
			return errors.Errorf("checking %s: %w", op.Destination, err)
		}

		if err := op.Store.WriteFile(ctx, op.Destination, result.ModifiedContent); err != nil {
			return errors.Errorf("writing %s: %w", op.Destination, err)
		}
	}
	op.status = fileStatus

	op.Store.TrackFile(ctx, op.Destination, status.FileInfo{
		Source:   op.Source,
		Status:   fileStatus,
		Size:     int64(len(result.ModifiedContent)),
		Matches:  result.ReplacementCount,
		Checksum: status.Checksum(result.ModifiedContent),
	})
	op.logFile(ctx, op.Source, op.Destination, fileStatus, result.ReplacementCount)

	logger.Debug().
		Int("matches", result.ReplacementCount).
		Str("status", fileStatus.String()).
		Msg("processed file")

	return nil
}

// Result returns the injection result, nil until Execute has read the input
func (op *InjectOperation) Result() *text.ReplacementResult {
	return op.result
}

// Status returns what Execute did to the destination
func (op *InjectOperation) Status() status.FileStatus {
	return op.status
}
