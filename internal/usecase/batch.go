package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/goprovision/internal/domain"
	"github.com/iho/goprovision/internal/infrastructure/metrics"
)

const (
	// DefaultChunkSize bounds how many loans are resident at once. The
	// engine consumes a portfolio page by page and accumulates running
	// totals; it never needs a second full pass.
	DefaultChunkSize = 500

	// MaxChunkSize caps operator-supplied chunk sizes.
	MaxChunkSize = 5000

	// DefaultWorkers is the per-chunk calculation parallelism.
	DefaultWorkers = 4
)

func normalizeChunkSize(size int) int {
	if size <= 0 {
		return DefaultChunkSize
	}
	if size > MaxChunkSize {
		return MaxChunkSize
	}
	return size
}

func normalizeWorkers(workers int) int {
	if workers <= 0 {
		return DefaultWorkers
	}
	return workers
}

// chunkRunner feeds portfolio loans to a processing function in bounded
// chunks. Cancellation is checked at chunk boundaries only, so a cancelled
// run stops cleanly with every processed chunk fully applied and partial
// results intact. Progress is reported after each chunk.
type chunkRunner struct {
	loans     LoanRepository
	progress  ProgressReporter
	chunkSize int
	runType   domain.RunType
	metrics   *metrics.Metrics
}

func (r *chunkRunner) run(
	ctx context.Context,
	runID, portfolioID string,
	total int,
	process func(ctx context.Context, loans []*domain.Loan) error,
) (processed int, cancelled bool, err error) {
	afterID := ""

	for {
		if ctx.Err() != nil {
			return processed, true, nil
		}

		loans, err := r.loans.ListPage(ctx, portfolioID, afterID, r.chunkSize)
		if err != nil {
			if isCancellation(err) {
				return processed, true, nil
			}
			return processed, false, err
		}
		if len(loans) == 0 {
			break
		}

		start := time.Now()
		if err := process(ctx, loans); err != nil {
			if isCancellation(err) {
				return processed, true, nil
			}
			return processed, false, err
		}

		if r.metrics != nil {
			runType := string(r.runType)
			r.metrics.ChunksProcessed.WithLabelValues(runType).Inc()
			r.metrics.ChunkDuration.WithLabelValues(runType).Observe(time.Since(start).Seconds())
			r.metrics.LoansProcessed.WithLabelValues(runType).Add(float64(len(loans)))
		}

		processed += len(loans)
		afterID = loans[len(loans)-1].ID

		if r.progress != nil {
			r.progress.Report(ctx, runID, processed, total, "")
		}
	}

	return processed, false, nil
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
