package calculator

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/sandeepzgk/ESR-System-sub000/pkg/models"
)

// DefaultBatchWorkers is used when a non-positive worker count is given
const DefaultBatchWorkers = 4

// ErrEvaluationCancelled marks batch items that were never dispatched
const ErrEvaluationCancelled = "evaluation cancelled"

// EvaluateBatch evaluates independent parameter sets with a bounded pool of
// workers. Results keep input order. Once ctx is done no further items are
// dispatched and the remaining ones carry ErrEvaluationCancelled.
func (e *Engine) EvaluateBatch(ctx context.Context, items []models.RawParameters, workers int) []models.Evaluation {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	if workers > len(items) {
		workers = len(items)
	}

	results := make([]models.Evaluation, len(items))
	jobs := make(chan int, workers*2)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				// each index is written by exactly one worker
				results[i], _ = e.Evaluate(items[i])
			}
		}()
	}

	dispatched := 0
dispatch:
	for ; dispatched < len(items); dispatched++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- dispatched:
		}
	}
	close(jobs)
	wg.Wait()

	if dispatched < len(items) {
		log.Warn().Int("dispatched", dispatched).Int("total", len(items)).Msg("Batch evaluation cancelled")
		for i := dispatched; i < len(items); i++ {
			results[i] = models.Evaluation{Error: ErrEvaluationCancelled}
		}
	}
	return results
}
