package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultBatchSyncWorkers = 4
	maxBatchSyncRefs        = 50
)

// BatchSyncInput lists provider game references to pull in one call.
type BatchSyncInput struct {
	Source   string
	GameRefs []string
	Workers  int
}

// BatchSyncResult is the outcome of one game reference in a batch.
type BatchSyncResult struct {
	GameRef        string `json:"game_ref"`
	ExternalGameID string `json:"external_game_id,omitempty"`
	Imported       int    `json:"imported"`
	Failed         int    `json:"failed"`
	Status         string `json:"status"`
	Message        string `json:"message,omitempty"`
	DurationMs     int64  `json:"duration_ms"`
}

type BatchSyncSummary struct {
	Source       string            `json:"source"`
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	Results      []BatchSyncResult `json:"results"`
}

const (
	batchStatusSuccess = "success"
	batchStatusFailed  = "failed"
)

// SyncBatchFromProvider runs SyncFromProvider for several game references on
// a bounded worker pool. Each game still imports its plays sequentially; a
// failing reference is reported in its row and does not stop the others.
func (s *PlayImportService) SyncBatchFromProvider(ctx context.Context, input BatchSyncInput) (BatchSyncSummary, error) {
	ctx = context.WithoutCancel(ctx)
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayImportService.SyncBatchFromProvider",
		attribute.String("source", input.Source),
		attribute.Int("refs", len(input.GameRefs)),
	)
	defer span.End()

	src, err := parseSource(input.Source)
	if err != nil {
		return BatchSyncSummary{}, err
	}
	if _, err := s.registry.Feed(src); err != nil {
		return BatchSyncSummary{}, err
	}
	refs := dedupeRefs(input.GameRefs)
	if len(refs) == 0 {
		return BatchSyncSummary{}, fmt.Errorf("%w: at least one game reference is required", ErrInvalidInput)
	}
	if len(refs) > maxBatchSyncRefs {
		return BatchSyncSummary{}, fmt.Errorf("%w: at most %d game references per batch", ErrInvalidInput, maxBatchSyncRefs)
	}

	workers := input.Workers
	if workers <= 0 {
		workers = defaultBatchSyncWorkers
	}
	workers = min(workers, len(refs))

	pool, err := ants.NewPool(workers)
	if err != nil {
		return BatchSyncSummary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan BatchSyncResult, len(refs))
	var successCount, failedCount atomic.Int32
	var wg sync.WaitGroup
	for _, ref := range refs {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			row := s.syncOne(ctx, string(src), ref)
			if row.Status == batchStatusSuccess {
				successCount.Add(1)
			} else {
				failedCount.Add(1)
			}
			results <- row
		}); err != nil {
			wg.Done()
			wg.Wait()
			return BatchSyncSummary{}, fmt.Errorf("submit sync task: %w", err)
		}
	}
	wg.Wait()
	close(results)

	out := BatchSyncSummary{Source: string(src), Results: make([]BatchSyncResult, 0, len(refs))}
	for row := range results {
		out.Results = append(out.Results, row)
	}
	slices.SortStableFunc(out.Results, func(a, b BatchSyncResult) int {
		return strings.Compare(a.GameRef, b.GameRef)
	})
	out.SuccessCount = int(successCount.Load())
	out.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "provider batch sync finished",
		"source", src,
		"refs", len(refs),
		"success", out.SuccessCount,
		"failed", out.FailedCount,
	)
	return out, nil
}

func (s *PlayImportService) syncOne(ctx context.Context, source, ref string) BatchSyncResult {
	start := time.Now()
	row := BatchSyncResult{GameRef: ref}

	summary, err := s.SyncFromProvider(ctx, source, ref)
	row.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		row.Status = batchStatusFailed
		row.Message = err.Error()
		s.logger.WarnContext(ctx, "provider batch sync item failed", "source", source, "ref", ref, "error", err)
		return row
	}

	row.ExternalGameID = summary.Game.ID
	row.Imported = summary.Plays.Imported
	row.Failed = summary.Plays.Failed
	row.Message = summary.Plays.Message
	row.Status = batchStatusSuccess
	if !summary.Plays.Success {
		row.Status = batchStatusFailed
	}
	return row
}

func dedupeRefs(refs []string) []string {
	seen := make(map[string]struct{}, len(refs))
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
