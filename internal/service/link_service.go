// Package service orchestrates the extraction pipeline from message archive
// rows to the persisted link collection.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clipshelf/clipshelf/internal/aggregator"
	"github.com/clipshelf/clipshelf/internal/domain"
	"github.com/clipshelf/clipshelf/internal/messagestore"
	"github.com/clipshelf/clipshelf/internal/scanner"
)

// MessageSource reads raw rows from the message archive.
type MessageSource interface {
	Records(ctx context.Context, q messagestore.Query) ([]domain.MessageRecord, error)
}

// LinkSink persists and loads the aggregated link collection.
type LinkSink interface {
	Save(entries []domain.LinkEntry) error
	Load() ([]domain.LinkEntry, error)
}

// ExtractOptions control one extraction run.
type ExtractOptions struct {
	// DaysBack limits the scan window. Zero scans the whole archive.
	DaysBack int

	// Sender restricts the scan to one handle. Empty means any sender.
	Sender string
}

// ExtractResult summarizes one extraction run.
type ExtractResult struct {
	RunID       string
	RecordCount int
	LinkCount   int
	Duration    time.Duration
}

// LinkService runs extraction and serves the persisted collection.
type LinkService struct {
	source MessageSource
	sink   LinkSink
	agg    *aggregator.Aggregator
	logger *slog.Logger
}

// NewLinkService creates a new link service.
func NewLinkService(source MessageSource, sink LinkSink, agg *aggregator.Aggregator, logger *slog.Logger) *LinkService {
	return &LinkService{
		source: source,
		sink:   sink,
		agg:    agg,
		logger: logger,
	}
}

// Extract runs the full pipeline once and overwrites the persisted links
// file with the result. It is a linear synchronous pass; each stage returns
// its error explicitly.
func (s *LinkService) Extract(ctx context.Context, opts ExtractOptions) (*ExtractResult, error) {
	runID := uuid.NewString()
	start := time.Now()

	logger := s.logger.With("run_id", runID)
	logger.Info("starting extraction run",
		"days_back", opts.DaysBack,
		"sender", opts.Sender,
	)

	q := messagestore.Query{
		Sender:       opts.Sender,
		DomainTokens: scanner.DomainTokens(),
	}
	if opts.DaysBack > 0 {
		q.Since = time.Now().AddDate(0, 0, -opts.DaysBack)
	}

	records, err := s.source.Records(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("read message archive: %w", err)
	}

	entries := s.agg.Aggregate(records)

	if err := s.sink.Save(entries); err != nil {
		return nil, fmt.Errorf("persist links: %w", err)
	}

	result := &ExtractResult{
		RunID:       runID,
		RecordCount: len(records),
		LinkCount:   len(entries),
		Duration:    time.Since(start),
	}
	logger.Info("extraction run complete",
		"records", result.RecordCount,
		"links", result.LinkCount,
		"duration", result.Duration,
	)
	return result, nil
}

// Links returns the persisted link collection.
func (s *LinkService) Links(ctx context.Context) ([]domain.LinkEntry, error) {
	return s.sink.Load()
}
