// Package aggregator merges per-message URL findings into a deduplicated,
// time-ordered collection of link entries.
package aggregator

import (
	"sort"

	"github.com/clipshelf/clipshelf/internal/domain"
	"github.com/clipshelf/clipshelf/internal/normalizer"
	"github.com/clipshelf/clipshelf/internal/scanner"
)

// Aggregator reduces a record set to merged link entries. All state lives in
// the context of one Aggregate call; the value itself is stateless and safe
// to share.
type Aggregator struct {
	scanner *scanner.Scanner
}

// New creates a new Aggregator.
func New(s *scanner.Scanner) *Aggregator {
	return &Aggregator{scanner: s}
}

// Aggregate reduces a record set to one LinkEntry per canonical URL, keeping
// the latest sighting's timestamp and sender. Replacement happens only on a
// strictly newer sighting, so the final map does not depend on input order:
// for equal timestamps the stored entry wins, which is deterministic given
// the store's fixed descending-by-date ordering.
//
// Output is sorted descending by timestamp; equal timestamps order by URL.
// Empty input yields an empty slice.
func (a *Aggregator) Aggregate(records []domain.MessageRecord) []domain.LinkEntry {
	merged := make(map[string]domain.LinkEntry)

	for _, rec := range records {
		sentAt := domain.TimeFromAppleTicks(rec.SentAtRaw)

		for _, cand := range a.scanner.Scan(rec) {
			link := normalizer.Normalize(cand.RawURL)
			if link.CanonicalURL == "" {
				continue
			}

			existing, ok := merged[link.CanonicalURL]
			if ok && !sentAt.After(existing.Timestamp) {
				continue
			}
			merged[link.CanonicalURL] = domain.LinkEntry{
				URL:       link.CanonicalURL,
				Timestamp: sentAt,
				Sender:    rec.SenderID,
			}
		}
	}

	entries := make([]domain.LinkEntry, 0, len(merged))
	for _, e := range merged {
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}
		return entries[i].URL < entries[j].URL
	})

	return entries
}
