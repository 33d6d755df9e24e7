// Package messagestore reads raw message rows from a local Messages archive
// (chat.db). Access is strictly read-only.
package messagestore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/clipshelf/clipshelf/internal/domain"
)

// Query selects which rows an extraction run scans. The store pre-filters to
// messages from others that mention a platform domain token in any
// text-bearing field, or that are rich link preview bubbles.
type Query struct {
	// Since drops messages older than this instant. Zero means no cutoff.
	Since time.Time

	// Sender restricts results to one handle. Empty means any sender.
	Sender string

	// DomainTokens are the platform domain substrings to match.
	DomainTokens []string
}

// Store is a read-only view over the message archive.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens the archive at path in read-only mode.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open message archive: %w", err)
	}
	return New(db, logger), nil
}

// New wraps an already-open database handle.
func New(db *sql.DB, logger *slog.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the archive is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Records returns all rows matching the query, ordered by send time
// descending.
func (s *Store) Records(ctx context.Context, q Query) ([]domain.MessageRecord, error) {
	query, args := buildQuery(q)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var records []domain.MessageRecord
	for rows.Next() {
		var (
			text    sql.NullString
			date    int64
			sender  sql.NullString
			body    []byte
			payload []byte
			balloon sql.NullString
		)
		if err := rows.Scan(&text, &date, &sender, &body, &payload, &balloon); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		records = append(records, domain.MessageRecord{
			RawText:     text.String,
			EncodedBody: body,
			PayloadBlob: payload,
			SenderID:    sender.String,
			SentAtRaw:   date,
			BalloonKind: balloon.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate message rows: %w", err)
	}

	s.logger.Debug("message query complete", "rows", len(records))
	return records, nil
}

func buildQuery(q Query) (string, []any) {
	var sb strings.Builder
	var args []any

	sb.WriteString(`
		SELECT
			message.text,
			message.date,
			handle.id AS sender,
			message.attributedBody,
			message.payload_data,
			message.balloon_bundle_id
		FROM message
		LEFT JOIN handle ON message.handle_id = handle.ROWID
		WHERE message.is_from_me = 0`)

	var tokenClauses []string
	for _, token := range q.DomainTokens {
		pattern := "%" + token + "%"
		tokenClauses = append(tokenClauses,
			"message.text LIKE ?",
			"message.attributedBody LIKE ?",
			"message.payload_data LIKE ?",
		)
		args = append(args, pattern, pattern, pattern)
	}
	tokenClauses = append(tokenClauses, "message.balloon_bundle_id = ?")
	args = append(args, domain.URLPreviewBalloonKind)

	sb.WriteString(" AND (")
	sb.WriteString(strings.Join(tokenClauses, " OR "))
	sb.WriteString(")")

	if !q.Since.IsZero() {
		sb.WriteString(" AND message.date >= ?")
		args = append(args, domain.AppleTicks(q.Since))
	}

	if q.Sender != "" {
		sb.WriteString(" AND handle.id = ?")
		args = append(args, q.Sender)
	}

	sb.WriteString(" ORDER BY message.date DESC")
	return sb.String(), args
}
