// Package scanner finds candidate short-video URLs in message records.
//
// A record carries several text-bearing fields; two of them (encodedBody and
// payloadBlob) are opaque app serializations that are decoded as best-effort
// text. That decoding is inherently lossy and treated as a heuristic, not a
// guaranteed extraction path: a field that cannot be read as text simply
// yields no candidates.
package scanner

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/clipshelf/clipshelf/internal/domain"
)

// platformPattern associates a platform with the URL regexp that finds its
// links inside free-form text. Adding a platform means adding a row here and
// teaching the normalizer its canonical forms.
type platformPattern struct {
	platform domain.Platform
	token    string
	re       *regexp.Regexp
}

var platformPatterns = []platformPattern{
	{
		platform: domain.PlatformTikTok,
		token:    "tiktok.com",
		re:       regexp.MustCompile(`https?://(?:www\.|m\.|vm\.)?tiktok\.com/[^\s]+`),
	},
	{
		platform: domain.PlatformInstagram,
		token:    "instagram.com",
		re:       regexp.MustCompile(`https?://(?:www\.|m\.)?instagram\.com/[^\s]+`),
	},
}

// DomainTokens returns the platform domain substrings used to pre-filter
// message rows at the store level.
func DomainTokens() []string {
	tokens := make([]string, 0, len(platformPatterns))
	for _, p := range platformPatterns {
		tokens = append(tokens, p.token)
	}
	return tokens
}

// Scanner extracts candidate URLs from message records. It performs no
// network or disk access.
type Scanner struct {
	logger *slog.Logger
}

// New creates a new Scanner.
func New(logger *slog.Logger) *Scanner {
	return &Scanner{logger: logger}
}

// Scan returns the candidate URLs found in one record, deduplicated by raw
// string within the record. Fields are scanned in priority order: plain
// text, decoded encodedBody, decoded payloadBlob, and the plain text again
// when the record is a rich link preview bubble.
func (s *Scanner) Scan(rec domain.MessageRecord) []domain.CandidateURL {
	var found []domain.CandidateURL
	seen := make(map[string]struct{})

	add := func(text string, source domain.SourceField) {
		for _, p := range platformPatterns {
			for _, raw := range p.re.FindAllString(text, -1) {
				if _, ok := seen[raw]; ok {
					continue
				}
				seen[raw] = struct{}{}
				found = append(found, domain.CandidateURL{RawURL: raw, Source: source})
			}
		}
	}

	if rec.RawText != "" {
		add(rec.RawText, domain.FieldText)
	}

	if text, ok := s.decodeBlob(rec.EncodedBody, domain.FieldEncodedBody); ok {
		add(text, domain.FieldEncodedBody)
	}
	if text, ok := s.decodeBlob(rec.PayloadBlob, domain.FieldPayload); ok {
		add(text, domain.FieldPayload)
	}

	// A rich link bubble is authoritative: scan its text even if the generic
	// pass already did. Duplicates collapse through the per-record set.
	if rec.BalloonKind == domain.URLPreviewBalloonKind && rec.RawText != "" {
		add(rec.RawText, domain.FieldRichLinkHint)
	}

	return found
}

// decodeBlob converts an opaque binary field to scannable text. URLs inside
// these serializations are plain ASCII runs, so every byte outside the
// printable ASCII range becomes a separator, which also terminates the
// non-whitespace tail of the URL regexp at the right place.
func (s *Scanner) decodeBlob(blob []byte, source domain.SourceField) (string, bool) {
	if len(blob) == 0 {
		return "", false
	}

	var b strings.Builder
	b.Grow(len(blob))
	printable := 0
	for _, c := range blob {
		if c >= 0x20 && c <= 0x7e {
			b.WriteByte(c)
			printable++
		} else {
			b.WriteByte(' ')
		}
	}

	if printable == 0 {
		s.logger.Debug("binary field has no printable text", "field", source, "bytes", len(blob))
		return "", false
	}
	return b.String(), true
}
