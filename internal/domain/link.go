package domain

import (
	"time"
)

// Platform identifies a supported short-video platform.
type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformUnknown   Platform = "unknown"
)

// String returns the string representation of the Platform.
func (p Platform) String() string {
	return string(p)
}

// SourceField identifies which message field a candidate URL was found in.
type SourceField string

const (
	FieldText         SourceField = "text"
	FieldEncodedBody  SourceField = "encodedBody"
	FieldPayload      SourceField = "payload"
	FieldRichLinkHint SourceField = "richLinkHint"
)

// URLPreviewBalloonKind is the balloon bundle identifier Messages assigns to
// rich link preview bubbles.
const URLPreviewBalloonKind = "com.apple.messages.URLBalloonProvider"

// MessageRecord is one raw row from the message archive. It is read-only;
// empty string or nil means the column was NULL.
type MessageRecord struct {
	RawText     string
	EncodedBody []byte
	PayloadBlob []byte
	SenderID    string
	SentAtRaw   int64
	BalloonKind string
}

// CandidateURL is a raw URL substring found in one field of one record.
type CandidateURL struct {
	RawURL string
	Source SourceField
}

// CanonicalLink is the normalized form of a candidate URL. CanonicalURL is
// the dedup key: two raw URLs referencing the same content must produce the
// same CanonicalURL.
type CanonicalLink struct {
	CanonicalURL string
	Platform     Platform
	ContentID    string
}

// LinkEntry is one aggregated, persisted link. Timestamp is the latest
// sighting among all messages that referenced the URL, and Sender is the
// sender of that sighting.
type LinkEntry struct {
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
}
