package domain

import (
	"errors"
	"testing"
	"time"
)

func TestTimeFromAppleTicks(t *testing.T) {
	tests := []struct {
		name  string
		ticks int64
		want  time.Time
	}{
		{
			name:  "epoch",
			ticks: 0,
			want:  time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "one second",
			ticks: 1_000_000_000,
			want:  time.Date(2001, 1, 1, 0, 0, 1, 0, time.UTC),
		},
		{
			name:  "a real message timestamp",
			ticks: 725_846_400_000_000_000,
			want:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeFromAppleTicks(tt.ticks)
			if !got.Equal(tt.want) {
				t.Errorf("TimeFromAppleTicks(%d) = %v, want %v", tt.ticks, got, tt.want)
			}
		})
	}
}

func TestAppleTicks_RoundTrip(t *testing.T) {
	orig := time.Date(2024, 3, 1, 12, 30, 45, 123456789, time.UTC)
	got := TimeFromAppleTicks(AppleTicks(orig))
	if !got.Equal(orig) {
		t.Errorf("round trip = %v, want %v", got, orig)
	}
}

func TestResolutionError(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewResolutionError("https://www.tiktok.com/video/1", ReasonUpstreamError, inner)

	if !errors.Is(err, inner) {
		t.Error("ResolutionError should unwrap to inner error")
	}

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatal("errors.As should match *ResolutionError")
	}
	if resErr.Reason != ReasonUpstreamError {
		t.Errorf("Reason = %q, want %q", resErr.Reason, ReasonUpstreamError)
	}

	msg := err.Error()
	want := "resolve https://www.tiktok.com/video/1: upstream-error: connection refused"
	if msg != want {
		t.Errorf("Error() = %q, want %q", msg, want)
	}
}

func TestResolutionError_NoInner(t *testing.T) {
	err := NewResolutionError("u", ReasonTimeout, nil)
	if got, want := err.Error(), "resolve u: timeout"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
