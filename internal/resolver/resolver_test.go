package resolver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/clipshelf/clipshelf/internal/config"
	"github.com/clipshelf/clipshelf/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testResolver(cfg config.ResolverConfig) *Resolver {
	if cfg.OembedTimeout == 0 {
		cfg.OembedTimeout = 5 * time.Second
	}
	if cfg.HelperTimeout == 0 {
		cfg.HelperTimeout = 5 * time.Second
	}
	if cfg.InstagramStrategy == "" {
		cfg.InstagramStrategy = config.StrategyExtractor
	}
	return New(cfg, testLogger())
}

func reasonOf(t *testing.T, err error) domain.ResolutionReason {
	t.Helper()
	var resErr *domain.ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("want *domain.ResolutionError, got %v", err)
	}
	return resErr.Reason
}

func TestResolve_UnsupportedPlatformMakesNoCall(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	r := testResolver(config.ResolverConfig{OembedEndpoint: srv.URL})

	_, err := r.Resolve(context.Background(), "https://youtube.com/watch?v=abc")
	if !errors.Is(err, domain.ErrUnsupportedPlatform) {
		t.Fatalf("want ErrUnsupportedPlatform, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("unsupported platform made %d outbound calls, want 0", calls.Load())
	}
}

func TestResolve_OembedSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("url"); got != "https://www.tiktok.com/video/123" {
			t.Errorf("oembed url param = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"title": "a clip",
			"author_name": "someone",
			"html": "<blockquote class=\"tiktok-embed\"></blockquote>",
			"thumbnail_url": "https://cdn.example/thumb.jpg",
			"thumbnail_width": 576,
			"thumbnail_height": 1024
		}`)
	}))
	defer srv.Close()

	r := testResolver(config.ResolverConfig{OembedEndpoint: srv.URL})

	got, err := r.Resolve(context.Background(), "https://www.tiktok.com/@a/video/123")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if got.Kind != domain.EmbedVideo {
		t.Errorf("Kind = %q, want %q", got.Kind, domain.EmbedVideo)
	}
	if got.Platform != domain.PlatformTikTok {
		t.Errorf("Platform = %q, want tiktok", got.Platform)
	}
	if got.Title != "a clip" || got.AuthorName != "someone" {
		t.Errorf("metadata = %q / %q", got.Title, got.AuthorName)
	}
	if !strings.Contains(got.HTML, "tiktok-embed") {
		t.Errorf("HTML = %q, want provider markup", got.HTML)
	}
	if got.Width != 576 || got.Height != 1024 {
		t.Errorf("dimensions = %dx%d", got.Width, got.Height)
	}
}

func TestResolve_OembedUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	r := testResolver(config.ResolverConfig{OembedEndpoint: srv.URL})

	_, err := r.Resolve(context.Background(), "https://www.tiktok.com/video/123")
	if got := reasonOf(t, err); got != domain.ReasonUpstreamError {
		t.Errorf("Reason = %q, want %q", got, domain.ReasonUpstreamError)
	}
}

func TestResolve_OembedBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	}))
	defer srv.Close()

	r := testResolver(config.ResolverConfig{OembedEndpoint: srv.URL})

	_, err := r.Resolve(context.Background(), "https://www.tiktok.com/video/123")
	if got := reasonOf(t, err); got != domain.ReasonUpstreamError {
		t.Errorf("Reason = %q, want %q", got, domain.ReasonUpstreamError)
	}
}

func TestResolve_OembedTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	r := testResolver(config.ResolverConfig{
		OembedEndpoint: srv.URL,
		OembedTimeout:  50 * time.Millisecond,
	})

	_, err := r.Resolve(context.Background(), "https://www.tiktok.com/video/123")
	if got := reasonOf(t, err); got != domain.ReasonTimeout {
		t.Errorf("Reason = %q, want %q", got, domain.ReasonTimeout)
	}
}

func TestResolve_ExtractorSuccess(t *testing.T) {
	r := testResolver(config.ResolverConfig{
		InstagramStrategy: config.StrategyExtractor,
		HelperCommand: []string{"sh", "-c",
			`echo '{"success":true,"video_url":"https://cdn.example/v.mp4","thumbnail":"https://cdn.example/t.jpg","title":"reel","uploader":"someone"}'`},
	})

	got, err := r.Resolve(context.Background(), "https://www.instagram.com/reel/Cabc123/")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if got.Kind != domain.EmbedVideo {
		t.Errorf("Kind = %q, want %q", got.Kind, domain.EmbedVideo)
	}
	if got.Platform != domain.PlatformInstagram {
		t.Errorf("Platform = %q, want instagram", got.Platform)
	}
	if !strings.Contains(got.HTML, "https://cdn.example/v.mp4") {
		t.Errorf("HTML should reference the extracted media URL, got %q", got.HTML)
	}
	if got.Title != "reel" || got.AuthorName != "someone" {
		t.Errorf("metadata = %q / %q", got.Title, got.AuthorName)
	}
}

func TestResolve_ExtractorNonZeroExit(t *testing.T) {
	r := testResolver(config.ResolverConfig{
		InstagramStrategy: config.StrategyExtractor,
		// Valid-looking stdout does not rescue a failed exit.
		HelperCommand: []string{"sh", "-c", `echo '{"success":true,"video_url":"x"}'; exit 3`},
	})

	_, err := r.Resolve(context.Background(), "https://www.instagram.com/reel/Cabc123/")
	if got := reasonOf(t, err); got != domain.ReasonExtractorError {
		t.Errorf("Reason = %q, want %q", got, domain.ReasonExtractorError)
	}
}

func TestResolve_ExtractorReportedFailure(t *testing.T) {
	r := testResolver(config.ResolverConfig{
		InstagramStrategy: config.StrategyExtractor,
		HelperCommand:     []string{"sh", "-c", `echo '{"success":false,"error":"private account"}'`},
	})

	_, err := r.Resolve(context.Background(), "https://www.instagram.com/reel/Cabc123/")
	if got := reasonOf(t, err); got != domain.ReasonExtractorError {
		t.Errorf("Reason = %q, want %q", got, domain.ReasonExtractorError)
	}
	if !strings.Contains(err.Error(), "private account") {
		t.Errorf("error should carry the helper's message, got %v", err)
	}
}

func TestResolve_ExtractorGarbageOutput(t *testing.T) {
	r := testResolver(config.ResolverConfig{
		InstagramStrategy: config.StrategyExtractor,
		HelperCommand:     []string{"sh", "-c", `echo 'WARNING: something'`},
	})

	_, err := r.Resolve(context.Background(), "https://www.instagram.com/reel/Cabc123/")
	if got := reasonOf(t, err); got != domain.ReasonExtractorError {
		t.Errorf("Reason = %q, want %q", got, domain.ReasonExtractorError)
	}
}

func TestResolve_ExtractorTimeout(t *testing.T) {
	r := testResolver(config.ResolverConfig{
		InstagramStrategy: config.StrategyExtractor,
		HelperCommand:     []string{"sh", "-c", "sleep 5"},
		HelperTimeout:     50 * time.Millisecond,
	})

	_, err := r.Resolve(context.Background(), "https://www.instagram.com/reel/Cabc123/")
	if got := reasonOf(t, err); got != domain.ReasonTimeout {
		t.Errorf("Reason = %q, want %q", got, domain.ReasonTimeout)
	}
}

func TestResolve_ExtractorNoContentID(t *testing.T) {
	r := testResolver(config.ResolverConfig{
		InstagramStrategy: config.StrategyExtractor,
		HelperCommand:     []string{"sh", "-c", "echo should-not-run; exit 1"},
	})

	// A profile URL has no shortcode to extract from.
	_, err := r.Resolve(context.Background(), "https://www.instagram.com/someone/")
	if got := reasonOf(t, err); got != domain.ReasonBadURL {
		t.Errorf("Reason = %q, want %q", got, domain.ReasonBadURL)
	}
}

func TestResolve_IframeStrategy(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	r := testResolver(config.ResolverConfig{
		InstagramStrategy: config.StrategyIframe,
		OembedEndpoint:    srv.URL,
	})

	got, err := r.Resolve(context.Background(), "https://www.instagram.com/reel/Cabc123/")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if got.Kind != domain.EmbedRich {
		t.Errorf("Kind = %q, want %q", got.Kind, domain.EmbedRich)
	}
	if !strings.Contains(got.HTML, "https://www.instagram.com/reel/Cabc123/embed/") {
		t.Errorf("HTML should embed the canonical URL, got %q", got.HTML)
	}
	if !strings.Contains(got.HTML, "Open on Instagram") {
		t.Errorf("HTML should carry the fallback link, got %q", got.HTML)
	}
	if calls.Load() != 0 {
		t.Errorf("iframe strategy made %d outbound calls, want 0", calls.Load())
	}
}
