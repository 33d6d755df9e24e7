package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/clipshelf/clipshelf/internal/domain"
)

// helperResult is the single JSON object the extraction helper emits on
// stdout. A non-zero exit is a failure regardless of what stdout contains.
type helperResult struct {
	Success   bool   `json:"success"`
	VideoURL  string `json:"video_url"`
	Thumbnail string `json:"thumbnail"`
	Title     string `json:"title"`
	Uploader  string `json:"uploader"`
	Error     string `json:"error"`
}

const (
	embedWidth  = 325
	embedHeight = 578 // 325 * 16/9, portrait
)

// runExtractor spawns one helper process for this request (no pooling, no
// reuse) with the target URL as its sole extra argument, waits for it to
// exit, and wraps its output into a self-contained playable embed. The
// helper may retry network calls internally; this side never retries.
func (r *Resolver) runExtractor(ctx context.Context, link domain.CanonicalLink) (*domain.EmbedDescription, error) {
	ctx, cancel := context.WithTimeout(ctx, r.helperTimeout)
	defer cancel()

	args := append(append([]string{}, r.helperCommand[1:]...), link.CanonicalURL)
	cmd := exec.CommandContext(ctx, r.helperCommand[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, domain.NewResolutionError(link.CanonicalURL, domain.ReasonTimeout,
				fmt.Errorf("extraction helper timed out"))
		}
		return nil, domain.NewResolutionError(link.CanonicalURL, domain.ReasonExtractorError,
			fmt.Errorf("helper exited: %w (stderr: %s)", err, truncate(stderr.String(), 200)))
	}

	var result helperResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		return nil, domain.NewResolutionError(link.CanonicalURL, domain.ReasonExtractorError,
			fmt.Errorf("parse helper output: %w", err))
	}
	if !result.Success {
		return nil, domain.NewResolutionError(link.CanonicalURL, domain.ReasonExtractorError,
			fmt.Errorf("helper reported failure: %s", result.Error))
	}
	if result.VideoURL == "" {
		return nil, domain.NewResolutionError(link.CanonicalURL, domain.ReasonExtractorError,
			fmt.Errorf("helper returned no media URL"))
	}

	return &domain.EmbedDescription{
		Kind:         domain.EmbedVideo,
		HTML:         directVideoHTML(result),
		Width:        embedWidth,
		Height:       embedHeight,
		Title:        result.Title,
		AuthorName:   result.Uploader,
		ThumbnailURL: result.Thumbnail,
		Platform:     link.Platform,
	}, nil
}

func directVideoHTML(result helperResult) string {
	return fmt.Sprintf(`<div class="direct-video" style="position:relative;width:100%%;max-width:%dpx;margin:0 auto;background:#000;border-radius:8px;overflow:hidden;">
  <video controls loop autoplay preload="metadata" poster=%q style="width:100%%;height:auto;display:block;">
    <source src=%q type="video/mp4">
    Your browser does not support the video tag.
  </video>
</div>`, embedWidth, result.Thumbnail, result.VideoURL)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
