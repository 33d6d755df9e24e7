package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/clipshelf/clipshelf/internal/domain"
)

// oembedResponse is the subset of the provider's oEmbed payload the viewer
// needs. The upstream response does not identify its platform; the resolver
// stamps it on the way out.
type oembedResponse struct {
	Title           string `json:"title"`
	AuthorName      string `json:"author_name"`
	HTML            string `json:"html"`
	ThumbnailURL    string `json:"thumbnail_url"`
	ThumbnailWidth  int    `json:"thumbnail_width"`
	ThumbnailHeight int    `json:"thumbnail_height"`
}

// fetchOembed issues one metadata request to the platform's embed endpoint.
// Upstream rate limits make retries counterproductive, so any transport
// error or non-2xx response is terminal for this request.
func (r *Resolver) fetchOembed(ctx context.Context, link domain.CanonicalLink) (*domain.EmbedDescription, error) {
	endpoint := r.oembedEndpoint + "?url=" + url.QueryEscape(link.CanonicalURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.NewResolutionError(link.CanonicalURL, domain.ReasonUpstreamError, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		reason := domain.ReasonUpstreamError
		var ne net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			reason = domain.ReasonTimeout
		}
		return nil, domain.NewResolutionError(link.CanonicalURL, reason, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewResolutionError(link.CanonicalURL, domain.ReasonUpstreamError,
			fmt.Errorf("oembed endpoint returned status %d", resp.StatusCode))
	}

	var body oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.NewResolutionError(link.CanonicalURL, domain.ReasonUpstreamError,
			fmt.Errorf("decode oembed response: %w", err))
	}

	return &domain.EmbedDescription{
		Kind:         domain.EmbedVideo,
		HTML:         body.HTML,
		Width:        body.ThumbnailWidth,
		Height:       body.ThumbnailHeight,
		Title:        body.Title,
		AuthorName:   body.AuthorName,
		ThumbnailURL: body.ThumbnailURL,
		Platform:     link.Platform,
	}, nil
}
