package resolver

import (
	"fmt"
	"strings"

	"github.com/clipshelf/clipshelf/internal/domain"
)

// iframeEmbed builds a provider iframe directly from the content ID with no
// outbound call. The markup carries a visible fallback link the viewer can
// surface if the iframe fails to render; detecting that failure is a
// front-end concern.
func (r *Resolver) iframeEmbed(link domain.CanonicalLink) *domain.EmbedDescription {
	embedURL := strings.TrimSuffix(link.CanonicalURL, "/") + "/embed/"

	html := fmt.Sprintf(`<div class="iframe-embed" style="max-width:%dpx;margin:0 auto;">
  <iframe src=%q width="%d" height="%d" frameborder="0" scrolling="no" allowtransparency="true" allowfullscreen="true"></iframe>
  <div class="iframe-fallback" style="text-align:center;padding:8px;">
    <a href=%q target="_blank" rel="noopener">Open on Instagram</a>
  </div>
</div>`, embedWidth, embedURL, embedWidth, embedHeight, link.CanonicalURL)

	return &domain.EmbedDescription{
		Kind:     domain.EmbedRich,
		HTML:     html,
		Width:    embedWidth,
		Height:   embedHeight,
		Platform: link.Platform,
	}
}
