// Package resolver turns a canonical short-video URL into a renderable embed
// description. Each resolution is an independent, stateless request: there is
// no caching and no retry. Failed items are for the caller to skip.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/clipshelf/clipshelf/internal/config"
	"github.com/clipshelf/clipshelf/internal/domain"
	"github.com/clipshelf/clipshelf/internal/normalizer"
)

// Capabilities describes how a platform's embeds are obtained. Exactly one
// strategy field is set per platform; which one is a deployment decision.
type Capabilities struct {
	// HasPublicOembed means the platform exposes a public oEmbed endpoint.
	HasPublicOembed bool

	// RequiresExtractionHelper means embeds are built from the output of an
	// out-of-process media extraction helper.
	RequiresExtractionHelper bool

	// SupportsIframeFallback means embeds are provider iframes built
	// directly from the content ID, with a visible fallback affordance and
	// no outbound call.
	SupportsIframeFallback bool
}

// Resolver dispatches resolution requests by platform capability.
type Resolver struct {
	caps           map[domain.Platform]Capabilities
	client         *http.Client
	oembedEndpoint string
	helperCommand  []string
	helperTimeout  time.Duration
	logger         *slog.Logger
}

// New creates a resolver from configuration. The Instagram strategy is
// selected by config: either the extraction helper or the iframe variant,
// never both.
func New(cfg config.ResolverConfig, logger *slog.Logger) *Resolver {
	caps := map[domain.Platform]Capabilities{
		domain.PlatformTikTok: {HasPublicOembed: true},
	}
	if cfg.InstagramStrategy == config.StrategyIframe {
		caps[domain.PlatformInstagram] = Capabilities{SupportsIframeFallback: true}
	} else {
		caps[domain.PlatformInstagram] = Capabilities{RequiresExtractionHelper: true}
	}

	return &Resolver{
		caps:           caps,
		client:         &http.Client{Timeout: cfg.OembedTimeout},
		oembedEndpoint: cfg.OembedEndpoint,
		helperCommand:  cfg.HelperCommand,
		helperTimeout:  cfg.HelperTimeout,
		logger:         logger,
	}
}

// Resolve classifies the URL, dispatches to the platform's strategy, and
// returns a normalized embed description. It fails with
// domain.ErrUnsupportedPlatform for unknown domains (before any outbound
// call) and with *domain.ResolutionError for downstream failures.
func (r *Resolver) Resolve(ctx context.Context, canonicalURL string) (*domain.EmbedDescription, error) {
	link := normalizer.Normalize(canonicalURL)
	if link.Platform == domain.PlatformUnknown {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, canonicalURL)
	}

	caps, ok := r.caps[link.Platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, link.Platform)
	}

	r.logger.Info("resolving embed", "url", link.CanonicalURL, "platform", link.Platform)

	switch {
	case caps.HasPublicOembed:
		return r.fetchOembed(ctx, link)
	case caps.RequiresExtractionHelper:
		if link.ContentID == "" {
			return nil, domain.NewResolutionError(canonicalURL, domain.ReasonBadURL,
				fmt.Errorf("no content identifier in URL path"))
		}
		return r.runExtractor(ctx, link)
	case caps.SupportsIframeFallback:
		if link.ContentID == "" {
			return nil, domain.NewResolutionError(canonicalURL, domain.ReasonBadURL,
				fmt.Errorf("no content identifier in URL path"))
		}
		return r.iframeEmbed(link), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, link.Platform)
	}
}
