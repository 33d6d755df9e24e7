// Package normalizer reduces raw short-video URLs to a stable canonical form
// used as the dedup key everywhere else.
package normalizer

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/clipshelf/clipshelf/internal/domain"
)

// contentIDPattern extracts a platform content identifier from a raw URL.
// Patterns are checked in fixed priority order and are mutually exclusive by
// construction; the first match wins.
type contentIDPattern struct {
	platform  domain.Platform
	re        *regexp.Regexp
	canonical string // %s is replaced with the content ID
}

var contentIDPatterns = []contentIDPattern{
	// tiktok.com/@user/video/12345, m.tiktok.com/@user/video/12345
	{domain.PlatformTikTok, regexp.MustCompile(`tiktok\.com/[^/]+/video/(\d+)`), "https://www.tiktok.com/video/%s"},
	// tiktok.com/video/12345 (already canonical)
	{domain.PlatformTikTok, regexp.MustCompile(`tiktok\.com/video/(\d+)`), "https://www.tiktok.com/video/%s"},
	// instagram.com/reel/Cxyz, instagram.com/reels/Cxyz
	{domain.PlatformInstagram, regexp.MustCompile(`instagram\.com/reels?/([A-Za-z0-9_-]+)`), "https://www.instagram.com/reel/%s"},
	// instagram.com/p/Cxyz
	{domain.PlatformInstagram, regexp.MustCompile(`instagram\.com/p/([A-Za-z0-9_-]+)`), "https://www.instagram.com/p/%s"},
}

// trackingParams is the deny-list of query parameter name prefixes stripped
// during structural normalization. Order is fixed; matching is by prefix so
// families like utm_* collapse under one entry.
var trackingParams = []string{
	"_d", "_r", "_t", "lang", "is_copy_url", "is_from_webapp", "checksum",
	"tt_from", "u_code", "ug_btm", "user_id",
	"utm_", "share_app_id", "share_item_id", "share_link_id", "share_scene",
	"sharer_language", "social_share_type", "timestamp",
	"igsh", "igshid", "ig_rid",
}

// shortHosts maps known mobile/short-link hosts to the canonical www host.
var shortHosts = map[string]string{
	"vm.tiktok.com":   "www.tiktok.com",
	"m.tiktok.com":    "www.tiktok.com",
	"m.instagram.com": "www.instagram.com",
}

// Normalize produces the canonical link for a raw URL. It never fails: input
// that cannot be parsed as a URL is returned unchanged with an unknown
// platform. Normalization is idempotent.
func Normalize(rawURL string) domain.CanonicalLink {
	for _, p := range contentIDPatterns {
		if m := p.re.FindStringSubmatch(rawURL); m != nil {
			return domain.CanonicalLink{
				CanonicalURL: strings.Replace(p.canonical, "%s", m[1], 1),
				Platform:     p.platform,
				ContentID:    m[1],
			}
		}
	}
	return structural(rawURL)
}

// structural is the fallback for URLs with no recognizable content ID, such
// as vm.tiktok.com short links: strip tracking parameters, rewrite short
// hosts, and drop a non-root trailing slash.
func structural(rawURL string) domain.CanonicalLink {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return domain.CanonicalLink{CanonicalURL: rawURL, Platform: domain.PlatformUnknown}
	}

	platform := PlatformForHost(u.Host)
	if platform == domain.PlatformUnknown {
		return domain.CanonicalLink{CanonicalURL: rawURL, Platform: domain.PlatformUnknown}
	}

	q := u.Query()
	for key := range q {
		for _, deny := range trackingParams {
			if strings.HasPrefix(key, deny) {
				q.Del(key)
				break
			}
		}
	}
	u.RawQuery = q.Encode() // Encode sorts keys, keeping output deterministic

	if canonical, ok := shortHosts[u.Host]; ok {
		u.Host = canonical
	}

	normalized := u.String()
	if strings.HasSuffix(normalized, "/") && u.Path != "/" && u.Path != "" {
		normalized = strings.TrimSuffix(normalized, "/")
	}

	return domain.CanonicalLink{CanonicalURL: normalized, Platform: platform}
}

// PlatformForHost classifies a hostname.
func PlatformForHost(host string) domain.Platform {
	host = strings.ToLower(host)
	switch {
	case host == "tiktok.com" || strings.HasSuffix(host, ".tiktok.com"):
		return domain.PlatformTikTok
	case host == "instagram.com" || strings.HasSuffix(host, ".instagram.com"):
		return domain.PlatformInstagram
	default:
		return domain.PlatformUnknown
	}
}
