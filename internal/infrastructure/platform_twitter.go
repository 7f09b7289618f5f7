package infrastructure

import (
	"regexp"
	"strings"

	"github.com/yourusername/xdownload/internal/domain"
)

// Tweet URL patterns. Anchored at the scheme so that a tweet URL embedded in
// another URL (e.g. a redirect parameter) does not validate.
var twitterURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(www\.)?(twitter|x)\.com/.+/status/\d+`),
	regexp.MustCompile(`^https?://(www\.)?(twitter|x)\.com/i/status/\d+`),
}

var tweetIDPattern = regexp.MustCompile(`/status/(\d+)`)

// TwitterPlatform implements domain.Platform for X/Twitter
type TwitterPlatform struct {
	config *domain.TwitterConfig
}

// NewTwitterPlatform creates the X/Twitter variant
func NewTwitterPlatform(config *domain.TwitterConfig) *TwitterPlatform {
	if config == nil {
		config = &domain.TwitterConfig{}
	}
	return &TwitterPlatform{config: config}
}

// Name returns the platform identifier
func (p *TwitterPlatform) Name() string {
	return "twitter"
}

// SupportedDomains returns the domains X/Twitter is served from
func (p *TwitterPlatform) SupportedDomains() []string {
	return []string{"twitter.com", "x.com"}
}

// SupportsURL reports whether url mentions twitter.com or x.com anywhere
func (p *TwitterPlatform) SupportsURL(url string) bool {
	return containsDomain(url, p.SupportedDomains())
}

// ValidateURL checks the URL against the tweet URL patterns
func (p *TwitterPlatform) ValidateURL(url string) bool {
	for _, pattern := range twitterURLPatterns {
		if pattern.MatchString(url) {
			return true
		}
	}
	return false
}

// ExtractVideoID returns the first run of digits after /status/
func (p *TwitterPlatform) ExtractVideoID(url string) string {
	match := tweetIDPattern.FindStringSubmatch(url)
	if match == nil {
		return ""
	}
	return match[1]
}

// RequestOptions returns the X/Twitter overrides
func (p *TwitterPlatform) RequestOptions() domain.RequestOptions {
	opts := domain.RequestOptions{}
	if p.config.CookieFile != "" && fileExists(p.config.CookieFile) {
		opts.CookieFile = p.config.CookieFile
	}
	return opts
}

// containsDomain is the substring check shared by every platform.
// It matches anywhere in the URL, not only the host.
func containsDomain(url string, domains []string) bool {
	lower := strings.ToLower(url)
	for _, d := range domains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}
