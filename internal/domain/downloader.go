package domain

import "context"

// Platform is a downloader variant: the platform-specific strategy for
// validating post URLs, extracting their IDs and configuring requests
type Platform interface {
	// Name returns the platform identifier
	Name() string

	// SupportedDomains returns the domain substrings this platform claims
	SupportedDomains() []string

	// SupportsURL reports whether the lowercased URL contains a supported domain
	SupportsURL(url string) bool

	// ValidateURL reports whether the URL is a post URL for this platform
	ValidateURL(url string) bool

	// ExtractVideoID returns the post ID, or "" when the URL carries none
	ExtractVideoID(url string) string

	// RequestOptions returns the overrides merged over the base options
	RequestOptions() RequestOptions
}

// Engine is the external extraction engine
type Engine interface {
	// Download extracts metadata and retrieves the media for url
	Download(ctx context.Context, url string, opts RequestOptions) (*MediaInfo, error)

	// Inspect extracts metadata only, including the available formats
	Inspect(ctx context.Context, url string) (*MediaInfo, error)
}
