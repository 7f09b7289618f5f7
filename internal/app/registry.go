package app

import (
	"strings"

	"github.com/yourusername/xdownload/internal/domain"
	"github.com/yourusername/xdownload/internal/infrastructure"
)

// registryEntry binds one alias to its platform
type registryEntry struct {
	alias    string
	platform domain.Platform
}

// Registry maps platform aliases and URLs to platforms.
// Entries keep registration order, which decides URL detection.
// A Registry is built once at startup and only read afterwards.
type Registry struct {
	entries []registryEntry
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry registers every built-in platform.
// twitter and x both resolve to the X/Twitter platform.
func NewDefaultRegistry(config *domain.Config) *Registry {
	var twitterConfig *domain.TwitterConfig
	if config != nil {
		twitterConfig = &config.Twitter
	}

	r := NewRegistry()
	r.Register(infrastructure.NewTwitterPlatform(twitterConfig), "twitter", "x")
	return r
}

// Register adds platform under each alias. Aliases are case-insensitive;
// re-registering an alias replaces its platform in place.
func (r *Registry) Register(platform domain.Platform, aliases ...string) {
	for _, alias := range aliases {
		alias = strings.ToLower(alias)
		if i := r.index(alias); i >= 0 {
			r.entries[i].platform = platform
			continue
		}
		r.entries = append(r.entries, registryEntry{alias: alias, platform: platform})
	}
}

// Detect returns the first alias whose platform claims url
func (r *Registry) Detect(url string) (string, bool) {
	for _, e := range r.entries {
		if e.platform.SupportsURL(url) {
			return e.alias, true
		}
	}
	return "", false
}

// Get returns the platform registered under alias
func (r *Registry) Get(alias string) (domain.Platform, error) {
	if i := r.index(strings.ToLower(alias)); i >= 0 {
		return r.entries[i].platform, nil
	}
	return nil, &domain.UnsupportedPlatformError{
		Platform:  strings.ToLower(alias),
		Available: r.Aliases(),
	}
}

// Aliases returns the registered aliases in registration order
func (r *Registry) Aliases() []string {
	aliases := make([]string, len(r.entries))
	for i, e := range r.entries {
		aliases[i] = e.alias
	}
	return aliases
}

// PlatformInfo describes one alias for listings
type PlatformInfo struct {
	Alias    string   `json:"alias"`
	Platform string   `json:"platform"`
	Domains  []string `json:"domains"`
}

// Platforms lists every alias with its platform and domains
func (r *Registry) Platforms() []PlatformInfo {
	infos := make([]PlatformInfo, len(r.entries))
	for i, e := range r.entries {
		infos[i] = PlatformInfo{
			Alias:    e.alias,
			Platform: e.platform.Name(),
			Domains:  e.platform.SupportedDomains(),
		}
	}
	return infos
}

func (r *Registry) index(alias string) int {
	for i, e := range r.entries {
		if e.alias == alias {
			return i
		}
	}
	return -1
}
