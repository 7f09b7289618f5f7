package infrastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/xdownload/internal/domain"
)

func TestTwitterPlatform_ValidateURL(t *testing.T) {
	platform := NewTwitterPlatform(nil)

	tests := []struct {
		url      string
		valid    bool
		expected string
	}{
		{"https://x.com/user/status/1234567890", true, "1234567890"},
		{"https://twitter.com/user/status/1234567890", true, "1234567890"},
		{"https://www.twitter.com/user/status/42", true, "42"},
		{"https://www.x.com/user/status/42", true, "42"},
		{"http://x.com/user/status/42", true, "42"},
		{"https://x.com/i/status/987654321", true, "987654321"},
		{"https://x.com/user/status/123?s=20&t=abc", true, "123"},
		{"https://x.com/user/status/123/video/1", true, "123"},
		{"https://x.com/user", false, ""},
		{"https://x.com/user/status/", false, ""},
		{"https://x.com/user/status/abc", false, ""},
		{"https://mobile.twitter.com/user/status/1", false, "1"},
		{"https://example.com/?u=https://x.com/user/status/1", false, "1"},
		{"ftp://x.com/user/status/1", false, "1"},
		{"x.com/user/status/1", false, "1"},
		{"not a url", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.valid, platform.ValidateURL(tt.url))
			assert.Equal(t, tt.expected, platform.ExtractVideoID(tt.url))
		})
	}
}

func TestTwitterPlatform_ExtractVideoID_NoDigits(t *testing.T) {
	platform := NewTwitterPlatform(nil)

	assert.Empty(t, platform.ExtractVideoID("https://x.com/user/status/"))
	assert.Empty(t, platform.ExtractVideoID("https://x.com/user/status/abc"))
	assert.Equal(t, "7", platform.ExtractVideoID("https://x.com/a/status/7/status/8"))
}

func TestTwitterPlatform_SupportsURL(t *testing.T) {
	platform := NewTwitterPlatform(nil)

	assert.True(t, platform.SupportsURL("https://x.com/a/status/1"))
	assert.True(t, platform.SupportsURL("HTTPS://TWITTER.COM/a/status/1"))
	assert.True(t, platform.SupportsURL("https://mobile.twitter.com/a"))
	assert.False(t, platform.SupportsURL("https://youtube.com/watch?v=1"))
	assert.False(t, platform.SupportsURL("https://example.com/a"))
	// substring match, not host match
	assert.True(t, platform.SupportsURL("https://box.com/file"))
}

func TestTwitterPlatform_Identity(t *testing.T) {
	platform := NewTwitterPlatform(nil)

	assert.Equal(t, "twitter", platform.Name())
	assert.ElementsMatch(t, []string{"twitter.com", "x.com"}, platform.SupportedDomains())

	var _ domain.Platform = platform
}

func TestTwitterPlatform_RequestOptions(t *testing.T) {
	t.Run("no cookie file", func(t *testing.T) {
		platform := NewTwitterPlatform(&domain.TwitterConfig{})
		assert.Equal(t, domain.RequestOptions{}, platform.RequestOptions())
	})

	t.Run("missing cookie file is ignored", func(t *testing.T) {
		platform := NewTwitterPlatform(&domain.TwitterConfig{CookieFile: "/nonexistent/x.cookie"})
		assert.Empty(t, platform.RequestOptions().CookieFile)
	})

	t.Run("existing cookie file", func(t *testing.T) {
		cookieFile := filepath.Join(t.TempDir(), "x.cookie")
		require.NoError(t, os.WriteFile(cookieFile, []byte("# Netscape HTTP Cookie File\n"), 0644))

		platform := NewTwitterPlatform(&domain.TwitterConfig{CookieFile: cookieFile})
		assert.Equal(t, cookieFile, platform.RequestOptions().CookieFile)
	})
}
