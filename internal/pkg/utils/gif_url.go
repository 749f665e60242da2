package utils

import (
	"net/url"
	"strings"
)

const allowedGifDomain = "giphy.com"

// AllowedGifUrl reports whether raw parses as a URL hosted on the GIF
// provider's domain. Image references from anywhere else are rejected.
func AllowedGifUrl(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == allowedGifDomain || strings.HasSuffix(host, "."+allowedGifDomain)
}
