package webvision

import (
	"net/url"
	"strings"
)

// localHosts are hostnames that NormalizeURL rejects to prevent server-side
// request forgery against internal services.
var localHosts = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"0.0.0.0":   true,
}

// NormalizeURL validates and canonicalizes a user-supplied URL string.
// Input without a scheme gets https:// prepended; schemes other than http
// and https are rejected. It is a pure function: no I/O, deterministic.
func NormalizeURL(input string) (string, error) {
	cleaned := strings.TrimSpace(input)
	if cleaned == "" {
		return "", Errorf(EINVALID, "URL is required")
	}

	if !hasScheme(cleaned) {
		cleaned = "https://" + cleaned
	}

	u, err := url.Parse(cleaned)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL format")
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", Errorf(EINVALID, "URL must use HTTP or HTTPS protocol")
	}

	host := strings.ToLower(u.Hostname())
	if len(host) < 3 {
		return "", Errorf(EINVALID, "invalid hostname")
	}
	if localHosts[host] {
		return "", Errorf(EINVALID, "local URLs are not allowed")
	}

	return cleaned, nil
}

// hasScheme reports whether s starts with a URL scheme followed by "://".
func hasScheme(s string) bool {
	i := strings.Index(s, "://")
	if i <= 0 {
		return false
	}
	for _, r := range s[:i] {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '+', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}
