package server

import (
	"net/http"
	"strings"
)

// DeriveWebhookURL computes the externally visible URL for a token. It runs
// once, at token-creation time, and the result is stored. Precedence: the
// statically configured base URL, then proxy-forwarded scheme/host headers,
// then the request Host.
func DeriveWebhookURL(baseURL string, r *http.Request, token string) string {
	if baseURL != "" {
		return strings.TrimRight(baseURL, "/") + "/" + token
	}

	scheme := firstForwarded(r.Header.Get("X-Forwarded-Proto"))
	host := firstForwarded(r.Header.Get("X-Forwarded-Host"))
	if (scheme == "http" || scheme == "https") && host != "" {
		return strings.TrimRight(scheme+"://"+host, "/") + "/" + token
	}

	host = r.Host
	if host == "" {
		host = "localhost:3000"
	}
	scheme = "https"
	if strings.HasPrefix(host, "localhost") || strings.HasPrefix(host, "127.0.0.1") {
		scheme = "http"
	}
	return strings.TrimRight(scheme+"://"+host, "/") + "/" + token
}

// firstForwarded returns the first comma-separated value, trimmed. Proxies
// append to forwarded headers, so the first entry is the original client.
func firstForwarded(v string) string {
	if v == "" {
		return ""
	}
	first, _, _ := strings.Cut(v, ",")
	return strings.TrimSpace(first)
}
