package utils

import "strings"

const defaultWebViewUserAgent = "Mozilla/5.0 (Linux; Android 13; SM-G991B Build/TP1A.220624.014; wv) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/129.0.6668.100 Mobile Safari/537.36 Telegram-Android/11.2.3"

// DefaultWebViewUserAgent returns the UA of the Telegram Android in-app browser.
func DefaultWebViewUserAgent() string {
	return defaultWebViewUserAgent
}

// NormalizeWebViewUserAgent keeps a configured UA when it looks like a browser and
// falls back to the default WebView UA otherwise.
func NormalizeWebViewUserAgent(ua string) string {
	v := strings.TrimSpace(ua)
	if v == "" {
		return defaultWebViewUserAgent
	}
	if looksLikeBrowserUA(v) {
		return v
	}
	return defaultWebViewUserAgent
}

// SecCHPlatform derives the sec-ch-ua-platform value from a UA string.
func SecCHPlatform(ua string) string {
	s := strings.ToLower(ua)
	switch {
	case strings.Contains(s, "android"):
		return `"Android"`
	case strings.Contains(s, "iphone") || strings.Contains(s, "ipad"):
		return `"iOS"`
	case strings.Contains(s, "mac os"):
		return `"macOS"`
	case strings.Contains(s, "windows"):
		return `"Windows"`
	default:
		return `"Linux"`
	}
}

// IsMobileUA reports whether ua belongs to a phone or tablet browser.
func IsMobileUA(ua string) bool {
	s := strings.ToLower(ua)
	if strings.Contains(s, "mobile") {
		return true
	}
	return strings.Contains(s, "iphone") || strings.Contains(s, "android") || strings.Contains(s, "ipad")
}

func looksLikeBrowserUA(ua string) bool {
	s := strings.ToLower(ua)
	if !strings.HasPrefix(s, "mozilla/") {
		return false
	}
	return strings.Contains(s, "applewebkit") || strings.Contains(s, "gecko")
}
