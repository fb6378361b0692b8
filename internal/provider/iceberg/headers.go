package iceberg

import (
	"iceberg_farmer/internal/config"
	"iceberg_farmer/internal/httpx"
	"iceberg_farmer/internal/utils"
)

// BrowserHeaders is the header set of the Telegram in-app browser that both
// profiles start from.
func BrowserHeaders(ua string) httpx.Profile {
	return httpx.Profile{
		"Accept":             "application/json, text/plain, */*",
		"Accept-Encoding":    "gzip, deflate, br",
		"Accept-Language":    "vi-VN,vi;q=0.9,en-US;q=0.8,en;q=0.7",
		"Priority":           "u=1, i",
		"Sec-Ch-Ua":          `"Android WebView";v="129", "Not=A?Brand";v="8", "Chromium";v="129"`,
		"Sec-Ch-Ua-Mobile":   mobileHint(ua),
		"Sec-Ch-Ua-Platform": utils.SecCHPlatform(ua),
		"Sec-Fetch-Dest":     "empty",
		"Sec-Fetch-Mode":     "cors",
		"User-Agent":         ua,
		"X-Requested-With":   "org.telegram.messenger",
	}
}

// SiteHeaders is the profile for every call to the site API. It is the only
// profile that carries the auth string.
func SiteHeaders(site config.SiteConfig, auth string) httpx.Profile {
	return BrowserHeaders(site.UserAgent).
		With("Origin", site.BaseURL).
		With("Referer", site.BaseURL+"/").
		With("Sec-Fetch-Site", "same-origin").
		With(site.AuthHeader, auth)
}

// AdHeaders is the profile for the ad network and its tracking callbacks: the
// same browser, seen from the site's origin as a cross-site request.
func AdHeaders(site config.SiteConfig, ads config.AdsConfig) httpx.Profile {
	return BrowserHeaders(site.UserAgent).
		With("Origin", ads.Origin).
		With("Referer", ads.Origin+"/").
		With("Sec-Fetch-Site", "cross-site").
		Without(site.AuthHeader)
}

func mobileHint(ua string) string {
	if utils.IsMobileUA(ua) {
		return "?1"
	}
	return "?0"
}
