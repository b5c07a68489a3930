// Package request holds helpers that inspect the incoming HTTP request.
package request

import "strings"

const (
	ClientWeb    = "WEB"
	ClientMobile = "MOBILE"
)

// ResolveClientType prefers the explicit X-Client-Type header and falls back
// to sniffing the user agent. Mobile apps send okhttp/CFNetwork/Expo agents.
func ResolveClientType(header, userAgent string) string {
	switch strings.ToUpper(strings.TrimSpace(header)) {
	case ClientWeb:
		return ClientWeb
	case ClientMobile:
		return ClientMobile
	}

	ua := strings.ToLower(userAgent)
	for _, marker := range []string{"okhttp", "cfnetwork", "expo", "dalvik", "reactnative"} {
		if strings.Contains(ua, marker) {
			return ClientMobile
		}
	}
	if strings.Contains(ua, "mozilla") {
		return ClientWeb
	}
	return ClientMobile
}

func IsWebClient(clientType string) bool {
	return clientType == ClientWeb
}
