package core

import "strings"

// NormalizeURL prefixes the address with "http://" unless it already
// carries an http or https scheme. Host and port are not validated.
func NormalizeURL(address string) string {
	if strings.HasPrefix(address, "http://") || strings.HasPrefix(address, "https://") {
		return address
	}
	return "http://" + address
}

func JoinURL(parts ...string) string {
	trimmed := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed = append(trimmed, strings.TrimRight(part, "/"))
	}
	return strings.Join(trimmed, "/")
}
