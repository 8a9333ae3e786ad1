package core

import "strings"

// Whitelist holds the only file extensions that are packaged.
var Whitelist = []string{".lua", ".yml", ".avsc", ".wsdl", ".html"}

func IsWhitelisted(filename string) bool {
	return endsWithAny(filename, Whitelist)
}

func FilterWhitelisted(original []string) (filtered []string) {
	for _, path := range original {
		if IsWhitelisted(path) {
			filtered = append(filtered, path)
		}
	}
	return filtered
}

func Contains(haystack []string, needle string) bool {
	for _, straw := range haystack {
		if straw == needle {
			return true
		}
	}
	return false
}

func endsWithAny(value string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(value, suffix) {
			return true
		}
	}
	return false
}
