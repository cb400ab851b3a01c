package textproc

import "strings"

var (
	knownSchemes = []string{"http://", "https://", "mailto:", "tel:", "ftp://", "#"}
	knownDomains = []string{".com", ".org", ".net", ".edu", ".gov", ".io"}
)

// FixURL normalizes a hyperlink target: bare e-mail addresses get a mailto:
// scheme and scheme-less web domains get https://. Anything else is returned
// unchanged.
func FixURL(url string) string {
	if url == "" {
		return url
	}

	if strings.Contains(url, "@") && !strings.HasPrefix(url, "mailto:") {
		return "mailto:" + url
	}

	for _, scheme := range knownSchemes {
		if strings.HasPrefix(url, scheme) {
			return url
		}
	}

	if strings.HasPrefix(url, "www.") {
		return "https://" + url
	}
	lower := strings.ToLower(url)
	for _, domain := range knownDomains {
		if strings.Contains(lower, domain) {
			return "https://" + url
		}
	}
	return url
}
