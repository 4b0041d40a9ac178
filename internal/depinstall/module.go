package depinstall

import (
	"regexp"
	"strings"
)

const (
	markerNoModule    = "No module named"
	markerImportError = "ImportError"
)

var installable = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._\-]*$`)

// MissingModule extracts the module named by the first "No module named" or
// "ImportError" line of errText.
//
// The split is naive: dotted names are returned whole and oddly formatted
// tracebacks may yield the wrong token.
func MissingModule(errText string) (string, bool) {
	if !strings.Contains(errText, markerNoModule) && !strings.Contains(errText, markerImportError) {
		return "", false
	}

	var line string
	for _, l := range strings.Split(errText, "\n") {
		if strings.Contains(l, markerNoModule) || strings.Contains(l, markerImportError) {
			line = l
			break
		}
	}

	var name string
	if _, rest, ok := strings.Cut(line, markerNoModule); ok {
		name = stripQuotes(rest)
	} else if _, rest, ok := strings.Cut(line, markerImportError+":"); ok {
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return "", false
		}
		name = stripQuotes(fields[0])
	}

	if name == "" {
		return "", false
	}
	return name, true
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "'")
	return strings.Trim(s, `"`)
}

// Installable reports whether name is safe to hand to the package manager.
func Installable(name string) bool {
	return installable.MatchString(name)
}
