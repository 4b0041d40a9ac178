package sanitizer

import (
	"regexp"
	"strings"
)

const DefaultSceneBase = "Scene"

var classRe = regexp.MustCompile(`^class\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\)\s*:`)

// SceneClassName returns the first class declared directly on sceneBase.
func SceneClassName(script, sceneBase string) (string, bool) {
	if sceneBase == "" {
		sceneBase = DefaultSceneBase
	}
	for _, line := range strings.Split(script, "\n") {
		m := classRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		if m[2] == sceneBase {
			return m[1], true
		}
	}
	return "", false
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name can be passed as a scene class name.
func ValidIdentifier(name string) bool {
	return identifierRe.MatchString(name)
}
