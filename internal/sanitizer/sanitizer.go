package sanitizer

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const (
	// ImportLine is prepended when the script does not start with a manim import.
	ImportLine = "from manim import *"

	placeholderScene = "class DefaultScene(%s):\n    def construct(self):\n        self.add(Text('Generated animation'))"
)

// taggedFenceRe matches an opener whose language tag runs to the end of the line.
var taggedFenceRe = regexp.MustCompile("(?m)```[A-Za-z0-9_+-]*[ \t\r]*$")

// StripFences removes markdown fence markers anywhere in text. A language tag
// is only dropped when nothing else follows it on the line.
func StripFences(text string) string {
	for strings.Contains(text, "```") {
		text = taggedFenceRe.ReplaceAllString(text, "")
		text = strings.ReplaceAll(text, "```", "")
	}
	return text
}

// Sanitizer normalizes AI-generated scripts before execution.
type Sanitizer struct {
	logger    *zap.Logger
	sceneBase string
}

func New(logger *zap.Logger, sceneBase string) *Sanitizer {
	if sceneBase == "" {
		sceneBase = DefaultSceneBase
	}
	return &Sanitizer{logger: logger.Named("sanitizer"), sceneBase: sceneBase}
}

// Clean strips fences and surrounding whitespace, guarantees the manim import
// and guarantees at least one scene class. Clean(Clean(x)) == Clean(x).
func (s *Sanitizer) Clean(raw string) string {
	cleaned := strings.TrimSpace(StripFences(raw))

	if !strings.HasPrefix(cleaned, "from manim import") && !strings.HasPrefix(cleaned, "import manim") {
		cleaned = ImportLine + "\n\n" + cleaned
	}

	if !s.hasSceneClass(cleaned) {
		s.logger.Warn("no scene class found in generated script, adding a placeholder")
		cleaned = strings.TrimRightFunc(cleaned, isSpace) + "\n\n" + fmt.Sprintf(placeholderScene, s.sceneBase)
	}
	return cleaned
}

func (s *Sanitizer) hasSceneClass(script string) bool {
	for _, line := range strings.Split(script, "\n") {
		if strings.Contains(line, "class") && strings.Contains(line, s.sceneBase) {
			return true
		}
	}
	return false
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}
