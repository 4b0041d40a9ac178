package sanitizer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var samples = []string{
	"",
	"   \n\t",
	"```python\nfrom manim import *\n\nclass A(Scene):\n    def construct(self):\n        pass\n```",
	"Here you go:\n```py\nclass B(Scene):\n    pass\n```\nEnjoy!",
	"``\n```python\n`",
	"``````",
	"from manim import *\n\nclass C(Scene):\n    pass",
	"import manim\nprint('no scene')",
	"x = 1\n\n\n",
	"```\n```\n```",
	"class D(ThreeDScene):\n    pass",
	"```from manim import *\n\nclass E(Scene):\n    pass\n```",
	"```python   \r\nclass F(Scene):\n    pass```",
}

func TestCleanIsIdempotent(t *testing.T) {
	s := New(zap.NewNop(), "")
	for _, in := range samples {
		once := s.Clean(in)
		twice := s.Clean(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("Clean not idempotent for %q (-once +twice):\n%s", in, diff)
		}
	}
}

func TestCleanRemovesAllFences(t *testing.T) {
	s := New(zap.NewNop(), "")
	for _, in := range samples {
		out := s.Clean(in)
		assert.NotContains(t, out, "```python")
		assert.NotContains(t, out, "```")
	}
}

func TestCleanKeepsWellFormedScript(t *testing.T) {
	s := New(zap.NewNop(), "")
	in := "from manim import *\n\nclass C(Scene):\n    def construct(self):\n        self.play(Create(Circle()))"
	assert.Equal(t, in, s.Clean(in))
}

func TestCleanStripsFencesAndPrependsImport(t *testing.T) {
	s := New(zap.NewNop(), "")
	out := s.Clean("```python\nclass A(Scene):\n    pass\n```\n")
	assert.Equal(t, "from manim import *\n\nclass A(Scene):\n    pass", out)
}

func TestCleanKeepsCodeOnFenceLine(t *testing.T) {
	s := New(zap.NewNop(), "")
	out := s.Clean("```from manim import *\n\nclass E(Scene):\n    pass\n```")
	assert.Equal(t, "from manim import *\n\nclass E(Scene):\n    pass", out)

	assert.Equal(t, "\nx = 1\n", StripFences("```py\nx = 1\n```"))
}

func TestCleanAddsPlaceholderAndWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := New(zap.New(core), "")

	out := s.Clean("from manim import *\nx = 1")

	assert.True(t, strings.HasSuffix(out, "class DefaultScene(Scene):\n    def construct(self):\n        self.add(Text('Generated animation'))"))
	assert.Equal(t, 1, logs.Len())

	name, ok := SceneClassName(out, "")
	assert.True(t, ok)
	assert.Equal(t, "DefaultScene", name)
}

func TestCleanPlaceholderUsesConfiguredBase(t *testing.T) {
	s := New(zap.NewNop(), "MovingCameraScene")
	out := s.Clean("x = 1")
	assert.Contains(t, out, "class DefaultScene(MovingCameraScene):")
	assert.Equal(t, out, s.Clean(out))
}

func TestSceneClassName(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
		found  bool
	}{
		{"simple", "from manim import *\n\nclass MyScene(Scene):\n    pass", "MyScene", true},
		{"first match wins", "class First(Scene):\n    pass\nclass Second(Scene):\n    pass", "First", true},
		{"indented", "if True:\n    class Inner( Scene ):\n        pass", "Inner", true},
		{"other base skipped", "class Helper(VGroup):\n    pass\nclass Main(Scene):\n    pass", "Main", true},
		{"three d scene not matched", "class Cube(ThreeDScene):\n    pass", "", false},
		{"no class", "print('hello')", "", false},
		{"comment mention", "# class Fake(Scene):", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SceneClassName(tt.script, "Scene")
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, "\ncode\n", StripFences("```python\ncode\n```"))
	assert.NotContains(t, StripFences("``"+"```python"+"`"), "```")
	assert.Equal(t, "", StripFences("``````"))
}

func TestValidIdentifier(t *testing.T) {
	assert.True(t, ValidIdentifier("MyScene"))
	assert.True(t, ValidIdentifier("_Scene2"))
	assert.False(t, ValidIdentifier("2Scene"))
	assert.False(t, ValidIdentifier("Scene; rm -rf /"))
	assert.False(t, ValidIdentifier(""))
}
