package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/omega/animator/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCommand struct {
	output  string
	err     error
	produce func(scriptPath, scene string)
	calls   [][]string
	dirs    []string
}

func (f *fakeCommand) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.dirs = append(f.dirs, dir)
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.produce != nil {
		f.produce(args[0], args[1])
	}
	return []byte(f.output), f.err
}

type env struct {
	cfg     Config
	command *fakeCommand
	server  *Server
}

func newEnv(t *testing.T) *env {
	root := t.TempDir()
	cfg := Config{
		WorkDir:    root,
		MediaDir:   filepath.Join(root, "media"),
		ScriptsDir: filepath.Join(root, "scripts"),
		Quality:    "m",
	}
	cmd := &fakeCommand{output: "Rendering..."}
	e := &env{cfg: cfg, command: cmd}
	e.server = NewServer(ServerConfig{}, NewExecutor(cfg, cmd, zap.NewNop()), zap.NewNop())
	return e
}

// writeArtifact mimics the renderer writing its video.
func (e *env) writeArtifact(t *testing.T, rel string) {
	t.Helper()
	p := filepath.Join(e.cfg.MediaDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("mp4"), 0o644))
}

func (e *env) post(t *testing.T, body any) (int, render.Response) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/execute-manim", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	e.server.Router().ServeHTTP(w, req)

	var resp render.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestBanner(t *testing.T) {
	e := newEnv(t)
	w := httptest.NewRecorder()
	e.server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, Banner, w.Body.String())
}

func TestExecuteContentSuccess(t *testing.T) {
	e := newEnv(t)
	e.command.produce = func(string, string) {
		e.writeArtifact(t, "videos/manim_script_abc/720p30/MyScene.mp4")
	}

	code, resp := e.post(t, render.Request{
		ScriptContent: "```python\nfrom manim import *\nclass MyScene(Scene):\n    pass\n```",
		SceneClass:    "MyScene",
		ScriptID:      "abc",
	})

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Equal(t, "videos/manim_script_abc/720p30/MyScene.mp4", resp.OutputPath)
	assert.Equal(t, "Rendering...", resp.Output)

	scriptPath := filepath.Join(e.cfg.ScriptsDir, "manim_script_abc.py")
	assert.Equal(t, []string{"manim", scriptPath, "MyScene", "-qm"}, e.command.calls[0])
	assert.Equal(t, e.cfg.WorkDir, e.command.dirs[0])

	written, err := os.ReadFile(scriptPath)
	require.NoError(t, err)
	assert.NotContains(t, string(written), "```")
}

func TestExecuteFallsBackToFirstFile(t *testing.T) {
	e := newEnv(t)
	e.command.produce = func(string, string) {
		e.writeArtifact(t, "videos/manim_script_abc/720p30/Other.mp4")
	}

	_, resp := e.post(t, render.Request{ScriptContent: "class MyScene(Scene): pass", SceneClass: "MyScene", ScriptID: "abc"})
	assert.True(t, resp.Success)
	assert.Equal(t, "videos/manim_script_abc/720p30/Other.mp4", resp.OutputPath)
}

func TestExecuteMissingArtifactFails(t *testing.T) {
	e := newEnv(t)

	code, resp := e.post(t, render.Request{ScriptContent: "class MyScene(Scene): pass", SceneClass: "MyScene", ScriptID: "abc"})
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "Output file not found")
}

func TestExecuteNarrowsTypeError(t *testing.T) {
	e := newEnv(t)
	e.command.err = errors.New("exit status 1")
	e.command.output = "Manim Community v0.18\n" +
		"│ /manim/scripts/manim_script_abc.py:5 in construct │\n" +
		"❱ 5 │   self.play(Create(1))\n" +
		"noise line\n" +
		"TypeError: Create() argument must be a Mobject\n"

	_, resp := e.post(t, render.Request{ScriptContent: "class MyScene(Scene): pass", SceneClass: "MyScene", ScriptID: "abc"})
	assert.False(t, resp.Success)
	assert.NotContains(t, resp.Error, "noise line")
	assert.Contains(t, resp.Error, "TypeError: Create() argument must be a Mobject")
	assert.Contains(t, resp.Error, "manim_script_abc.py:5")
	assert.Contains(t, resp.Output, "noise line")
}

func TestExecuteOtherFailureKeepsOutput(t *testing.T) {
	e := newEnv(t)
	e.command.err = errors.New("exit status 1")
	e.command.output = "ModuleNotFoundError: No module named 'numpy'"

	_, resp := e.post(t, render.Request{ScriptContent: "class MyScene(Scene): pass", SceneClass: "MyScene", ScriptID: "abc"})
	assert.False(t, resp.Success)
	assert.Equal(t, "ModuleNotFoundError: No module named 'numpy'", resp.Error)
}

func TestExecuteRequestValidation(t *testing.T) {
	e := newEnv(t)

	code, resp := e.post(t, render.Request{SceneClass: "MyScene"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Missing script_path or scene_class", resp.Error)

	code, _ = e.post(t, render.Request{ScriptContent: "x"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = e.post(t, render.Request{ScriptContent: "x", SceneClass: "A; rm -rf /"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = e.post(t, render.Request{ScriptContent: "x", SceneClass: "A", ScriptID: "../../etc/passwd"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = e.post(t, render.Request{ScriptPath: filepath.Join(e.cfg.ScriptsDir, "missing.py"), SceneClass: "A"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, resp.Error, "Script file not found")

	assert.Empty(t, e.command.calls)
}

func TestExecuteExistingScriptPath(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.cfg.ScriptsDir, 0o755))
	p := filepath.Join(e.cfg.ScriptsDir, "manim_script_pre.py")
	require.NoError(t, os.WriteFile(p, []byte("class A(Scene): pass"), 0o644))
	e.command.produce = func(string, string) {
		e.writeArtifact(t, "videos/manim_script_pre/720p30/A.mp4")
	}

	_, resp := e.post(t, render.Request{ScriptPath: p, SceneClass: "A"})
	assert.True(t, resp.Success)
	assert.Equal(t, "videos/manim_script_pre/720p30/A.mp4", resp.OutputPath)
}

func TestQualityDir(t *testing.T) {
	q, dir := QualityDir("h")
	assert.Equal(t, "h", q)
	assert.Equal(t, "1080p60", dir)

	q, dir = QualityDir("x")
	assert.Equal(t, "m", q)
	assert.Equal(t, "720p30", dir)
}

func TestRenderUsesConfiguredQuality(t *testing.T) {
	e := newEnv(t)
	e.cfg.Quality = "l"
	cmd := &fakeCommand{}
	ex := NewExecutor(e.cfg, cmd, zap.NewNop())
	cmd.produce = func(string, string) {
		e.writeArtifact(t, "videos/manim_script_q/480p15/A.mp4")
	}

	code, resp := ex.Execute(context.Background(), render.Request{ScriptContent: "class A(Scene): pass", SceneClass: "A", ScriptID: "q"})
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Equal(t, "-ql", cmd.calls[0][3])
	assert.Equal(t, "videos/manim_script_q/480p15/A.mp4", resp.OutputPath)
}

func TestShutdownBeforeStart(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.server.Shutdown(context.Background()))
	assert.NoError(t, e.server.Start())
}
