package renderer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/omega/animator/internal/render"
	"github.com/omega/animator/internal/sanitizer"
	"go.uber.org/zap"
)

// Command runs a program in dir and returns its combined output.
type Command interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

type ExecCommand struct{}

func NewExecCommand() Command {
	return ExecCommand{}
}

func (ExecCommand) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

type Config struct {
	WorkDir    string
	MediaDir   string
	ScriptsDir string
	Renderer   string
	Quality    string
	Timeout    time.Duration
}

var scriptIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Executor renders scripts with the manim command line.
type Executor struct {
	cfg     Config
	command Command
	logger  *zap.Logger
}

func NewExecutor(cfg Config, command Command, logger *zap.Logger) *Executor {
	if cfg.Renderer == "" {
		cfg.Renderer = "manim"
	}
	cfg.Quality, _ = QualityDir(cfg.Quality)
	return &Executor{cfg: cfg, command: command, logger: logger.Named("renderer")}
}

// Execute handles one render request and returns the response together with
// the HTTP status to send.
func (e *Executor) Execute(ctx context.Context, req render.Request) (int, render.Response) {
	if (req.ScriptPath == "" && req.ScriptContent == "") || req.SceneClass == "" {
		return http.StatusBadRequest, render.Response{Error: "Missing script_path or scene_class"}
	}
	if !sanitizer.ValidIdentifier(req.SceneClass) {
		return http.StatusBadRequest, render.Response{Error: fmt.Sprintf("Invalid scene_class: %s", req.SceneClass)}
	}

	scriptPath := req.ScriptPath
	if req.ScriptContent != "" {
		written, err := e.writeScript(req)
		if err != nil {
			if errors.Is(err, errBadScriptID) {
				return http.StatusBadRequest, render.Response{Error: err.Error()}
			}
			e.logger.Error("failed to write script", zap.Error(err))
			return http.StatusInternalServerError, render.Response{Error: err.Error()}
		}
		scriptPath = written
	}

	e.logger.Info("received render request", zap.String("script_path", scriptPath), zap.String("scene_class", req.SceneClass))

	if _, err := os.Stat(scriptPath); err != nil {
		if os.IsNotExist(err) {
			return http.StatusNotFound, render.Response{Error: fmt.Sprintf("Script file not found: %s", scriptPath)}
		}
		return http.StatusInternalServerError, render.Response{Error: err.Error()}
	}
	if err := cleanScriptFile(scriptPath); err != nil {
		e.logger.Error("failed to clean script", zap.String("script_path", scriptPath), zap.Error(err))
		return http.StatusInternalServerError, render.Response{Error: err.Error()}
	}

	return http.StatusOK, e.render(ctx, scriptPath, req.SceneClass)
}

var errBadScriptID = errors.New("invalid script_id")

func (e *Executor) writeScript(req render.Request) (string, error) {
	id := req.ScriptID
	if id == "" {
		id = uuid.NewString()
	}
	if !scriptIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %s", errBadScriptID, id)
	}
	if err := os.MkdirAll(e.cfg.ScriptsDir, 0o755); err != nil {
		return "", fmt.Errorf("create scripts dir: %w", err)
	}
	p := filepath.Join(e.cfg.ScriptsDir, fmt.Sprintf("manim_script_%s.py", id))
	if err := os.WriteFile(p, []byte(req.ScriptContent), 0o644); err != nil {
		return "", fmt.Errorf("write script: %w", err)
	}
	return p, nil
}

// cleanScriptFile strips markdown fences left in the file.
func cleanScriptFile(p string) error {
	data, err := os.ReadFile(p)
	if err != nil {
		return err
	}
	content := string(data)
	if !strings.Contains(content, "```") {
		return nil
	}
	return os.WriteFile(p, []byte(strings.TrimSpace(sanitizer.StripFences(content))), 0o644)
}

func (e *Executor) render(ctx context.Context, scriptPath, scene string) render.Response {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	e.logger.Info("executing renderer",
		zap.String("renderer", e.cfg.Renderer),
		zap.String("script_path", scriptPath),
		zap.String("scene_class", scene),
		zap.String("quality", e.cfg.Quality))

	raw, runErr := e.command.Run(ctx, e.cfg.WorkDir, e.cfg.Renderer, scriptPath, scene, "-q"+e.cfg.Quality)
	output := string(raw)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return render.Response{Error: fmt.Sprintf("render timed out after %s", e.cfg.Timeout), Output: output}
	}

	base := strings.TrimSuffix(filepath.Base(scriptPath), filepath.Ext(scriptPath))
	_, qualityDir := QualityDir(e.cfg.Quality)
	outputPath := path.Join("videos", base, qualityDir, scene+".mp4")

	if runErr != nil {
		errText := narrowError(output)
		if errText == "" {
			errText = runErr.Error()
		}
		e.logger.Error("render failed", zap.String("error", errText))
		return render.Response{Error: errText, Output: output}
	}

	if fileExists(filepath.Join(e.cfg.MediaDir, filepath.FromSlash(outputPath))) {
		e.logger.Info("output file created", zap.String("output_path", outputPath))
		return render.Response{Success: true, Output: output, OutputPath: outputPath}
	}

	dir := path.Join("videos", base, qualityDir)
	if first, ok := firstFile(filepath.Join(e.cfg.MediaDir, filepath.FromSlash(dir))); ok {
		e.logger.Warn("expected output missing, using first file in directory",
			zap.String("expected", outputPath),
			zap.String("found", first))
		return render.Response{Success: true, Output: output, OutputPath: path.Join(dir, first)}
	}

	e.logger.Error("output file not found", zap.String("output_path", outputPath))
	return render.Response{Error: fmt.Sprintf("Output file not found: %s\n%s", outputPath, output), Output: output}
}

// narrowError keeps only the lines that explain a TypeError; other output is
// returned whole.
func narrowError(output string) string {
	if !strings.Contains(output, "TypeError: ") {
		return output
	}
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.Contains(line, "TypeError: "), strings.Contains(line, "❱"):
			lines = append(lines, line)
		case strings.Contains(line, "/manim/") && strings.Contains(line, ".py"):
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return output
	}
	return strings.Join(lines, "\n")
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func firstFile(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", false
	}
	sort.Strings(names)
	return names[0], true
}
