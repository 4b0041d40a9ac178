package depinstall

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRunner struct {
	calls [][]string
	err   error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return []byte("output"), f.err
}

func TestMissingModule(t *testing.T) {
	tests := []struct {
		name    string
		errText string
		want    string
		found   bool
	}{
		{"single quotes", "No module named 'foo'", "foo", true},
		{"double quotes", `ModuleNotFoundError: No module named "numpy"`, "numpy", true},
		{"traceback", "Traceback (most recent call last):\n  File \"x.py\", line 1\nModuleNotFoundError: No module named 'scipy'\n", "scipy", true},
		{"dotted kept whole", "No module named 'foo.bar'", "foo.bar", true},
		{"import error", "ImportError: cannot import name 'x' from 'y'", "cannot", true},
		{"import error without colon", "raise ImportError", "", false},
		{"empty name", "No module named ''", "", false},
		{"unrelated", "TypeError: unsupported operand", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MissingModule(tt.errText)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInstallable(t *testing.T) {
	assert.True(t, Installable("numpy"))
	assert.True(t, Installable("scikit-learn"))
	assert.True(t, Installable("foo.bar"))
	assert.False(t, Installable("foo; rm -rf /"))
	assert.False(t, Installable("-e"))
	assert.False(t, Installable(""))
}

func TestInstallRunsDockerExec(t *testing.T) {
	runner := &fakeRunner{}
	inst := New(Config{Enabled: true, Container: "omega-manim"}, runner, zap.NewNop())

	ok := inst.Install(context.Background(), "No module named 'numpy'")

	assert.True(t, ok)
	assert.Equal(t, [][]string{{"docker", "exec", "omega-manim", "bash", "-c", "pip install numpy"}}, runner.calls)
}

func TestInstallReportsFalse(t *testing.T) {
	t.Run("command fails", func(t *testing.T) {
		runner := &fakeRunner{err: errors.New("exit status 1")}
		inst := New(Config{Enabled: true, Container: "c"}, runner, zap.NewNop())
		assert.False(t, inst.Install(context.Background(), "No module named 'numpy'"))
		assert.Len(t, runner.calls, 1)
	})

	t.Run("no module in error", func(t *testing.T) {
		runner := &fakeRunner{}
		inst := New(Config{Enabled: true, Container: "c"}, runner, zap.NewNop())
		assert.False(t, inst.Install(context.Background(), "NameError: name 'Circel' is not defined"))
		assert.Empty(t, runner.calls)
	})

	t.Run("unsafe name", func(t *testing.T) {
		runner := &fakeRunner{}
		inst := New(Config{Enabled: true, Container: "c"}, runner, zap.NewNop())
		assert.False(t, inst.Install(context.Background(), "No module named 'x && reboot'"))
		assert.Empty(t, runner.calls)
	})

	t.Run("disabled", func(t *testing.T) {
		runner := &fakeRunner{}
		inst := New(Config{Enabled: false, Container: "c"}, runner, zap.NewNop())
		assert.False(t, inst.Install(context.Background(), "No module named 'numpy'"))
		assert.Empty(t, runner.calls)
	})
}
