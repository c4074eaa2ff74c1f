package registry

import (
	"errors"
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
)

type stubGame struct{ id string }

func (s stubGame) ID() string { return s.id }
func (s stubGame) Title() string { return "Stub" }
func (s stubGame) Reset(core.RuntimeConfig) error { return nil }
func (s stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s stubGame) Render(*core.Screen) {}
func (s stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register(ModeInfo{ID: "zz-stub", Title: "Stub"}, func(config.BreakerConfig) (Game, error) {
		return stubGame{id: "zz-stub"}, nil
	})

	require.True(t, Exists("zz-stub"))
	g, err := Create("zz-stub", config.DefaultBreakerConfig())
	require.NoError(t, err)
	assert.Equal(t, "zz-stub", g.ID())

	found := false
	for _, m := range List() {
		if m.ID == "zz-stub" {
			found = true
		}
	}
	assert.True(t, found)

	assert.Panics(t, func() {
		Register(ModeInfo{ID: "zz-stub"}, nil)
	})
}

func TestCreateErrors(t *testing.T) {
	_, err := Create("does-not-exist", config.DefaultBreakerConfig())
	assert.Error(t, err)

	boom := errors.New("boom")
	Register(ModeInfo{ID: "zz-failing"}, func(config.BreakerConfig) (Game, error) {
		return nil, boom
	})
	_, err = Create("zz-failing", config.DefaultBreakerConfig())
	assert.ErrorIs(t, err, boom)
}

func TestGamesDoNotImportPlatform(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "games", "*", "*.go"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	fset := token.NewFileSet()
	for _, name := range files {
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			require.NoError(t, err)
			assert.False(t, strings.Contains(path, "/internal/platform"), "%s imports %s", name, path)
			assert.False(t, strings.HasPrefix(path, "github.com/charmbracelet/bubbletea"), "%s imports %s", name, path)
		}
	}
}
