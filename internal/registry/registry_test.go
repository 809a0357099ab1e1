package registry

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

type stubMode struct{ id string }

func (s *stubMode) ID() string                           { return s.id }
func (s *stubMode) Title() string                        { return strings.ToUpper(s.id) }
func (s *stubMode) Start(Env)                            {}
func (s *stubMode) HandleInput(core.InputFrame)          {}
func (s *stubMode) Update(time.Duration) core.StepResult { return core.StepResult{} }
func (s *stubMode) Render(*core.Screen)                  {}
func (s *stubMode) Terminal() bool                       { return false }
func (s *stubMode) Result() core.Result                  { return core.Result{Mode: s.id} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub_b", func() Mode { return &stubMode{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Mode { return &stubMode{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") || Exists("zz_missing") {
		t.Fatal("Exists mismatch")
	}

	m, err := Create("zz_stub_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if m.ID() != "zz_stub_a" {
		t.Errorf("ID = %s", m.ID())
	}
	if _, err := Create("zz_missing"); err == nil {
		t.Error("unknown mode should fail")
	}

	var ids []string
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "zz_stub") {
			ids = append(ids, info.ID)
			if info.Title != strings.ToUpper(info.ID) {
				t.Errorf("title = %s", info.Title)
			}
		}
	}
	if len(ids) != 2 || ids[0] != "zz_stub_a" {
		t.Errorf("List order = %v", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Mode { return &stubMode{id: "zz_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("zz_dup", func() Mode { return &stubMode{id: "zz_dup"} })
}

func TestNewEnvResolvesDifficulty(t *testing.T) {
	tuning := config.DefaultTuning()
	env := NewEnv(core.DefaultConfig(), tuning, config.TierHard, config.Cosmetic{ID: "robot"})
	if env.Difficulty != config.DifficultyFor(config.TierHard) {
		t.Errorf("difficulty = %+v", env.Difficulty)
	}

	bad := NewEnv(core.DefaultConfig(), tuning, config.Tier(42), config.Cosmetic{})
	if bad.Tier != config.DefaultTier {
		t.Errorf("invalid tier should fall back, got %v", bad.Tier)
	}

	a, b := DefaultEnv(9).RNG(), DefaultEnv(9).RNG()
	if a.Int63() != b.Int63() {
		t.Error("same seed should give the same stream")
	}
}
