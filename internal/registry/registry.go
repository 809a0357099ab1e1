// Package registry provides a global registry for mode factories.
// Modes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Mode is the interface every game mode implements.
// Modes contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Mode interface {
	// ID returns a unique identifier (e.g., "classic", "boss").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Start initializes the mode for a new run.
	Start(env Env)

	// HandleInput queues the actions pressed since the last update.
	HandleInput(in core.InputFrame)

	// Update advances the simulation by dt. SignalDone is reported on the
	// update that reaches the terminal state and never again.
	Update(dt time.Duration) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// Terminal reports whether the run has ended.
	Terminal() bool

	// Result returns the outcome of the run. Only meaningful once Terminal.
	Result() core.Result
}

// Env is everything a mode receives at start. The theme is deliberately absent.
type Env struct {
	Runtime    core.RuntimeConfig
	Tier       config.Tier
	Difficulty config.Difficulty
	Tuning     config.Tuning
	Cosmetic   config.Cosmetic
}

// NewEnv resolves the tier's difficulty against tuning.
func NewEnv(rt core.RuntimeConfig, tuning config.Tuning, tier config.Tier, cosmetic config.Cosmetic) Env {
	if !tier.Valid() {
		tier = config.DefaultTier
	}
	return Env{
		Runtime:    rt,
		Tier:       tier,
		Difficulty: tuning.DifficultyFor(tier),
		Tuning:     tuning,
		Cosmetic:   cosmetic,
	}
}

// DefaultEnv is a medium-tier env with built-in tuning and the default cosmetic.
func DefaultEnv(seed int64) Env {
	rt := core.DefaultConfig()
	rt.Seed = seed
	cosmetic := config.DefaultCatalog().Lookup(config.DefaultCosmeticID)
	return NewEnv(rt, config.DefaultTuning(), config.DefaultTier, cosmetic)
}

// RNG returns a generator seeded from the runtime config.
func (e Env) RNG() *rand.Rand {
	return rand.New(rand.NewSource(e.Runtime.Seed))
}

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a mode.
type Factory func() Mode

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Typically called from a mode's init() function.
// Panics if a mode with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered modes, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ModeInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new mode by its ID.
// Returns an error if the mode ID is not registered.
func Create(id string) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}

	return f(), nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
