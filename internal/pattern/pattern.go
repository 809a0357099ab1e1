// Package pattern runs bullet patterns written as embedded Tengo scripts.
//
// A script reads the globals x, y and dir (+1 fires right, -1 left) and
// leaves an array named shots. Each shot is a map with optional float keys
// dx, dy (spawn offset from x, y) and vx, vy (velocity in pixels per
// reference frame).
package pattern

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

//go:embed scripts/*.tengo
var scriptsFS embed.FS

// Shot is one bullet produced by a pattern.
type Shot struct {
	DX, DY float64
	VX, VY float64
}

// Origin is where and which way a pattern fires.
type Origin struct {
	X, Y float64
	Dir  float64
}

// Pattern is a compiled script. It is not safe for concurrent use; every
// Load returns an independent copy.
type Pattern struct {
	name     string
	compiled *tengo.Compiled
}

var (
	mu       sync.Mutex
	compiled = make(map[string]*tengo.Compiled)
)

// Load compiles the embedded script name (without extension).
func Load(name string) (*Pattern, error) {
	mu.Lock()
	defer mu.Unlock()

	c, ok := compiled[name]
	if !ok {
		src, err := scriptsFS.ReadFile(path.Join("scripts", name+".tengo"))
		if err != nil {
			return nil, fmt.Errorf("pattern: unknown pattern %q: %w", name, err)
		}
		script := tengo.NewScript(src)
		script.SetImports(stdlib.GetModuleMap("math"))
		for _, g := range []string{"x", "y", "dir"} {
			if err := script.Add(g, 0.0); err != nil {
				return nil, fmt.Errorf("pattern: %s: %w", name, err)
			}
		}
		c, err = script.Compile()
		if err != nil {
			return nil, fmt.Errorf("pattern: compile %s: %w", name, err)
		}
		compiled[name] = c
	}
	return &Pattern{name: name, compiled: c.Clone()}, nil
}

// MustLoad is Load for the built-in patterns. It panics on error.
func MustLoad(name string) *Pattern {
	p, err := Load(name)
	if err != nil {
		panic(err)
	}
	return p
}

// Names lists the embedded patterns.
func Names() []string {
	entries, err := scriptsFS.ReadDir("scripts")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ".tengo"); ok {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// Name returns the pattern name.
func (p *Pattern) Name() string {
	return p.name
}

// Fire runs the script once and returns its shots.
func (p *Pattern) Fire(o Origin) ([]Shot, error) {
	inputs := map[string]float64{"x": o.X, "y": o.Y, "dir": o.Dir}
	for k, v := range inputs {
		if err := p.compiled.Set(k, v); err != nil {
			return nil, fmt.Errorf("pattern: %s: set %s: %w", p.name, k, err)
		}
	}
	if err := p.compiled.Run(); err != nil {
		return nil, fmt.Errorf("pattern: run %s: %w", p.name, err)
	}

	v := p.compiled.Get("shots")
	if v == nil || v.IsUndefined() {
		return nil, fmt.Errorf("pattern: %s: no shots defined", p.name)
	}
	raw, ok := v.Value().([]interface{})
	if !ok {
		return nil, fmt.Errorf("pattern: %s: shots must be an array", p.name)
	}

	shots := make([]Shot, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("pattern: %s: shot %d is not a map", p.name, i)
		}
		shots = append(shots, Shot{
			DX: number(m["dx"]),
			DY: number(m["dy"]),
			VX: number(m["vx"]),
			VY: number(m["vy"]),
		})
	}
	return shots, nil
}

func number(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}
