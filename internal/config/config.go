// Package config holds the arcade's static tables (difficulty tiers,
// cosmetics, power-ups, themes) and the YAML tuning file that can
// override them.
package config

import (
	"fmt"
	"time"
)

// Tuning is the YAML-loadable gameplay configuration.
type Tuning struct {
	World      WorldConfig           `yaml:"world"`
	Combo      ComboConfig           `yaml:"combo"`
	Classic    ClassicConfig         `yaml:"classic"`
	Difficulty map[string]Difficulty `yaml:"difficulty"`
}

// WorldConfig describes the reference play field in pixels.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// GroundY returns the y-coordinate of the ground line.
func (w WorldConfig) GroundY() float64 {
	return w.Height - w.GroundHeight
}

// ComboConfig tunes the combo engine.
type ComboConfig struct {
	WindowMs   int     `yaml:"window_ms"`
	Threshold  int     `yaml:"threshold"`
	Multiplier float64 `yaml:"multiplier"`
	// Policy is "after_threshold" (the pass after the threshold is the first
	// multiplied one) or "at_threshold" (the threshold pass itself is).
	Policy string `yaml:"policy"`
}

// Window returns the combo decay window.
func (c ComboConfig) Window() time.Duration {
	return time.Duration(c.WindowMs) * time.Millisecond
}

// ClassicConfig tunes the flight modes.
type ClassicConfig struct {
	GetReadyMs        int     `yaml:"get_ready_ms"`
	TimeAttackMs      int     `yaml:"time_attack_ms"`
	ZenCoinMs         int     `yaml:"zen_coin_interval_ms"`
	CoinChance        float64 `yaml:"coin_chance"`
	PowerUpChance     float64 `yaml:"powerup_chance"`
	EnvelopeChance    float64 `yaml:"envelope_chance"`
	GapMargin         float64 `yaml:"gap_margin"`
	MagnetRadius      float64 `yaml:"magnet_radius"`
	MagnetSpeed       float64 `yaml:"magnet_speed"`
	SlowTimeFactor    float64 `yaml:"slow_time_factor"`
	EnvelopeCoinValue int     `yaml:"envelope_value"`
}

// Ms converts one of the millisecond fields to a duration.
func Ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// DifficultyFor returns the tier's parameters with any YAML override applied.
// Missing or partial overrides fall back to the built-in table field by field.
func (t Tuning) DifficultyFor(tier Tier) Difficulty {
	base := DifficultyFor(tier)
	o, ok := t.Difficulty[tier.String()]
	if !ok {
		return base
	}
	if o.Gravity != 0 {
		base.Gravity = o.Gravity
	}
	if o.Impulse != 0 {
		base.Impulse = o.Impulse
	}
	if o.ScrollSpeed != 0 {
		base.ScrollSpeed = o.ScrollSpeed
	}
	if o.Gap != 0 {
		base.Gap = o.Gap
	}
	if o.PipeIntervalMs != 0 {
		base.PipeIntervalMs = o.PipeIntervalMs
	}
	if o.CoinIntervalMs != 0 {
		base.CoinIntervalMs = o.CoinIntervalMs
	}
	return base
}

// Validate checks the invariants gameplay relies on.
func (t Tuning) Validate() error {
	if t.World.Width <= 0 || t.World.Height <= 0 {
		return fmt.Errorf("config: world size must be positive, got %vx%v", t.World.Width, t.World.Height)
	}
	if t.World.GroundHeight < 0 || t.World.GroundHeight >= t.World.Height {
		return fmt.Errorf("config: ground height %v out of range", t.World.GroundHeight)
	}
	if t.Combo.Threshold < 1 {
		return fmt.Errorf("config: combo threshold must be at least 1, got %d", t.Combo.Threshold)
	}
	if t.Combo.WindowMs <= 0 {
		return fmt.Errorf("config: combo window must be positive, got %dms", t.Combo.WindowMs)
	}
	for _, tier := range Tiers() {
		d := t.DifficultyFor(tier)
		if d.Gravity <= 0 {
			return fmt.Errorf("config: %s gravity must be positive, got %v", tier, d.Gravity)
		}
		if d.Impulse >= 0 {
			return fmt.Errorf("config: %s impulse must be negative, got %v", tier, d.Impulse)
		}
		if d.Gap <= 0 || d.PipeIntervalMs <= 0 {
			return fmt.Errorf("config: %s gap and pipe interval must be positive", tier)
		}
	}
	return nil
}
