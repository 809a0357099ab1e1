package config

import (
	_ "embed"
)

//go:embed defaults/tuning.yaml
var defaultTuningYAML []byte

// DefaultTuning returns the hardcoded tuning used when no YAML is readable.
func DefaultTuning() Tuning {
	return Tuning{
		World: WorldConfig{
			Width:        400,
			Height:       600,
			GroundHeight: 80,
		},
		Combo: ComboConfig{
			WindowMs:   2000,
			Threshold:  3,
			Multiplier: 1.5,
			Policy:     "after_threshold",
		},
		Classic: ClassicConfig{
			GetReadyMs:        1000,
			TimeAttackMs:      60000,
			ZenCoinMs:         800,
			CoinChance:        0.6,
			PowerUpChance:     0.05,
			EnvelopeChance:    0.1,
			GapMargin:         60,
			MagnetRadius:      150,
			MagnetSpeed:       8,
			SlowTimeFactor:    1.5,
			EnvelopeCoinValue: 5,
		},
	}
}
