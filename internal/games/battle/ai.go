package battle

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/entity"
)

// Skill tunes the opponent for one round.
type Skill struct {
	Accuracy float64       // chance to aim at the player and to take a shot
	Reaction time.Duration // time between decisions
	Cooldown time.Duration // minimum time between shots
	Dodge    float64       // chance to evade an incoming bullet
}

var skills = [...]Skill{
	config.TierEasy:   {Accuracy: 0.4, Reaction: 800 * time.Millisecond, Cooldown: 1500 * time.Millisecond, Dodge: 0.3},
	config.TierMedium: {Accuracy: 0.6, Reaction: 500 * time.Millisecond, Cooldown: 1000 * time.Millisecond, Dodge: 0.5},
	config.TierHard:   {Accuracy: 0.85, Reaction: 250 * time.Millisecond, Cooldown: 700 * time.Millisecond, Dodge: 0.7},
}

// SkillFor returns the opponent skill for a tier.
func SkillFor(t config.Tier) Skill {
	if !t.Valid() {
		t = config.DefaultTier
	}
	return skills[t]
}

// RoundTier is the opponent tier for a 1-based round: easy, medium, then hard.
func RoundTier(round int) config.Tier {
	switch {
	case round <= 1:
		return config.TierEasy
	case round == 2:
		return config.TierMedium
	default:
		return config.TierHard
	}
}

// Opponent steers the enemy fighter.
type Opponent struct {
	Skill    Skill
	target   float64
	decided  time.Duration
	attempts time.Duration
	rng      *rand.Rand
	top      float64
	bottom   float64
}

const (
	dodgeLookahead = 100.0
	dodgeBand      = 50.0
	dodgeDistance  = 80.0
	aimJitter      = 30.0
	jumpSlack      = 20.0
	wanderMargin   = 100.0
)

func newOpponent(skill Skill, rng *rand.Rand, groundY float64, now time.Duration) *Opponent {
	return &Opponent{
		Skill:    skill,
		target:   groundY / 2,
		decided:  now - skill.Reaction - 1,
		attempts: now,
		rng:      rng,
		top:      wanderMargin,
		bottom:   groundY - wanderMargin,
	}
}

// Target returns the y the opponent is flying toward.
func (o *Opponent) Target() float64 {
	return o.target
}

// think picks a new target height once per reaction period.
func (o *Opponent) think(now time.Duration, self, player core.Box, bullets []*entity.Entity) {
	if now-o.decided < o.Skill.Reaction {
		return
	}
	o.decided = now

	_, cy := self.Center()
	for _, b := range bullets {
		if b.Owner != entity.OwnerPlayer || !b.Alive() {
			continue
		}
		ahead := self.X - b.Box().Right()
		_, by := b.Center()
		if ahead >= 0 && ahead <= dodgeLookahead && math.Abs(by-cy) < dodgeBand {
			if o.rng.Float64() < o.Skill.Dodge {
				if by > cy {
					o.target = cy - dodgeDistance
				} else {
					o.target = cy + dodgeDistance
				}
				o.target = core.ClampF(o.target, o.top, o.bottom)
				return
			}
			break
		}
	}

	if o.rng.Float64() < o.Skill.Accuracy {
		_, py := player.Center()
		o.target = core.ClampF(py+(o.rng.Float64()*2-1)*aimJitter, o.top, o.bottom)
		return
	}
	o.target = o.top + o.rng.Float64()*(o.bottom-o.top)
}

// wantsFlap reports whether the fighter has sunk below its target.
func (o *Opponent) wantsFlap(self core.Box, velY float64) bool {
	_, cy := self.Center()
	return cy > o.target+jumpSlack && velY >= 0
}

// wantsShot rolls for a shot once the cooldown has passed. A failed roll
// waits for another cooldown.
func (o *Opponent) wantsShot(now time.Duration, cooldown time.Duration) bool {
	if now-o.attempts < cooldown {
		return false
	}
	o.attempts = now
	return o.rng.Float64() < o.Skill.Accuracy
}
