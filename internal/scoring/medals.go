package scoring

// Medal is a reward tier for a finished run.
type Medal int

const (
	MedalNone Medal = iota
	MedalBronze
	MedalSilver
	MedalGold
	MedalPlatinum
)

var medalThresholds = []struct {
	min   int
	medal Medal
}{
	{50, MedalPlatinum},
	{30, MedalGold},
	{15, MedalSilver},
	{5, MedalBronze},
}

// MedalFor returns the medal earned by score.
func MedalFor(score int) Medal {
	for _, t := range medalThresholds {
		if score >= t.min {
			return t.medal
		}
	}
	return MedalNone
}

// String returns the medal name.
func (m Medal) String() string {
	switch m {
	case MedalBronze:
		return "bronze"
	case MedalSilver:
		return "silver"
	case MedalGold:
		return "gold"
	case MedalPlatinum:
		return "platinum"
	default:
		return "none"
	}
}
