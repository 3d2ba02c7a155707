package grade

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core"
)

// Tier is a proficiency tier derived from a score.
type Tier int

// Tiers, lowest to highest
const (
	TierNone Tier = iota
	TierTED
	TierTEP
	TierTEA
)

// Tiers lists the tiers in report order.
var Tiers = []Tier{TierTEA, TierTEP, TierTED}

// Score bounds
const (
	MinScore = 1
	MaxScore = 10
)

func (t Tier) String() string {
	switch t {
	case TierTEA:
		return "TEA"
	case TierTEP:
		return "TEP"
	case TierTED:
		return "TED"
	default:
		return ""
	}
}

// Classify maps a score to its tier: 1-3 TED, 4-6 TEP, 7-10 TEA.
// Absent or out of range scores have no tier.
func Classify(score null.Int) Tier {
	if !score.Valid {
		return TierNone
	}
	switch s := score.Int; {
	case s < MinScore || s > MaxScore:
		return TierNone
	case s <= 3:
		return TierTED
	case s <= 6:
		return TierTEP
	default:
		return TierTEA
	}
}

// ParseScore parses user input into a score. Blank input is an absent score.
func ParseScore(raw string) (null.Int, error) {
	raw = core.CleanString(raw)
	if raw == "" {
		return null.Int{}, nil
	}
	s, err := strconv.Atoi(raw)
	if err != nil {
		return null.Int{}, errors.Wrapf(ErrInvalidScore, "%q", raw)
	}
	if s < MinScore || s > MaxScore {
		return null.Int{}, errors.Wrapf(ErrInvalidScore, "%d", s)
	}
	return null.IntFrom(s), nil
}
