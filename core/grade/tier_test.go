package grade

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		score null.Int
		want  Tier
	}{
		{score: null.Int{}, want: TierNone},
		{score: null.IntFrom(-1), want: TierNone},
		{score: null.IntFrom(0), want: TierNone},
		{score: null.IntFrom(1), want: TierTED},
		{score: null.IntFrom(3), want: TierTED},
		{score: null.IntFrom(4), want: TierTEP},
		{score: null.IntFrom(6), want: TierTEP},
		{score: null.IntFrom(7), want: TierTEA},
		{score: null.IntFrom(10), want: TierTEA},
		{score: null.IntFrom(11), want: TierNone},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v/%d", tt.score.Valid, tt.score.Int), func(t *testing.T) {
			if got := Classify(tt.score); got != tt.want {
				t.Errorf("Classify() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		raw     string
		want    null.Int
		wantErr error
	}{
		{raw: "", want: null.Int{}},
		{raw: "  ", want: null.Int{}},
		{raw: "8", want: null.IntFrom(8)},
		{raw: " 10 ", want: null.IntFrom(10)},
		{raw: "0", wantErr: ErrInvalidScore},
		{raw: "11", wantErr: ErrInvalidScore},
		{raw: "7.5", wantErr: ErrInvalidScore},
		{raw: "abc", wantErr: ErrInvalidScore},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseScore(tt.raw)
			if errors.Cause(err) != tt.wantErr {
				t.Fatalf("ParseScore() error = %v; want %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubjectRecord_Apply(t *testing.T) {
	for s := MinScore; s <= MaxScore; s++ {
		var rec SubjectRecord
		rec.Apply(Period1, null.IntFrom(s))
		m := rec.Mark(Period1)
		assert.Equal(t, 1, countFlags(m), "score %d", s)
		assert.Equal(t, Classify(null.IntFrom(s)), m.Tier(), "score %d", s)

		// idempotent
		rec.Apply(Period1, null.IntFrom(s))
		assert.Equal(t, m, rec.Mark(Period1), "score %d", s)

		// the other period is untouched
		assert.Equal(t, Mark{}, rec.Mark(Period2))
	}

	t.Run("clearing", func(t *testing.T) {
		var rec SubjectRecord
		rec.Apply(Period2, null.IntFrom(5))
		assert.True(t, rec.Mark(Period2).TEP)

		rec.Apply(Period2, null.Int{})
		assert.Equal(t, Mark{}, rec.Mark(Period2))

		rec.Apply(Period2, null.IntFrom(42))
		m := rec.Mark(Period2)
		assert.Zero(t, countFlags(m))
		assert.Equal(t, TierNone, m.Tier())
	})

	t.Run("invalid period", func(t *testing.T) {
		var rec SubjectRecord
		rec.Apply(Period(3), null.IntFrom(5))
		assert.Equal(t, SubjectRecord{}, rec)
		assert.Equal(t, Mark{}, rec.Mark(Period(0)))
	})
}

func countFlags(m Mark) int {
	var n int
	for _, set := range []bool{m.TEA, m.TEP, m.TED} {
		if set {
			n++
		}
	}
	return n
}
