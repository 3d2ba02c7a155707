package report

import (
	"strconv"

	"github.com/trezcool/gradebook/core/curriculum"
	"github.com/trezcool/gradebook/core/grade"
)

const emptyPercent = "0"

type (
	// Summary holds the tier percentages of a scope, formatted with two decimals,
	// along with the raw counts they were computed from.
	// Each scored period counts as one unit.
	Summary struct {
		TEA      string `json:"tea"`
		TEP      string `json:"tep"`
		TED      string `json:"ted"`
		Counted  int    `json:"counted"`
		CountTEA int    `json:"count_tea"`
		CountTEP int    `json:"count_tep"`
		CountTED int    `json:"count_ted"`
	}

	CourseSummary struct {
		Course curriculum.CourseID `json:"course"`
		Summary
	}
)

func (sum *Summary) add(m grade.Mark) {
	if !m.Score.Valid {
		return
	}
	sum.Counted++
	switch m.Tier() {
	case grade.TierTEA:
		sum.CountTEA++
	case grade.TierTEP:
		sum.CountTEP++
	case grade.TierTED:
		sum.CountTED++
	}
}

func (sum *Summary) format() {
	if sum.Counted == 0 {
		sum.TEA, sum.TEP, sum.TED = emptyPercent, emptyPercent, emptyPercent
		return
	}
	sum.TEA = percent(sum.CountTEA, sum.Counted)
	sum.TEP = percent(sum.CountTEP, sum.Counted)
	sum.TED = percent(sum.CountTED, sum.Counted)
}

func percent(n, total int) string {
	return strconv.FormatFloat(100*float64(n)/float64(total), 'f', 2, 64)
}

// Aggregate computes the tier percentages over the records selected by `scope` and `filter`.
func Aggregate(store grade.Store, catalog *curriculum.Catalog, scope Scope, filter Filter) (Summary, error) {
	breakdown, err := Breakdown(store, catalog, scope, filter)
	if err != nil {
		return Summary{}, err
	}
	var sum Summary
	for _, cs := range breakdown {
		sum.Counted += cs.Counted
		sum.CountTEA += cs.CountTEA
		sum.CountTEP += cs.CountTEP
		sum.CountTED += cs.CountTED
	}
	sum.format()
	return sum, nil
}

// Breakdown computes one Summary per course of `scope`.
func Breakdown(store grade.Store, catalog *curriculum.Catalog, scope Scope, filter Filter) ([]CourseSummary, error) {
	match, err := filter.matcher(catalog)
	if err != nil {
		return nil, err
	}
	ids, err := scope.courses(store, catalog)
	if err != nil {
		return nil, err
	}

	breakdown := make([]CourseSummary, 0, len(ids))
	for _, id := range ids {
		cs := CourseSummary{Course: id}
		roster := store[id]
		for _, name := range scope.students(roster) {
			for code, sr := range roster[name] {
				if !match(code) {
					continue
				}
				for _, p := range grade.Periods {
					cs.add(sr.Mark(p))
				}
			}
		}
		cs.format()
		breakdown = append(breakdown, cs)
	}
	return breakdown, nil
}
