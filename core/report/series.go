package report

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/curriculum"
	"github.com/trezcool/gradebook/core/grade"
)

// Point is one literal score of a numeric series.
type Point struct {
	Label  string              `json:"label"`
	Period grade.Period        `json:"period"`
	Course curriculum.CourseID `json:"course"`
	Key    string              `json:"key"`
	Score  int                 `json:"score"`
}

// NumericSeries lists the recorded scores of a scope, ordered by period.
// A student scope yields one point per subject (in catalog order), labeled with the
// subject code; any other scope needs a filter and yields one point per student
// (by course, then name), labeled with the student name. Absent scores are skipped.
func NumericSeries(store grade.Store, catalog *curriculum.Catalog, scope Scope, filter Filter) ([]Point, error) {
	if scope.Kind != ScopeStudent && filter.IsZero() {
		return nil, errors.Wrapf(ErrInvalidSelector, "a subject filter is required for %s", scope)
	}
	match, err := filter.matcher(catalog)
	if err != nil {
		return nil, err
	}
	ids, err := scope.courses(store, catalog)
	if err != nil {
		return nil, err
	}

	var points []Point
	for _, p := range grade.Periods {
		for _, id := range ids {
			roster := store[id]
			subjects, _ := catalog.Subjects(id)
			for _, name := range scope.students(roster) {
				rec := roster[name]
				for _, code := range subjects {
					if !match(code) {
						continue
					}
					m := rec[code].Mark(p)
					if !m.Score.Valid {
						continue
					}
					key := name
					if scope.Kind == ScopeStudent {
						key = string(code)
					}
					points = append(points, Point{
						Label:  fmt.Sprintf("Period %d - %s", p, key),
						Period: p,
						Course: id,
						Key:    key,
						Score:  m.Score.Int,
					})
				}
			}
		}
	}
	return points, nil
}
