package grade

import (
	"errors"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/gradebook/core/curriculum"
)

var (
	// errors
	ErrUnknownCourse    = errors.New("unknown course")
	ErrUnknownSubject   = errors.New("unknown subject")
	ErrUnknownStudent   = errors.New("unknown student")
	ErrDuplicateStudent = errors.New("a student with this name already exists in this course")
	ErrDuplicateCourse  = curriculum.ErrCourseExists
	ErrMissingSubjects  = curriculum.ErrNoSubjects
	ErrInvalidScore     = errors.New("score must be an integer between 1 and 10")

	// ErrSlotEmpty is returned by a Repository when nothing was ever saved under a key.
	ErrSlotEmpty = errors.New("slot is empty")

	minSuggestRatio = .6
)

// suggest returns the candidate closest to `target`, if any is similar enough.
func suggest(target string, candidates []string) (string, bool) {
	var (
		best      string
		bestRatio float64
	)
	for _, c := range candidates {
		ratio := difflib.NewMatcher(strings.Split(target, ""), strings.Split(c, "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = c, ratio
		}
	}
	return best, bestRatio >= minSuggestRatio
}

func courseNames(ids []curriculum.CourseID) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, string(id))
	}
	return names
}

func subjectNames(codes []curriculum.SubjectCode) []string {
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		names = append(names, string(code))
	}
	return names
}
