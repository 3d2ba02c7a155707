package curriculum

import (
	"strings"

	"github.com/trezcool/gradebook/core"
)

// Cycles
const (
	CycleBasic = "basic"
	CycleUpper = "upper"
)

// Subject groups counted as one logical bucket across cycles.
const (
	GroupLanguage = "language"
	GroupMath     = "math"
)

// CourseID identifies a course (year level + section), e.g. "1ro 1ra".
type CourseID string

// NormalizeCourse returns the canonical (trimmed, lowercase) form of a course identifier.
func NormalizeCourse(s string) CourseID {
	return CourseID(strings.Join(strings.Fields(core.CleanString(s, true /* lower */)), " "))
}

// Display returns the form shown to users.
func (id CourseID) Display() string {
	return strings.ToUpper(string(id))
}

func (id CourseID) String() string { return string(id) }

// SubjectCode is a short upper-case token, unique within a course.
type SubjectCode string

func NormalizeSubject(s string) SubjectCode {
	return SubjectCode(strings.ToUpper(core.CleanString(s)))
}

func (code SubjectCode) String() string { return string(code) }

// ParseSubjects turns a comma separated list into subject codes.
// Items are upper-cased and trimmed; empty items and repeats are discarded.
func ParseSubjects(raw string) []SubjectCode {
	return NormalizeSubjects(core.SplitList(raw, ","))
}

// NormalizeSubjects normalizes every item, dropping empty items and repeats.
func NormalizeSubjects(items []string) []SubjectCode {
	codes := make([]SubjectCode, 0, len(items))
	seen := make(map[SubjectCode]bool, len(items))
	for _, item := range items {
		code := NormalizeSubject(item)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}

// NormalizeName normalizes cycle and group names.
func NormalizeName(s string) string {
	return core.CleanString(s, true /* lower */)
}
