package report

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/curriculum"
	"github.com/trezcool/gradebook/core/grade"
)

var (
	// errors
	ErrInvalidSelector = errors.New("invalid selector")
	ErrUnknownCycle    = errors.New("unknown cycle")
	ErrUnknownGroup    = errors.New("unknown subject group")
)

// ScopeKind
const (
	ScopeCourse ScopeKind = iota + 1
	ScopeCycle
	ScopeSchool
	ScopeStudent
)

type (
	ScopeKind int

	// Scope selects the student records taking part in a report.
	Scope struct {
		Kind    ScopeKind
		Course  curriculum.CourseID
		Cycle   string
		Student string
	}

	// Filter restricts the counted subjects to one code or to a named group.
	// The zero Filter counts every subject.
	Filter struct {
		Subject curriculum.SubjectCode
		Group   string
	}
)

func Course(id curriculum.CourseID) Scope { return Scope{Kind: ScopeCourse, Course: id} }

func Cycle(name string) Scope { return Scope{Kind: ScopeCycle, Cycle: curriculum.NormalizeName(name)} }

func School() Scope { return Scope{Kind: ScopeSchool} }

func Student(course curriculum.CourseID, name string) Scope {
	return Scope{Kind: ScopeStudent, Course: course, Student: core.CleanString(name)}
}

func (s Scope) String() string {
	switch s.Kind {
	case ScopeCourse:
		return "course:" + string(s.Course)
	case ScopeCycle:
		return "cycle:" + s.Cycle
	case ScopeSchool:
		return "school"
	case ScopeStudent:
		return fmt.Sprintf("student:%s/%s", s.Course, s.Student)
	default:
		return ""
	}
}

// ParseScope reads a scope selector:
//
//	course:1ro 1ra
//	cycle:basic
//	school
//	student:1ro 1ra/Ana Gomez
func ParseScope(raw string) (Scope, error) {
	raw = core.CleanString(raw)
	kind, value := raw, ""
	if i := strings.Index(raw, ":"); i >= 0 {
		kind, value = raw[:i], core.CleanString(raw[i+1:])
	}

	switch strings.ToLower(kind) {
	case "school":
		if value == "" {
			return School(), nil
		}
	case "course":
		if id := curriculum.NormalizeCourse(value); id != "" {
			return Course(id), nil
		}
	case "cycle":
		if value != "" {
			return Cycle(value), nil
		}
	case "student":
		if i := strings.LastIndex(value, "/"); i > 0 {
			id, name := curriculum.NormalizeCourse(value[:i]), core.CleanString(value[i+1:])
			if id != "" && name != "" {
				return Student(id, name), nil
			}
		}
	}
	return Scope{}, errors.Wrapf(ErrInvalidSelector, "scope %q", raw)
}

func Subject(code curriculum.SubjectCode) Filter { return Filter{Subject: code} }

func Group(name string) Filter { return Filter{Group: curriculum.NormalizeName(name)} }

func (f Filter) IsZero() bool { return f.Subject == "" && f.Group == "" }

func (f Filter) String() string {
	if f.Group != "" {
		return "group:" + f.Group
	}
	return string(f.Subject)
}

// ParseFilter reads a subject filter: a subject code, "group:<name>", or nothing.
func ParseFilter(raw string) (Filter, error) {
	raw = core.CleanString(raw)
	if raw == "" {
		return Filter{}, nil
	}
	if i := strings.Index(raw, ":"); i >= 0 {
		if strings.EqualFold(raw[:i], "group") {
			if name := core.CleanString(raw[i+1:]); name != "" {
				return Group(name), nil
			}
		}
		return Filter{}, errors.Wrapf(ErrInvalidSelector, "filter %q", raw)
	}
	return Subject(curriculum.NormalizeSubject(raw)), nil
}

// matcher returns the predicate matching the subject codes selected by `f`.
func (f Filter) matcher(catalog *curriculum.Catalog) (func(curriculum.SubjectCode) bool, error) {
	switch {
	case f.Group != "":
		codes, ok := catalog.Group(f.Group)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownGroup, "%q", f.Group)
		}
		set := make(map[curriculum.SubjectCode]bool, len(codes))
		for _, code := range codes {
			set[code] = true
		}
		return func(code curriculum.SubjectCode) bool { return set[code] }, nil
	case f.Subject != "":
		return func(code curriculum.SubjectCode) bool { return code == f.Subject }, nil
	default:
		return func(curriculum.SubjectCode) bool { return true }, nil
	}
}

// courses resolves the courses of `s` that are present in the store.
func (s Scope) courses(store grade.Store, catalog *curriculum.Catalog) ([]curriculum.CourseID, error) {
	switch s.Kind {
	case ScopeCourse, ScopeStudent:
		if _, ok := store[s.Course]; ok {
			return []curriculum.CourseID{s.Course}, nil
		}
		return nil, nil
	case ScopeCycle:
		ids, ok := catalog.Cycle(s.Cycle)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownCycle, "%q", s.Cycle)
		}
		present := make([]curriculum.CourseID, 0, len(ids))
		for _, id := range ids {
			if _, ok := store[id]; ok {
				present = append(present, id)
			}
		}
		return present, nil
	case ScopeSchool:
		return store.Courses(), nil
	default:
		return nil, errors.Wrap(ErrInvalidSelector, "empty scope")
	}
}

// students returns the names in `roster` selected by `s`, sorted.
func (s Scope) students(roster grade.Roster) []string {
	if s.Kind != ScopeStudent {
		return roster.Names()
	}
	if _, ok := roster[s.Student]; ok {
		return []string{s.Student}
	}
	for _, name := range roster.Names() {
		if strings.EqualFold(name, s.Student) {
			return []string{name}
		}
	}
	return nil
}
