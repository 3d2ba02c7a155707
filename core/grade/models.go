package grade

import (
	"sort"
	"strconv"
	"strings"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core/curriculum"
)

// Period is a grading period.
type Period int

// Periods
const (
	Period1 Period = 1
	Period2 Period = 2
)

var Periods = []Period{Period1, Period2}

func (p Period) Valid() bool { return p == Period1 || p == Period2 }

func (p Period) String() string { return strconv.Itoa(int(p)) }

// Mark is the state of one grading period of a SubjectRecord.
// At most one flag is set, and only when Score is valid.
type Mark struct {
	Score null.Int `json:"score"`
	TEA   bool     `json:"tea"`
	TEP   bool     `json:"tep"`
	TED   bool     `json:"ted"`
}

// Tier returns the tier whose flag is set, or TierNone.
func (m Mark) Tier() Tier {
	switch {
	case m.TEA:
		return TierTEA
	case m.TEP:
		return TierTEP
	case m.TED:
		return TierTED
	default:
		return TierNone
	}
}

// classify clears the three flags then sets the one matching the score.
func (m *Mark) classify() {
	m.TEA, m.TEP, m.TED = false, false, false
	switch Classify(m.Score) {
	case TierTEA:
		m.TEA = true
	case TierTEP:
		m.TEP = true
	case TierTED:
		m.TED = true
	}
}

// SubjectRecord holds one Mark per grading period.
type SubjectRecord struct {
	Marks [2]Mark `json:"marks"`
}

// Mark returns the mark of the given period.
func (r SubjectRecord) Mark(p Period) Mark {
	if !p.Valid() {
		return Mark{}
	}
	return r.Marks[p-1]
}

// Apply writes `score` into the given period and reclassifies it.
// Scores outside 1..10 are written as given but carry no tier.
func (r *SubjectRecord) Apply(p Period, score null.Int) {
	if !p.Valid() {
		return
	}
	m := &r.Marks[p-1]
	m.Score = score
	m.classify()
}

// StudentRecord maps every subject of the student's course to its record.
type StudentRecord map[curriculum.SubjectCode]SubjectRecord

func newStudentRecord(subjects []curriculum.SubjectCode) StudentRecord {
	rec := make(StudentRecord, len(subjects))
	for _, code := range subjects {
		rec[code] = SubjectRecord{}
	}
	return rec
}

func (rec StudentRecord) clone() StudentRecord {
	cp := make(StudentRecord, len(rec))
	for code, sr := range rec {
		cp[code] = sr
	}
	return cp
}

// Roster maps student display names to their records.
type Roster map[string]StudentRecord

// Names returns the student names, sorted.
func (r Roster) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Store is the full grade book: course -> student name -> subject -> record.
type Store map[curriculum.CourseID]Roster

// Courses returns the courses present in the store, sorted.
func (s Store) Courses() []curriculum.CourseID {
	ids := make([]curriculum.CourseID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns a deep copy of the store.
func (s Store) Clone() Store {
	cp := make(Store, len(s))
	for id, roster := range s {
		r := make(Roster, len(roster))
		for name, rec := range roster {
			r[name] = rec.clone()
		}
		cp[id] = r
	}
	return cp
}

type (
	// NewCourse registers a course with its subject list.
	NewCourse struct {
		Course   string   `json:"course" validate:"notblank"`
		Subjects []string `json:"subjects" validate:"dive,subjectcode"`
	}

	// NewStudent adds a student to a course. Subjects are only used when the course is not cataloged yet.
	NewStudent struct {
		Course   string   `json:"course" validate:"notblank"`
		Name     string   `json:"name" validate:"notblank"`
		Subjects []string `json:"subjects" validate:"dive,subjectcode"`
	}

	// ScoreEntry sets (or clears, when Score is blank) one period of a subject record.
	ScoreEntry struct {
		Course  string `json:"course" validate:"notblank"`
		Student string `json:"student" validate:"notblank"`
		Subject string `json:"subject" validate:"notblank"`
		Period  int    `json:"period" validate:"oneof=1 2"`
		Score   string `json:"score"`
	}

	// Enrollment is one student of a batch passed to Service.Enroll.
	Enrollment = NewStudent

	EnrollResult struct {
		Enrolled       []Enrollment
		CreatedCourses []curriculum.CourseID
		Duplicates     []Enrollment
	}
)

func (nc NewCourse) clean() NewCourse {
	nc.Course = string(curriculum.NormalizeCourse(nc.Course))
	nc.Subjects = subjectNames(curriculum.NormalizeSubjects(nc.Subjects))
	return nc
}

func (ns NewStudent) clean() NewStudent {
	ns.Course = string(curriculum.NormalizeCourse(ns.Course))
	ns.Name = strings.TrimSpace(ns.Name)
	ns.Subjects = subjectNames(curriculum.NormalizeSubjects(ns.Subjects))
	return ns
}

func (e ScoreEntry) clean() ScoreEntry {
	e.Course = string(curriculum.NormalizeCourse(e.Course))
	e.Student = strings.TrimSpace(e.Student)
	e.Subject = string(curriculum.NormalizeSubject(e.Subject))
	return e
}
