package grade

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core/curriculum"
)

// The persisted layout is the one the grade entry surfaces have always written:
//
//	{course: {student: {subject: {"Score 1": "8", "TEA 1": "X", "TEP 1": "", "TED 1": "", ...}}}}
type (
	persistedCell    map[string]string
	persistedStudent map[string]persistedCell
	persistedStore   map[string]map[string]persistedStudent
)

const flagSet = "X"

func scoreKey(p Period) string { return "Score " + p.String() }

func tierKey(t Tier, p Period) string { return fmt.Sprintf("%s %d", t, p) }

func flag(set bool) string {
	if set {
		return flagSet
	}
	return ""
}

// Encode serializes the store into its persisted layout.
func Encode(s Store) ([]byte, error) {
	out := make(persistedStore, len(s))
	for id, roster := range s {
		students := make(map[string]persistedStudent, len(roster))
		for name, rec := range roster {
			subjects := make(persistedStudent, len(rec))
			for code, sr := range rec {
				cell := make(persistedCell, 8)
				for _, p := range Periods {
					m := sr.Mark(p)
					cell[scoreKey(p)] = ""
					if m.Score.Valid {
						cell[scoreKey(p)] = strconv.Itoa(m.Score.Int)
					}
					cell[tierKey(TierTEA, p)] = flag(m.TEA)
					cell[tierKey(TierTEP, p)] = flag(m.TEP)
					cell[tierKey(TierTED, p)] = flag(m.TED)
				}
				subjects[string(code)] = cell
			}
			students[name] = subjects
		}
		out[string(id)] = students
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, "encoding grade store")
	}
	return data, nil
}

// Decode parses the persisted layout back into a Store.
// Unparseable or out of range scores are read as absent. Stored flags are not trusted:
// they are recomputed from the score.
func Decode(data []byte) (Store, error) {
	var in persistedStore
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrap(err, "decoding grade store")
	}

	s := make(Store, len(in))
	for course, students := range in {
		id := curriculum.NormalizeCourse(course)
		if id == "" {
			continue
		}
		roster, ok := s[id]
		if !ok {
			roster = make(Roster, len(students))
			s[id] = roster
		}
		for name, subjects := range students {
			rec := make(StudentRecord, len(subjects))
			for code, cell := range subjects {
				sc := curriculum.NormalizeSubject(code)
				if sc == "" {
					continue
				}
				rec[sc] = decodeCell(cell)
			}
			roster[name] = rec
		}
	}
	return s, nil
}

func decodeCell(cell persistedCell) SubjectRecord {
	var sr SubjectRecord
	for _, p := range Periods {
		sr.Apply(p, decodeScore(cell[scoreKey(p)]))
	}
	return sr
}

func decodeScore(raw string) null.Int {
	s, err := ParseScore(raw)
	if err != nil {
		return null.Int{}
	}
	return s
}

// EncodeCourses serializes the subject lists of runtime-created courses.
func EncodeCourses(courses map[curriculum.CourseID][]curriculum.SubjectCode) ([]byte, error) {
	out := make(map[string][]string, len(courses))
	for id, codes := range courses {
		out[string(id)] = subjectNames(codes)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, "encoding courses")
	}
	return data, nil
}

// DecodeCourses parses the output of EncodeCourses.
func DecodeCourses(data []byte) (map[curriculum.CourseID][]curriculum.SubjectCode, error) {
	var in map[string][]string
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrap(err, "decoding courses")
	}
	courses := make(map[curriculum.CourseID][]curriculum.SubjectCode, len(in))
	for course, codes := range in {
		if id := curriculum.NormalizeCourse(course); id != "" {
			courses[id] = curriculum.NormalizeSubjects(codes)
		}
	}
	return courses, nil
}

// subjectsOf derives a subject list from the records of a course, sorted.
func subjectsOf(roster Roster) []curriculum.SubjectCode {
	seen := make(map[curriculum.SubjectCode]bool)
	var codes []curriculum.SubjectCode
	for _, rec := range roster {
		for code := range rec {
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
