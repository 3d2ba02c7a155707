package roster

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/curriculum"
	"github.com/trezcool/gradebook/core/grade"
)

type (
	// Enroller is the part of grade.Service an import needs.
	Enroller interface {
		AddStudent(ctx context.Context, ns grade.NewStudent) error
		Enroll(ctx context.Context, batch []grade.Enrollment) (grade.EnrollResult, error)
		Catalog() *curriculum.Catalog
	}

	// ImportOptions tunes one import. Subjects seeds the catalog entry of courses
	// the roster introduces; a new course missing from it fails the whole import.
	ImportOptions struct {
		SkipHeader bool
		Subjects   map[curriculum.CourseID][]curriculum.SubjectCode
	}

	Report struct {
		ID             uuid.UUID             `json:"id"`
		Rows           int                   `json:"rows"`
		Imported       int                   `json:"imported"`
		CreatedCourses []curriculum.CourseID `json:"created_courses"`
		Duplicates     []Row                 `json:"duplicates"`
		Dropped        []RowError            `json:"dropped"`
	}

	Importer struct {
		svc    Enroller
		logger core.Logger
		delim  string
	}
)

func NewImporter(svc Enroller, logger core.Logger, conf *core.Config) *Importer {
	delim := conf.Roster.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}
	return &Importer{svc: svc, logger: logger, delim: delim}
}

// Import reads a roster and enrolls every student in one batch.
// Malformed lines are skipped and listed in the report, never reported as an error.
func (imp *Importer) Import(ctx context.Context, r io.Reader, opts ImportOptions) (Report, error) {
	parsed, err := Parse(r, ParseOptions{Delimiter: imp.delim, SkipHeader: opts.SkipHeader})
	if err != nil {
		return Report{}, err
	}

	catalog := imp.svc.Catalog()
	order, groups := Partition(parsed.Rows)
	batch := make([]grade.Enrollment, 0, len(parsed.Rows))
	for _, id := range order {
		var subjects []string
		if !catalog.HasCourse(id) {
			codes := opts.Subjects[id]
			if len(codes) == 0 {
				return Report{}, errors.Wrapf(grade.ErrUnknownCourse, "%q needs a subject list", id.Display())
			}
			subjects = make([]string, 0, len(codes))
			for _, code := range codes {
				subjects = append(subjects, string(code))
			}
		}
		for _, row := range groups[id] {
			batch = append(batch, grade.Enrollment{Course: string(id), Name: row.Name, Subjects: subjects})
		}
	}

	rep := Report{
		ID:      uuid.New(),
		Rows:    len(parsed.Rows) + len(parsed.Dropped),
		Dropped: parsed.Dropped,
	}
	if len(batch) > 0 {
		res, err := imp.svc.Enroll(ctx, batch)
		if err != nil {
			return Report{}, err
		}
		rep.Imported = len(res.Enrolled)
		rep.CreatedCourses = res.CreatedCourses
		rep.Duplicates = duplicateRows(groups, res.Duplicates)
	}
	imp.logger.Info("roster imported", map[string]interface{}{
		"id":         rep.ID.String(),
		"rows":       rep.Rows,
		"imported":   rep.Imported,
		"duplicates": len(rep.Duplicates),
		"dropped":    len(rep.Dropped),
	})
	return rep, nil
}

// duplicateRows maps the skipped enrollments back to their roster lines.
func duplicateRows(groups map[curriculum.CourseID][]Row, dups []grade.Enrollment) []Row {
	rows := make([]Row, 0, len(dups))
	used := make(map[int]bool, len(dups))
	for _, en := range dups {
		for _, row := range groups[curriculum.CourseID(en.Course)] {
			if row.Name == en.Name && !used[row.Line] {
				used[row.Line] = true
				rows = append(rows, row)
				break
			}
		}
	}
	return rows
}

// AddStudent adds a single student. `rawSubjects` is a comma separated subject list,
// only used (and then required) when the course is not cataloged yet.
func (imp *Importer) AddStudent(ctx context.Context, course, name, rawSubjects string) error {
	ns := grade.NewStudent{Course: course, Name: name}
	if id := curriculum.NormalizeCourse(course); !imp.svc.Catalog().HasCourse(id) {
		codes := curriculum.ParseSubjects(rawSubjects)
		if len(codes) == 0 {
			return grade.ErrMissingSubjects
		}
		for _, code := range codes {
			ns.Subjects = append(ns.Subjects, string(code))
		}
	}
	return imp.svc.AddStudent(ctx, ns)
}

// ParseSubjectMap reads "course:SUBJ, SUBJ" assignments, as given on the command line.
func ParseSubjectMap(items []string) (map[curriculum.CourseID][]curriculum.SubjectCode, error) {
	subjects := make(map[curriculum.CourseID][]curriculum.SubjectCode, len(items))
	for _, item := range items {
		course, list, ok := strings.Cut(item, ":")
		id := curriculum.NormalizeCourse(course)
		codes := curriculum.ParseSubjects(list)
		if !ok || id == "" || len(codes) == 0 {
			return nil, core.NewValidationError(
				errors.Errorf("invalid subject list %q", item),
				core.FieldError{Field: "subjects", Error: `expected "<course>:<SUBJ>, <SUBJ>..."`},
			)
		}
		subjects[id] = codes
	}
	return subjects, nil
}
