package roster

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/curriculum"
	"github.com/trezcool/gradebook/core/grade"
	testutil "github.com/trezcool/gradebook/tests"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		opts        ParseOptions
		wantRows    []Row
		wantDropped []RowError
	}{
		{
			name:  "simple",
			input: "1RO 1RA; Ana Gomez \n1ro 1ra;Luis Paz\n",
			wantRows: []Row{
				{Line: 1, Course: "1ro 1ra", Name: "Ana Gomez"},
				{Line: 2, Course: "1ro 1ra", Name: "Luis Paz"},
			},
		},
		{
			name:     "header",
			input:    "curso;nombre\n2do 1ra;Rosa Diaz",
			opts:     ParseOptions{SkipHeader: true},
			wantRows: []Row{{Line: 2, Course: "2do 1ra", Name: "Rosa Diaz"}},
		},
		{
			name:  "header kept when not asked",
			input: "curso;nombre\n",
			wantRows: []Row{
				{Line: 1, Course: "curso", Name: "nombre"},
			},
		},
		{
			name:     "extra fields, crlf & blank lines",
			input:    "2do 1ra;Rosa Diaz;extra\r\n\r\n   \n",
			wantRows: []Row{{Line: 1, Course: "2do 1ra", Name: "Rosa Diaz"}},
		},
		{
			name:     "custom delimiter",
			input:    "2do 1ra|Rosa Diaz",
			opts:     ParseOptions{Delimiter: "|"},
			wantRows: []Row{{Line: 1, Course: "2do 1ra", Name: "Rosa Diaz"}},
		},
		{
			name:     "malformed",
			input:    "Ana Gomez\n;Luis Paz\n1ro 1ra; \n1ro 1ra;Rosa Diaz",
			wantRows: []Row{{Line: 4, Course: "1ro 1ra", Name: "Rosa Diaz"}},
			wantDropped: []RowError{
				{Line: 1, Raw: "Ana Gomez", Reason: ReasonMissingField},
				{Line: 2, Raw: ";Luis Paz", Reason: ReasonMissingCourse},
				{Line: 3, Raw: "1ro 1ra; ", Reason: ReasonMissingName},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input), tt.opts)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.wantRows, got.Rows); diff != "" {
				t.Errorf("Parse() rows mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantDropped, got.Dropped); diff != "" {
				t.Errorf("Parse() dropped mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_longLine(t *testing.T) {
	long := "1ro 1ra;" + strings.Repeat("x", MaxLineLength+10)
	input := "1ro 1ra;Ana Gomez\n" + long + "\n1ro 1ra;Luis Paz\n"

	got, err := Parse(strings.NewReader(input), ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, []Row{
		{Line: 1, Course: "1ro 1ra", Name: "Ana Gomez"},
		{Line: 3, Course: "1ro 1ra", Name: "Luis Paz"},
	}, got.Rows)
	require.Len(t, got.Dropped, 1)
	assert.Equal(t, 2, got.Dropped[0].Line)
	assert.Equal(t, ReasonTooLong, got.Dropped[0].Reason)
	assert.Equal(t, long[:80], got.Dropped[0].Raw)
}

func TestPartition(t *testing.T) {
	rows := []Row{
		{Line: 1, Course: "2do 1ra", Name: "Luis Paz"},
		{Line: 2, Course: "1ro 1ra", Name: "Ana Gomez"},
		{Line: 3, Course: "2do 1ra", Name: "Rosa Diaz"},
	}
	order, groups := Partition(rows)
	assert.Equal(t, []curriculum.CourseID{"2do 1ra", "1ro 1ra"}, order)
	assert.Len(t, groups["2do 1ra"], 2)
	assert.Len(t, groups["1ro 1ra"], 1)
}

func newImporter(t *testing.T) (*Importer, *grade.Service) {
	svc := testutil.NewService(t, testutil.NewRepository(t))
	return NewImporter(svc, core.NopLogger(), testutil.NewConfig()), svc
}

func TestImporter_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("new course from subject map", func(t *testing.T) {
		imp, svc := newImporter(t)
		input := "7mo 1ra;Luis Paz\n7mo 1ra;Rosa Diaz\n"
		opts := ImportOptions{Subjects: map[curriculum.CourseID][]curriculum.SubjectCode{
			"7mo 1ra": curriculum.ParseSubjects("BLG, ART"),
		}}

		rep, err := imp.Import(ctx, strings.NewReader(input), opts)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, rep.ID)
		assert.Equal(t, 2, rep.Imported)
		assert.Equal(t, []curriculum.CourseID{"7mo 1ra"}, rep.CreatedCourses)

		subjects, ok := svc.Catalog().Subjects("7mo 1ra")
		require.True(t, ok)
		assert.Equal(t, []curriculum.SubjectCode{"BLG", "ART"}, subjects)
		blank := grade.StudentRecord{"BLG": {}, "ART": {}}
		roster := svc.Snapshot()["7mo 1ra"]
		assert.Equal(t, grade.Roster{"Luis Paz": blank, "Rosa Diaz": blank}, roster)
	})

	t.Run("malformed row dropped", func(t *testing.T) {
		imp, _ := newImporter(t)
		input := "1ro 1ra;Ana Gomez\nsolo un campo\n1ro 1ra;Luis Paz\n"

		rep, err := imp.Import(ctx, strings.NewReader(input), ImportOptions{})
		require.NoError(t, err)
		assert.Equal(t, 3, rep.Rows)
		assert.Equal(t, rep.Rows-len(rep.Dropped), rep.Imported)
		assert.Equal(t, 2, rep.Imported)
		require.Len(t, rep.Dropped, 1)
		assert.Equal(t, 2, rep.Dropped[0].Line)
	})

	t.Run("unknown course rejects the import", func(t *testing.T) {
		imp, svc := newImporter(t)
		input := "1ro 1ra;Ana Gomez\n7mo 1ra;Luis Paz\n"

		_, err := imp.Import(ctx, strings.NewReader(input), ImportOptions{})
		assert.Equal(t, grade.ErrUnknownCourse, errors.Cause(err))
		assert.Empty(t, svc.Snapshot())
	})

	t.Run("duplicates", func(t *testing.T) {
		imp, svc := newImporter(t)
		testutil.AddStudent(t, svc, "1ro 1ra", "Ana Gomez")
		input := "course;name\n1ro 1ra;ANA GOMEZ\n1ro 1ra;Luis Paz\n1ro 1ra;luis paz\n"

		rep, err := imp.Import(ctx, strings.NewReader(input), ImportOptions{SkipHeader: true})
		require.NoError(t, err)
		assert.Equal(t, 1, rep.Imported)
		assert.Equal(t, []Row{
			{Line: 2, Course: "1ro 1ra", Name: "ANA GOMEZ"},
			{Line: 4, Course: "1ro 1ra", Name: "luis paz"},
		}, rep.Duplicates)
		assert.Equal(t, []string{"Ana Gomez", "Luis Paz"}, svc.Snapshot()["1ro 1ra"].Names())
	})

	t.Run("empty roster", func(t *testing.T) {
		imp, _ := newImporter(t)
		rep, err := imp.Import(ctx, strings.NewReader(""), ImportOptions{})
		require.NoError(t, err)
		assert.Zero(t, rep.Imported)
	})
}

func TestImporter_AddStudent(t *testing.T) {
	ctx := context.Background()
	imp, svc := newImporter(t)

	err := imp.AddStudent(ctx, "7mo 1ra", "Luis Paz", " , ")
	assert.Equal(t, grade.ErrMissingSubjects, err)
	assert.False(t, svc.Catalog().HasCourse("7mo 1ra"))
	assert.Empty(t, svc.Snapshot())

	require.NoError(t, imp.AddStudent(ctx, "7MO 1RA", "Luis Paz", "blg, ,art"))
	subjects, _ := svc.Catalog().Subjects("7mo 1ra")
	assert.Equal(t, []curriculum.SubjectCode{"BLG", "ART"}, subjects)

	// cataloged course: the subject list is not needed
	require.NoError(t, imp.AddStudent(ctx, "1ro 1ra", "Ana Gomez", ""))
	err = imp.AddStudent(ctx, "1ro 1ra", "ana gomez", "")
	assert.Equal(t, grade.ErrDuplicateStudent, err)
}

func TestParseSubjectMap(t *testing.T) {
	got, err := ParseSubjectMap([]string{"7mo 1ra: BLG, art", "8VO 1RA:MTM"})
	require.NoError(t, err)
	assert.Equal(t, map[curriculum.CourseID][]curriculum.SubjectCode{
		"7mo 1ra": {"BLG", "ART"},
		"8vo 1ra": {"MTM"},
	}, got)

	for _, item := range []string{"7mo 1ra", "7mo 1ra:", ":BLG"} {
		_, err := ParseSubjectMap([]string{item})
		var vErr *core.ValidationError
		if assert.True(t, errors.As(err, &vErr), item) {
			assert.Equal(t, "subjects", vErr.Fields[0].Field)
		}
	}
}
