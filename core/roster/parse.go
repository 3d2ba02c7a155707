package roster

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/curriculum"
)

// DefaultDelimiter separates the course from the student name.
const DefaultDelimiter = ";"

// MaxLineLength is the longest line kept; longer lines are dropped.
const MaxLineLength = 64 * 1024

// rawHead bounds RowError.Raw for over-long lines.
const rawHead = 80

// Drop reasons
const (
	ReasonMissingField  = "expected a course and a student name"
	ReasonMissingCourse = "missing course"
	ReasonMissingName   = "missing student name"
	ReasonTooLong       = "line too long"
)

type (
	// ParseOptions configures how roster lines are split.
	ParseOptions struct {
		Delimiter  string
		SkipHeader bool
	}

	// Row is one (course, student) pair read from a roster.
	Row struct {
		Line   int
		Course curriculum.CourseID
		Name   string
	}

	// RowError describes a line that was dropped.
	RowError struct {
		Line   int    `json:"line"`
		Raw    string `json:"raw"`
		Reason string `json:"reason"`
	}

	Parsed struct {
		Rows    []Row
		Dropped []RowError
	}
)

// Parse reads "course<delim>name" lines. Only the first two fields of a line are used.
// Blank lines are ignored; lines without both a course and a name are dropped and
// listed in Parsed.Dropped.
func Parse(r io.Reader, opts ParseOptions) (Parsed, error) {
	delim := opts.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}

	var (
		res     Parsed
		lineNum int
	)
	br := bufio.NewReaderSize(r, MaxLineLength)
	for {
		line, tooLong, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return Parsed{}, errors.Wrap(err, "reading roster")
		}
		lineNum++
		line = strings.TrimSuffix(line, "\r")
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
			if opts.SkipHeader {
				continue
			}
		}
		if tooLong {
			res.Dropped = append(res.Dropped, RowError{Line: lineNum, Raw: line[:rawHead], Reason: ReasonTooLong})
			continue
		}
		if core.CleanString(line) == "" {
			continue
		}

		fields := strings.Split(line, delim)
		if len(fields) < 2 {
			res.Dropped = append(res.Dropped, RowError{Line: lineNum, Raw: line, Reason: ReasonMissingField})
			continue
		}
		course, name := curriculum.NormalizeCourse(fields[0]), core.CleanString(fields[1])
		switch {
		case course == "":
			res.Dropped = append(res.Dropped, RowError{Line: lineNum, Raw: line, Reason: ReasonMissingCourse})
		case name == "":
			res.Dropped = append(res.Dropped, RowError{Line: lineNum, Raw: line, Reason: ReasonMissingName})
		default:
			res.Rows = append(res.Rows, Row{Line: lineNum, Course: course, Name: name})
		}
	}
	return res, nil
}

// readLine returns the next line without its terminator. A line that does not fit
// in the reader's buffer is consumed to its end and reported as too long.
func readLine(br *bufio.Reader) (string, bool, error) {
	chunk, isPrefix, err := br.ReadLine()
	if err != nil {
		return "", false, err
	}
	line := string(chunk)
	for more := isPrefix; more; {
		if _, more, err = br.ReadLine(); err == io.EOF {
			break
		} else if err != nil {
			return "", false, err
		}
	}
	return line, isPrefix, nil
}

// Partition groups rows by course, keeping the order in which courses first appear.
func Partition(rows []Row) ([]curriculum.CourseID, map[curriculum.CourseID][]Row) {
	var order []curriculum.CourseID
	groups := make(map[curriculum.CourseID][]Row)
	for _, row := range rows {
		if _, ok := groups[row.Course]; !ok {
			order = append(order, row.Course)
		}
		groups[row.Course] = append(groups[row.Course], row)
	}
	return order, groups
}
