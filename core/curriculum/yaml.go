package curriculum

import (
	"io"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Courses map[string][]string `yaml:"courses"`
	Cycles  map[string][]string `yaml:"cycles"`
	Groups  map[string][]string `yaml:"groups"`
}

// LoadYAML reads a catalog document:
//
//	courses:
//	  1ro 1ra: [PLG, MTM]
//	cycles:
//	  basic: [1ro 1ra]
//	groups:
//	  math: [MTM, MCS]
//
// Courses are registered in sorted order; cycles may only name declared courses.
func LoadYAML(r io.Reader) (*Catalog, error) {
	var doc catalogFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding catalog")
	}

	names := make([]string, 0, len(doc.Courses))
	for name := range doc.Courses {
		names = append(names, name)
	}
	sort.Strings(names)

	c := New()
	for _, name := range names {
		id := NormalizeCourse(name)
		if err := c.add(id, NormalizeSubjects(doc.Courses[name]), true); err != nil {
			return nil, errors.Wrapf(err, "course %q", name)
		}
	}
	for name, courses := range doc.Cycles {
		ids := make([]CourseID, 0, len(courses))
		for _, course := range courses {
			id := NormalizeCourse(course)
			if _, ok := c.courses[id]; !ok {
				return nil, errors.Errorf("cycle %q: unknown course %q", name, course)
			}
			ids = append(ids, id)
		}
		c.setCycle(NormalizeName(name), ids...)
	}
	for name, codes := range doc.Groups {
		c.setGroup(NormalizeName(name), NormalizeSubjects(codes)...)
	}
	return c, nil
}
