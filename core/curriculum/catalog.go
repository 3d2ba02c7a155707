package curriculum

import (
	"errors"
	"sort"
	"sync"
)

var (
	// errors
	ErrCourseExists = errors.New("course already exists")
	ErrNoSubjects   = errors.New("a subject list is required for a new course")
)

// Catalog maps every known course to its ordered subject list, and names the cycles
// and subject groups used to scope reports.
type Catalog struct {
	sync.RWMutex
	courses map[CourseID][]SubjectCode
	order   []CourseID
	builtin map[CourseID]bool
	cycles  map[string][]CourseID
	groups  map[string][]SubjectCode
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{
		courses: make(map[CourseID][]SubjectCode),
		builtin: make(map[CourseID]bool),
		cycles:  make(map[string][]CourseID),
		groups:  make(map[string][]SubjectCode),
	}
}

func (c *Catalog) add(id CourseID, subjects []SubjectCode, builtin bool) error {
	if _, ok := c.courses[id]; ok {
		return ErrCourseExists
	}
	if len(subjects) == 0 {
		return ErrNoSubjects
	}
	c.courses[id] = append([]SubjectCode(nil), subjects...)
	c.order = append(c.order, id)
	if builtin {
		c.builtin[id] = true
	}
	return nil
}

// Register adds a user-created course.
func (c *Catalog) Register(id CourseID, subjects []SubjectCode) error {
	c.Lock()
	defer c.Unlock()
	return c.add(id, subjects, false)
}

func (c *Catalog) setCycle(name string, ids ...CourseID) {
	c.cycles[name] = append([]CourseID(nil), ids...)
}

func (c *Catalog) setGroup(name string, codes ...SubjectCode) {
	c.groups[name] = append([]SubjectCode(nil), codes...)
}

func (c *Catalog) HasCourse(id CourseID) bool {
	c.RLock()
	defer c.RUnlock()
	_, ok := c.courses[id]
	return ok
}

// Subjects returns a copy of the subject list of the given course.
func (c *Catalog) Subjects(id CourseID) ([]SubjectCode, bool) {
	c.RLock()
	defer c.RUnlock()
	subjects, ok := c.courses[id]
	if !ok {
		return nil, false
	}
	return append([]SubjectCode(nil), subjects...), true
}

func (c *Catalog) HasSubject(id CourseID, code SubjectCode) bool {
	c.RLock()
	defer c.RUnlock()
	for _, s := range c.courses[id] {
		if s == code {
			return true
		}
	}
	return false
}

// Courses returns every course, in registration order.
func (c *Catalog) Courses() []CourseID {
	c.RLock()
	defer c.RUnlock()
	return append([]CourseID(nil), c.order...)
}

// Custom returns the courses registered at runtime (not part of the static catalog).
func (c *Catalog) Custom() map[CourseID][]SubjectCode {
	c.RLock()
	defer c.RUnlock()
	custom := make(map[CourseID][]SubjectCode)
	for id, subjects := range c.courses {
		if !c.builtin[id] {
			custom[id] = append([]SubjectCode(nil), subjects...)
		}
	}
	return custom
}

// Cycle returns the courses belonging to the named cycle.
func (c *Catalog) Cycle(name string) ([]CourseID, bool) {
	c.RLock()
	defer c.RUnlock()
	ids, ok := c.cycles[NormalizeName(name)]
	return append([]CourseID(nil), ids...), ok
}

func (c *Catalog) Cycles() []string {
	c.RLock()
	defer c.RUnlock()
	names := make([]string, 0, len(c.cycles))
	for name := range c.cycles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Group returns the subject codes of the named group.
func (c *Catalog) Group(name string) ([]SubjectCode, bool) {
	c.RLock()
	defer c.RUnlock()
	codes, ok := c.groups[NormalizeName(name)]
	return append([]SubjectCode(nil), codes...), ok
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	c.RLock()
	defer c.RUnlock()
	cp := New()
	for _, id := range c.order {
		_ = cp.add(id, c.courses[id], c.builtin[id])
	}
	for name, ids := range c.cycles {
		cp.setCycle(name, ids...)
	}
	for name, codes := range c.groups {
		cp.setGroup(name, codes...)
	}
	return cp
}
