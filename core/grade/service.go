package grade

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/curriculum"
)

type (
	// Repository is a durable key-value slot holding encoded blobs.
	// Get returns ErrSlotEmpty when nothing was saved under `key`.
	Repository interface {
		Get(ctx context.Context, key string) ([]byte, error)
		Put(ctx context.Context, key string, data []byte) error
	}

	// Service owns the in-memory grade book. Every mutation flushes the whole store to the slot.
	Service struct {
		mu       sync.Mutex
		repo     Repository
		base     *curriculum.Catalog
		catalog  *curriculum.Catalog
		store    Store
		validate *validator.Validate
		logger   core.Logger
		slot     string
		courses  string
	}
)

func NewService(
	repo Repository,
	catalog *curriculum.Catalog,
	validate *validator.Validate,
	logger core.Logger,
	conf *core.Config,
) *Service {
	return &Service{
		repo:     repo,
		base:     catalog,
		catalog:  catalog.Clone(),
		store:    make(Store),
		validate: validate,
		logger:   logger,
		slot:     conf.Storage.Slot,
		courses:  conf.Storage.CoursesSlot(),
	}
}

// Load replaces the in-memory state with the content of the slot.
// Absent or undecodable data yields an empty store.
func (svc *Service) Load(ctx context.Context) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.catalog = svc.base.Clone()
	svc.store = make(Store)

	var custom map[curriculum.CourseID][]curriculum.SubjectCode
	if data := svc.get(ctx, svc.courses); data != nil {
		var err error
		if custom, err = DecodeCourses(data); err != nil {
			svc.logger.Warn("grade.Service.Load: ignoring undecodable courses", err)
		}
	}
	ids := make([]curriculum.CourseID, 0, len(custom))
	for id := range custom {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if svc.catalog.HasCourse(id) {
			continue
		}
		if err := svc.catalog.Register(id, custom[id]); err != nil {
			svc.logger.Warn("grade.Service.Load: skipping course", map[string]interface{}{"course": id}, err)
		}
	}

	if data := svc.get(ctx, svc.slot); data != nil {
		store, err := Decode(data)
		if err != nil {
			svc.logger.Warn("grade.Service.Load: starting from an empty store", err)
		} else {
			svc.store = store
		}
	}
	svc.reconcile()
}

// get reads a slot, returning nil when it is empty or unreadable.
func (svc *Service) get(ctx context.Context, key string) []byte {
	data, err := svc.repo.Get(ctx, key)
	switch {
	case errors.Is(err, ErrSlotEmpty):
		svc.logger.Debug("grade.Service.Load: empty slot", map[string]interface{}{"slot": key})
		return nil
	case err != nil:
		svc.logger.Warn("grade.Service.Load: unreadable slot", map[string]interface{}{"slot": key}, err)
		return nil
	}
	return data
}

// reconcile makes the store agree with the catalog: unknown courses are registered from
// their students' subjects, and every record holds exactly the subjects of its course.
func (svc *Service) reconcile() {
	for _, id := range svc.store.Courses() {
		roster := svc.store[id]
		if !svc.catalog.HasCourse(id) {
			if err := svc.catalog.Register(id, subjectsOf(roster)); err != nil {
				svc.logger.Warn("grade.Service.Load: dropping course", map[string]interface{}{"course": id}, err)
				delete(svc.store, id)
				continue
			}
		}
		subjects, _ := svc.catalog.Subjects(id)
		for name, rec := range roster {
			fixed := newStudentRecord(subjects)
			for code := range fixed {
				if sr, ok := rec[code]; ok {
					fixed[code] = sr
				}
			}
			roster[name] = fixed
		}
	}
}

// Save flushes the store (and the subject lists of runtime-created courses) to the slot.
func (svc *Service) Save(ctx context.Context) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.save(ctx, svc.store, svc.catalog)
}

// save writes the course lists before the store, so a stored course never lacks its subject order.
func (svc *Service) save(ctx context.Context, store Store, catalog *curriculum.Catalog) error {
	courses, err := EncodeCourses(catalog.Custom())
	if err != nil {
		return err
	}
	data, err := Encode(store)
	if err != nil {
		return err
	}

	if err := svc.repo.Put(ctx, svc.courses, courses); err != nil {
		return errors.Wrap(err, "saving courses")
	}
	if err := svc.repo.Put(ctx, svc.slot, data); err != nil {
		return errors.Wrap(err, "saving grade store")
	}
	return nil
}

// commit applies `mutate` to copies of the store and catalog, flushes them, and keeps them
// only when the flush succeeds.
func (svc *Service) commit(ctx context.Context, mutate func(store Store, catalog *curriculum.Catalog) error) error {
	store, catalog := svc.store.Clone(), svc.catalog.Clone()
	if err := mutate(store, catalog); err != nil {
		return err
	}
	if err := svc.save(ctx, store, catalog); err != nil {
		return err
	}
	svc.store, svc.catalog = store, catalog
	return nil
}

// AddCourse registers a course and gives it an empty roster.
func (svc *Service) AddCourse(ctx context.Context, nc NewCourse) error {
	nc = nc.clean()
	if len(nc.Subjects) == 0 {
		return ErrMissingSubjects
	}
	if err := svc.validate.Struct(nc); err != nil {
		return err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	id := curriculum.CourseID(nc.Course)
	err := svc.commit(ctx, func(store Store, catalog *curriculum.Catalog) error {
		if err := catalog.Register(id, curriculum.NormalizeSubjects(nc.Subjects)); err != nil {
			return err
		}
		if _, ok := store[id]; !ok {
			store[id] = make(Roster)
		}
		return nil
	})
	if err != nil {
		return err
	}
	svc.logger.Info("course added", map[string]interface{}{"course": id})
	return nil
}

// AddStudent creates a blank record for a student, registering the course first when
// it is not cataloged yet (which then requires a subject list).
func (svc *Service) AddStudent(ctx context.Context, ns NewStudent) error {
	ns = ns.clean()
	if err := svc.validate.Struct(ns); err != nil {
		return err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	id := curriculum.CourseID(ns.Course)
	isNew := !svc.catalog.HasCourse(id)
	if isNew && len(ns.Subjects) == 0 {
		return ErrMissingSubjects
	}
	if _, ok := svc.store[id].find(ns.Name); ok {
		return ErrDuplicateStudent
	}

	err := svc.commit(ctx, func(store Store, catalog *curriculum.Catalog) error {
		if isNew {
			if err := catalog.Register(id, curriculum.NormalizeSubjects(ns.Subjects)); err != nil {
				return err
			}
		}
		addStudent(store, catalog, id, ns.Name)
		return nil
	})
	if err != nil {
		return err
	}
	svc.logger.Info("student added", map[string]interface{}{"course": id, "student": ns.Name})
	return nil
}

func addStudent(store Store, catalog *curriculum.Catalog, id curriculum.CourseID, name string) {
	subjects, _ := catalog.Subjects(id)
	roster, ok := store[id]
	if !ok {
		roster = make(Roster)
		store[id] = roster
	}
	roster[name] = newStudentRecord(subjects)
}

// find returns the stored name matching `name`, exactly or else case-insensitively.
func (r Roster) find(name string) (string, bool) {
	if _, ok := r[name]; ok {
		return name, true
	}
	for stored := range r {
		if strings.EqualFold(stored, name) {
			return stored, true
		}
	}
	return "", false
}

// SetScore writes one period of a subject record and reclassifies it.
func (svc *Service) SetScore(ctx context.Context, e ScoreEntry) error {
	e = e.clean()
	if err := svc.validate.Struct(e); err != nil {
		return err
	}
	score, err := ParseScore(e.Score)
	if err != nil {
		return err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	id := curriculum.CourseID(e.Course)
	if err := svc.checkCourse(id); err != nil {
		return err
	}
	code := curriculum.SubjectCode(e.Subject)
	if !svc.catalog.HasSubject(id, code) {
		subjects, _ := svc.catalog.Subjects(id)
		return unknown(ErrUnknownSubject, e.Subject, subjectNames(subjects))
	}
	name, ok := svc.store[id].find(e.Student)
	if !ok {
		return unknown(ErrUnknownStudent, e.Student, svc.store[id].Names())
	}

	err = svc.commit(ctx, func(store Store, _ *curriculum.Catalog) error {
		rec := store[id][name]
		sr := rec[code]
		sr.Apply(Period(e.Period), score)
		rec[code] = sr
		return nil
	})
	if err != nil {
		return err
	}
	svc.logger.Debug("score set", map[string]interface{}{
		"course": id, "student": name, "subject": code, "period": e.Period, "score": score.Ptr(),
	})
	return nil
}

func (svc *Service) checkCourse(id curriculum.CourseID) error {
	if !svc.catalog.HasCourse(id) {
		return unknown(ErrUnknownCourse, string(id), courseNames(svc.catalog.Courses()))
	}
	return nil
}

// unknown wraps `err` with the offending value, and the closest candidate if any.
func unknown(err error, value string, candidates []string) error {
	if match, ok := suggest(value, candidates); ok {
		return errors.Wrapf(err, "%q (did you mean %q?)", value, match)
	}
	return errors.Wrapf(err, "%q", value)
}

// Enroll adds a batch of students in one go. The whole batch is validated before
// anything is applied; students already present (or repeated in the batch) are skipped.
// A course missing from the catalog must come with a subject list.
func (svc *Service) Enroll(ctx context.Context, batch []Enrollment) (EnrollResult, error) {
	cleaned := make([]Enrollment, 0, len(batch))
	for _, en := range batch {
		en = en.clean()
		if err := svc.validate.Struct(en); err != nil {
			return EnrollResult{}, err
		}
		cleaned = append(cleaned, en)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	var (
		res      EnrollResult
		newCodes = make(map[curriculum.CourseID][]curriculum.SubjectCode)
		seen     = make(map[curriculum.CourseID]map[string]bool)
	)
	for _, en := range cleaned {
		id := curriculum.CourseID(en.Course)
		if svc.catalog.HasCourse(id) {
			continue
		}
		if _, ok := newCodes[id]; ok {
			continue
		}
		if len(en.Subjects) == 0 {
			return EnrollResult{}, errors.Wrapf(ErrUnknownCourse, "%q has no subject list", id)
		}
		newCodes[id] = curriculum.NormalizeSubjects(en.Subjects)
		res.CreatedCourses = append(res.CreatedCourses, id)
	}

	for _, en := range cleaned {
		id := curriculum.CourseID(en.Course)
		key := strings.ToLower(en.Name)
		if seen[id] == nil {
			seen[id] = make(map[string]bool)
		}
		if _, ok := svc.store[id].find(en.Name); ok || seen[id][key] {
			res.Duplicates = append(res.Duplicates, en)
			continue
		}
		seen[id][key] = true
		res.Enrolled = append(res.Enrolled, en)
	}

	err := svc.commit(ctx, func(store Store, catalog *curriculum.Catalog) error {
		for _, id := range res.CreatedCourses {
			if err := catalog.Register(id, newCodes[id]); err != nil {
				return err
			}
			if _, ok := store[id]; !ok {
				store[id] = make(Roster)
			}
		}
		for _, en := range res.Enrolled {
			addStudent(store, catalog, curriculum.CourseID(en.Course), en.Name)
		}
		return nil
	})
	if err != nil {
		return EnrollResult{}, err
	}
	svc.logger.Info("students enrolled", map[string]interface{}{
		"enrolled": len(res.Enrolled), "duplicates": len(res.Duplicates), "courses": res.CreatedCourses,
	})
	return res, nil
}

// Snapshot returns a deep copy of the store.
func (svc *Service) Snapshot() Store {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.store.Clone()
}

// Catalog returns a copy of the current catalog, runtime-created courses included.
func (svc *Service) Catalog() *curriculum.Catalog {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.catalog.Clone()
}

// Student returns a copy of the record of a student, looked up case-insensitively.
func (svc *Service) Student(course, name string) (StudentRecord, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	id := curriculum.NormalizeCourse(course)
	if err := svc.checkCourse(id); err != nil {
		return nil, err
	}
	stored, ok := svc.store[id].find(strings.TrimSpace(name))
	if !ok {
		return nil, unknown(ErrUnknownStudent, name, svc.store[id].Names())
	}
	return svc.store[id][stored].clone(), nil
}
