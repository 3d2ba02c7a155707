package testutil

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/curriculum"
	"github.com/trezcool/gradebook/core/grade"
	dummydb "github.com/trezcool/gradebook/storage/database/dummy"
)

// NewConfig returns a test configuration backed by the memory driver.
func NewConfig() *core.Config {
	return &core.Config{
		Env:      "TEST",
		TestMode: true,
		AppName:  "Masomo Gradebook",
		Storage:  core.StorageConfig{Driver: core.DriverMemory, Slot: "gradebook"},
		Roster:   core.RosterConfig{Delimiter: ";"},
	}
}

// NewValidator returns a validator with every custom tag registered.
func NewValidator() *validator.Validate {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	grade.InitValidators(validate, translator)
	return validate
}

// NewRepository returns an empty memory slot.
func NewRepository(t *testing.T) grade.Repository {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	return dummydb.NewSlotRepository(db)
}

// NewService returns a loaded grade service over `repo` and the default catalog.
func NewService(t *testing.T, repo grade.Repository) *grade.Service {
	svc := grade.NewService(repo, curriculum.Default(), NewValidator(), core.NopLogger(), NewConfig())
	svc.Load(context.Background())
	return svc
}

func AddStudent(t *testing.T, svc *grade.Service, course, name string, subjects ...string) {
	ns := grade.NewStudent{Course: course, Name: name, Subjects: subjects}
	if err := svc.AddStudent(context.Background(), ns); err != nil {
		t.Fatalf("AddStudent() failed: %v", err)
	}
}

func SetScore(t *testing.T, svc *grade.Service, course, name, subject string, period int, score string) {
	e := grade.ScoreEntry{Course: course, Student: name, Subject: subject, Period: period, Score: score}
	if err := svc.SetScore(context.Background(), e); err != nil {
		t.Fatalf("SetScore() failed: %v", err)
	}
}
