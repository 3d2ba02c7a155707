package main

import (
	"context"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/curriculum"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/roster"
	logsvc "github.com/trezcool/gradebook/services/logger"
	"github.com/trezcool/gradebook/storage/database"
	badgerdb "github.com/trezcool/gradebook/storage/database/badger"
	dummydb "github.com/trezcool/gradebook/storage/database/dummy"
	redisdb "github.com/trezcool/gradebook/storage/database/redis"
	sqlxrepos "github.com/trezcool/gradebook/storage/database/sqlx"
)

var logger core.Logger

func main() {
	conf := core.NewConfig()
	logger = newLogger(conf)
	ctx := context.Background()

	// set up storage
	repo, db, closeFn, err := openRepository(ctx, conf)
	errAndDie(err)

	catalog, err := loadCatalog(conf)
	errAndDie(err)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	grade.InitValidators(validate, translator)

	svc := grade.NewService(repo, catalog, validate, logger, conf)
	svc.Load(ctx)

	// start CLI
	cli := commandLine{
		svc:        svc,
		importer:   roster.NewImporter(svc, logger, conf),
		translator: translator,
		db:         db,
		in:         os.Stdin,
		inFd:       int(os.Stdin.Fd()),
		out:        os.Stdout,
	}
	err = cli.run(os.Args)
	closeFn()
	if err != nil {
		if err != errHelp {
			logger.Error(cli.explain(err))
		}
		os.Exit(1)
	}
}

func newLogger(conf *core.Config) core.Logger {
	if conf.Debug {
		if zl, err := logsvc.NewZapLogger(conf); err == nil {
			return zl
		}
	}
	std := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(std, conf)
}

// openRepository opens the slot backend selected by conf.Storage.Driver.
// The returned *sqlx.DB is nil for non SQL drivers.
func openRepository(ctx context.Context, conf *core.Config) (grade.Repository, *sqlx.DB, func(), error) {
	nop := func() {}
	switch conf.Storage.Driver {
	case core.DriverMemory:
		db, err := dummydb.Open()
		if err != nil {
			return nil, nil, nop, err
		}
		return dummydb.NewSlotRepository(db), nil, nop, nil

	case core.DriverBadger:
		db, err := badgerdb.Open(conf, logger)
		if err != nil {
			return nil, nil, nop, err
		}
		return badgerdb.NewSlotRepository(db), nil, func() { _ = db.Close() }, nil

	case core.DriverRedis:
		client, err := redisdb.Open(ctx, conf)
		if err != nil {
			return nil, nil, nop, err
		}
		return redisdb.NewSlotRepository(client), nil, func() { _ = client.Close() }, nil

	case core.DriverPostgres, core.DriverSqlite:
		db, err := database.Open(conf)
		if err != nil {
			return nil, nil, nop, errors.Wrap(err, "opening database")
		}
		if err := database.Ping(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, nop, err
		}
		return sqlxrepos.NewSlotRepository(db), db, func() { _ = db.Close() }, nil

	default:
		return nil, nil, nop, errors.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}

// loadCatalog returns the default catalog, or the one described by conf.CatalogFile.
func loadCatalog(conf *core.Config) (*curriculum.Catalog, error) {
	if conf.CatalogFile == "" {
		return curriculum.Default(), nil
	}
	f, err := os.Open(conf.CatalogFile)
	if err != nil {
		return nil, errors.Wrap(err, "opening catalog")
	}
	defer func() { _ = f.Close() }()
	return curriculum.LoadYAML(f)
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error())
	}
}
