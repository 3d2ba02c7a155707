package core

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverBadger   = "badger"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

type (
	Config struct {
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		AppName      string
		RollbarToken string
		CatalogFile  string
		Storage      StorageConfig
		Roster       RosterConfig
	}

	StorageConfig struct {
		Driver    string
		Slot      string
		BadgerDir string
		Redis     RedisConfig
		Database  DatabaseConfig
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	DatabaseConfig struct {
		Engine     string
		Host       string
		Port       int
		User       string
		Password   string
		Name       string
		DisableTLS bool
	}

	RosterConfig struct {
		Delimiter string
	}
)

func (dbc DatabaseConfig) Address() string {
	return net.JoinHostPort(dbc.Host, strconv.Itoa(dbc.Port))
}

// CoursesSlot is the sibling key holding the subject lists of user-created courses.
func (sc StorageConfig) CoursesSlot() string {
	return sc.Slot + ":courses"
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("build", "dev")
	conf.SetDefault("appName", "Masomo Gradebook")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("catalogFile", "")
	conf.SetDefault("storage.driver", DriverBadger)
	conf.SetDefault("storage.slot", "gradebook")
	conf.SetDefault("storage.badgerDir", filepath.Join(os.TempDir(), "masomo-gradebook"))
	conf.SetDefault("storage.redis.addr", "localhost:6379")
	conf.SetDefault("storage.redis.password", "")
	conf.SetDefault("storage.redis.db", 0)
	conf.SetDefault("storage.database.engine", "postgres")
	conf.SetDefault("storage.database.host", "localhost")
	conf.SetDefault("storage.database.port", 5432)
	conf.SetDefault("storage.database.user", "masomo")
	conf.SetDefault("storage.database.password", "")
	conf.SetDefault("storage.database.name", "masomo")
	conf.SetDefault("storage.database.disableTLS", false)
	conf.SetDefault("roster.delimiter", ";")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
		conf.SetDefault("storage.driver", DriverMemory)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	if wd, err := os.Getwd(); err == nil {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
		}
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		RollbarToken: conf.GetString("rollbarToken"),
		CatalogFile:  conf.GetString("catalogFile"),
		Storage: StorageConfig{
			Driver:    CleanString(conf.GetString("storage.driver"), true /* lower */),
			Slot:      CleanString(conf.GetString("storage.slot")),
			BadgerDir: conf.GetString("storage.badgerDir"),
			Redis: RedisConfig{
				Addr:     conf.GetString("storage.redis.addr"),
				Password: conf.GetString("storage.redis.password"),
				DB:       conf.GetInt("storage.redis.db"),
			},
			Database: DatabaseConfig{
				Engine:     conf.GetString("storage.database.engine"),
				Host:       conf.GetString("storage.database.host"),
				Port:       conf.GetInt("storage.database.port"),
				User:       conf.GetString("storage.database.user"),
				Password:   conf.GetString("storage.database.password"),
				Name:       conf.GetString("storage.database.name"),
				DisableTLS: conf.GetBool("storage.database.disableTLS"),
			},
		},
		Roster: RosterConfig{
			Delimiter: conf.GetString("roster.delimiter"),
		},
	}
}
