package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

func main() {
	var storagePath, migrationsPath string
	var down bool

	flag.StringVar(&storagePath, "storage-path", "", "postgres connection string")
	flag.StringVar(&migrationsPath, "migrations-path", "", "path to migrations")
	flag.BoolVar(&down, "down", false, "roll back every migration")
	flag.Parse()

	log := logger.SetupLogger(os.Getenv("ENV"))

	if storagePath == "" {
		storagePath = os.Getenv("POSTGRES_DSN")
		if storagePath == "" {
			panic("empty storage path")
		}
	}
	if migrationsPath == "" {
		migrationsPath = os.Getenv("MIGRATIONS_PATH")
		if migrationsPath == "" {
			migrationsPath = "./migrations"
		}
	}

	m, err := migrate.New("file://"+migrationsPath, databaseURL(storagePath))
	if err != nil {
		panic(err)
	}
	defer m.Close()

	if down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
			return
		}
		panic(err)
	}

	version, dirty, _ := m.Version()
	log.Info("migrations applied", logger.Int("version", int(version)), logger.Bool("dirty", dirty), logger.Bool("down", down))
}

func databaseURL(storagePath string) string {
	if strings.HasPrefix(storagePath, "postgres://") || strings.HasPrefix(storagePath, "postgresql://") {
		return storagePath
	}
	return fmt.Sprintf("postgres://%s", storagePath)
}
