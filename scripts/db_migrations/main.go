package main

import (
	"database/sql"
	"errors"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	server_config "github.com/claritybank/badge-server/internal/config"
)

func main() {
	app := &cli.App{
		Name:  "db_migrations",
		Usage: "apply the badge-server schema migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "source",
				Value: "file://migrations",
				Usage: "migration source URL",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "apply every pending migration",
				Action: up,
			},
			{
				Name:   "version",
				Usage:  "print the current schema version",
				Action: version,
			},
		},
		DefaultCommand: "up",
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("db_migrations")
	}
}

func newMigrate(c *cli.Context) (*migrate.Migrate, error) {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, err
	}

	return migrate.NewWithDatabaseInstance(c.String("source"), "postgres", driver)
}

func currentVersion(m *migrate.Migrate) (uint, bool, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func up(c *cli.Context) error {
	m, err := newMigrate(c)
	if err != nil {
		return err
	}
	defer m.Close()

	preMigrationVersion, _, err := currentVersion(m)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	postMigrationVersion, _, err := currentVersion(m)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": postMigrationVersion,
	}).Info("Migration status")
	return nil
}

func version(c *cli.Context) error {
	m, err := newMigrate(c)
	if err != nil {
		return err
	}
	defer m.Close()

	v, dirty, err := currentVersion(m)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"version": v,
		"dirty":   dirty,
	}).Info("Migration version")
	return nil
}
