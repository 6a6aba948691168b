package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

const (
	pingTimeout     = 2 * time.Second
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

type PgDB struct {
	db  *sqlx.DB
	log logger.Logger
}

func NewPostgresDB(ctx context.Context, log logger.Logger, dsn string) (*PgDB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	pgDB, err := newPgDB(ctx, log, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return pgDB, nil
}

func newPgDB(ctx context.Context, log logger.Logger, db *sqlx.DB) (*PgDB, error) {
	pgDB := &PgDB{
		db:  db,
		log: log,
	}

	if err := pgDB.pingContext(ctx); err != nil {
		return nil, err
	}

	return pgDB, nil
}

func (pg *PgDB) GetDB() *sqlx.DB {
	return pg.db
}

func (pg *PgDB) Close() error {
	return pg.db.Close()
}

func (pg *PgDB) pingContext(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := "up"
	if err := pg.db.PingContext(ctx); err != nil {
		status = "down"
		pg.log.Error("database status", logger.String("status", status), logger.Err(err))
		return err
	}
	pg.log.Info("database status", logger.String("status", status))

	return nil
}
