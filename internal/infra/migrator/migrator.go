package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// ErrMigration возвращается при ошибке применения миграций
var ErrMigration = errors.New("migrator: failed to apply migrations")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator обёртка над goose
type Migrator struct {
	db     *sql.DB
	fsys   fs.FS
	dir    string
	logger Logger
}

// NewMigrator создаёт мигратор поверх встроенной файловой системы с миграциями
func NewMigrator(db *sql.DB, fsys fs.FS, dir string, logger Logger) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("%w: set goose dialect: %w", ErrMigration, err)
	}
	if dir == "" {
		dir = "."
	}

	return &Migrator{
		db:     db,
		fsys:   fsys,
		dir:    dir,
		logger: logger,
	}, nil
}

// Run применяет все pending миграции
func (m *Migrator) Run(ctx context.Context) error {
	m.logger.Info("Applying database migrations...")

	goose.SetBaseFS(m.fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.UpContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("%w: %w", ErrMigration, err)
	}

	version, err := m.Version(ctx)
	if err != nil {
		return err
	}

	m.logger.Info("Migrations applied successfully, version=%d", version)
	return nil
}

// Version показывает текущую версию схемы
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("%w: get version: %w", ErrMigration, err)
	}
	return version, nil
}
