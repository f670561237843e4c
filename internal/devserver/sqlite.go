package devserver

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jask/petlist/internal/pets"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// OpenSQLite opens the pets database with foreign keys on and a busy timeout.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	return db, nil
}

// RunMigrations applies all embedded up migrations to the database at path.
func RunMigrations(path string) error {
	db, err := OpenSQLite(path)
	if err != nil {
		return err
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = db.Close()
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		_ = db.Close()
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore migrates the database at path and returns a store backed
// by it along with the handle to close on shutdown.
func NewSQLiteStore(path string) (Store, *sql.DB, error) {
	if err := RunMigrations(path); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	return &sqliteStore{db: db}, db, nil
}

func (s *sqliteStore) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, type, breed, age FROM pets ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []pets.Pet{}
	for rows.Next() {
		var p pets.Pet
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Breed, &p.Age); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Create(ctx context.Context, in pets.PetToAdd) (pets.Pet, error) {
	p := pets.Pet{ID: uuid.NewString(), Name: in.Name, Type: in.Type, Breed: in.Breed, Age: in.Age}
	now := now()
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO pets(id, name, type, breed, age, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`, p.ID, p.Name, p.Type, p.Breed, p.Age, now, now)
	if err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

func (s *sqliteStore) Update(ctx context.Context, in pets.PetToEdit) (pets.Pet, error) {
	res, err := s.db.ExecContext(ctx, `
	UPDATE pets SET name = ?, type = ?, breed = ?, age = ?, updated_at = ?
	WHERE id = ?`, in.Name, in.Type, in.Breed, in.Age, now(), in.ID)
	if err != nil {
		return pets.Pet{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return pets.Pet{}, ErrNotFound
	}
	return s.get(ctx, in.ID)
}

func (s *sqliteStore) Delete(ctx context.Context, id string) (pets.Pet, error) {
	var deleted pets.Pet
	err := withTx(s.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT id, name, type, breed, age FROM pets WHERE id = ?`, id)
		if err := row.Scan(&deleted.ID, &deleted.Name, &deleted.Type, &deleted.Breed, &deleted.Age); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return pets.Pet{}, err
	}
	return deleted, nil
}

func (s *sqliteStore) get(ctx context.Context, id string) (pets.Pet, error) {
	var p pets.Pet
	err := s.db.QueryRowContext(ctx, `SELECT id, name, type, breed, age FROM pets WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Type, &p.Breed, &p.Age)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, ErrNotFound
	}
	return p, err
}

// withTx commits fn's writes, or rolls them all back if fn fails.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// now is the row timestamp, in whole UTC seconds. List falls back to rowid
// for pets created within the same second.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
