// Package migration applies registered schema migrations in batches and
// records them in the schema_migrations table.
//
//	func init() {
//	    migration.Register("20260101000000_create_users_table", createUsersTable{})
//	}
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/pkg/logger"
)

// Migration changes the schema one step forward or back.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "schema_migrations" }

var registry = map[string]Migration{}

// Register adds a migration. Names are timestamp-prefixed and run in
// lexical order; registering a name twice panics.
func Register(name string, m Migration) {
	if _, dup := registry[name]; dup {
		panic("migration: duplicate " + name)
	}
	registry[name] = m
}

func names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Runner applies and tracks migrations against one database.
type Runner struct {
	db  *gorm.DB
	out io.Writer
}

// New returns a runner that reports progress to out (nil discards it).
func New(db *gorm.DB, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{db: db, out: out}
}

// Run applies every pending migration as one new batch. Each migration and
// its record commit together, so a failure leaves earlier steps applied and
// the failing one absent from the table.
func (r *Runner) Run(ctx context.Context) error {
	db, ran, err := r.prepare(ctx)
	if err != nil {
		return err
	}

	var pending []string
	for _, name := range names() {
		if _, ok := ran[name]; !ok {
			pending = append(pending, name)
		}
	}
	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return nil
	}

	batch := 1
	for _, rec := range ran {
		if rec.Batch >= batch {
			batch = rec.Batch + 1
		}
	}

	for _, name := range pending {
		logger.Info("migration: running", "name", name, "batch", batch)
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := registry[name].Up(tx); err != nil {
				return fmt.Errorf("%s up: %w", name, err)
			}
			return tx.Create(&record{Name: name, Batch: batch}).Error
		})
		if err != nil {
			return fmt.Errorf("migration: %w", err)
		}
		fmt.Fprintf(r.out, "Migrated: %s\n", name)
	}
	return nil
}

// Rollback reverses the most recent batch, newest migration first.
func (r *Runner) Rollback(ctx context.Context) error {
	db, _, err := r.prepare(ctx)
	if err != nil {
		return err
	}

	var last sql.NullInt64
	if err := db.Model(&record{}).Select("MAX(batch)").Row().Scan(&last); err != nil {
		return fmt.Errorf("migration: last batch: %w", err)
	}
	if !last.Valid {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return nil
	}

	var records []record
	if err := db.Where("batch = ?", last.Int64).Order("id desc").Find(&records).Error; err != nil {
		return fmt.Errorf("migration: load batch %d: %w", last.Int64, err)
	}
	for _, rec := range records {
		m, ok := registry[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}
		logger.Info("migration: rolling back", "name", rec.Name, "batch", rec.Batch)
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return fmt.Errorf("%s down: %w", rec.Name, err)
			}
			return tx.Delete(&record{}, rec.ID).Error
		})
		if err != nil {
			return fmt.Errorf("migration: %w", err)
		}
		fmt.Fprintf(r.out, "Rolled back: %s\n", rec.Name)
	}
	return nil
}

// Status prints every registered migration with its batch, or Pending.
func (r *Runner) Status(ctx context.Context) error {
	_, ran, err := r.prepare(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "MIGRATION\tSTATUS\tBATCH")
	for _, name := range names() {
		if rec, ok := ran[name]; ok {
			fmt.Fprintf(w, "%s\tRan\t%d\n", name, rec.Batch)
		} else {
			fmt.Fprintf(w, "%s\tPending\t-\n", name)
		}
	}
	return w.Flush()
}

// prepare creates the tracking table if needed and loads what has run.
func (r *Runner) prepare(ctx context.Context) (*gorm.DB, map[string]record, error) {
	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, nil, fmt.Errorf("migration: ensure table: %w", err)
	}
	var rows []record
	if err := db.Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("migration: load history: %w", err)
	}
	ran := make(map[string]record, len(rows))
	for _, rec := range rows {
		ran[rec.Name] = rec
	}
	return db, ran, nil
}
