package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coderhema/Spenders/internal/log"
)

// SettingRepository stores named JSON values. Each setting is written as a
// whole; saving an existing name overwrites it.
type SettingRepository struct {
	store *Store
}

func NewSettingRepository(store *Store) *SettingRepository {
	return &SettingRepository{store: store}
}

// Get returns the raw JSON stored under name, or ErrNotFound.
func (r *SettingRepository) Get(ctx context.Context, name string) (json.RawMessage, error) {
	var raw []byte
	err := r.store.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get setting %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get setting %q: %w", name, err)
	}
	return json.RawMessage(raw), nil
}

// Save upserts the value under name.
func (r *SettingRepository) Save(ctx context.Context, name string, value json.RawMessage) error {
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO settings (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		name, []byte(value))
	if err != nil {
		return fmt.Errorf("save setting %q: %w", name, err)
	}

	r.store.log.InfoContext(ctx, "setting saved", log.FieldSetting, name)
	return nil
}
