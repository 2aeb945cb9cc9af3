package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coderhema/Spenders/core"
	"github.com/coderhema/Spenders/internal/log"
	"github.com/coderhema/Spenders/storage"
)

// Setting names shared with the UI collaborators.
const (
	SettingThemeIndex          = "themeIndex"
	SettingSoundEnabled        = "soundEnabled"
	SettingCurrency            = "currency"
	SettingLastCalculationDate = "lastCalculationDate"
	SettingStartDate           = "startDate"
	SettingUserCountry         = "userCountry"
)

// Defaults served when a setting is absent or unreadable.
const (
	DefaultThemeIndex   = 0
	DefaultSoundEnabled = true
	DefaultCurrency     = "$"
)

// SettingsService puts typed accessors in front of the untyped settings
// collection, one pair per known key. Reads never fail: an absent or
// unreadable value yields the default so the UI always has something to
// render. Writes propagate their errors to the caller.
type SettingsService struct {
	settings *storage.SettingRepository
	log      *log.Logger
}

func NewSettingsService(settings *storage.SettingRepository, logger *log.Logger) *SettingsService {
	return &SettingsService{
		settings: settings,
		log:      logger.WithComponent(log.ComponentSettings),
	}
}

// get unmarshals the setting into out and reports whether out now holds a
// stored value. Absence and failures are logged here so callers can stay on
// their default path without touching the error.
func (s *SettingsService) get(ctx context.Context, name string, out any) bool {
	raw, err := s.settings.Get(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		s.log.DebugContext(ctx, "setting absent, serving default", log.FieldSetting, name)
		return false
	}
	if err != nil {
		s.log.ErrorContext(ctx, "setting read failed, serving default",
			log.FieldSetting, name, log.FieldError, err)
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.log.ErrorContext(ctx, "setting malformed, serving default",
			log.FieldSetting, name, log.FieldError, err)
		return false
	}
	return true
}

func (s *SettingsService) save(ctx context.Context, name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %q: %w", name, err)
	}
	return s.settings.Save(ctx, name, raw)
}

// ThemeIndex returns the persisted theme slot.
func (s *SettingsService) ThemeIndex(ctx context.Context) int {
	var v int
	if !s.get(ctx, SettingThemeIndex, &v) {
		return DefaultThemeIndex
	}
	return v
}

func (s *SettingsService) SetThemeIndex(ctx context.Context, index int) error {
	return s.save(ctx, SettingThemeIndex, index)
}

// SoundEnabled reports whether UI sounds are on. Sounds default to on.
func (s *SettingsService) SoundEnabled(ctx context.Context) bool {
	var v bool
	if !s.get(ctx, SettingSoundEnabled, &v) {
		return DefaultSoundEnabled
	}
	return v
}

func (s *SettingsService) SetSoundEnabled(ctx context.Context, enabled bool) error {
	return s.save(ctx, SettingSoundEnabled, enabled)
}

// Currency returns the display currency symbol.
func (s *SettingsService) Currency(ctx context.Context) string {
	var v string
	if !s.get(ctx, SettingCurrency, &v) {
		return DefaultCurrency
	}
	return v
}

func (s *SettingsService) SetCurrency(ctx context.Context, symbol string) error {
	return s.save(ctx, SettingCurrency, symbol)
}

// LastCalculationDate returns when the budget recalculation last ran, or the
// zero time when it never has.
func (s *SettingsService) LastCalculationDate(ctx context.Context) time.Time {
	return s.getTime(ctx, SettingLastCalculationDate)
}

func (s *SettingsService) SetLastCalculationDate(ctx context.Context, t time.Time) error {
	return s.save(ctx, SettingLastCalculationDate, t.Format(time.RFC3339))
}

// StartDate returns the recorded first-use date, or the zero time when it
// was never stamped.
func (s *SettingsService) StartDate(ctx context.Context) time.Time {
	return s.getTime(ctx, SettingStartDate)
}

func (s *SettingsService) SetStartDate(ctx context.Context, t time.Time) error {
	return s.save(ctx, SettingStartDate, t.Format(time.RFC3339))
}

// EnsureStartDate returns the recorded first-use date, stamping it with now
// on the very first call. Unlike the plain readers this can fail: a wrongly
// stamped start date would skew every since-first-use statistic.
func (s *SettingsService) EnsureStartDate(ctx context.Context, now time.Time) (time.Time, error) {
	raw, err := s.settings.Get(ctx, SettingStartDate)
	if errors.Is(err, storage.ErrNotFound) {
		if err := s.SetStartDate(ctx, now); err != nil {
			return time.Time{}, err
		}
		s.log.InfoContext(ctx, "start date stamped", log.FieldSetting, SettingStartDate)
		return now, nil
	}
	if err != nil {
		return time.Time{}, err
	}

	var iso string
	if err := json.Unmarshal(raw, &iso); err != nil {
		return time.Time{}, fmt.Errorf("decode %s: %w", SettingStartDate, err)
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %w", SettingStartDate, err)
	}
	return t, nil
}

// UserCountry returns the cached locale lookup result, zero when absent.
func (s *SettingsService) UserCountry(ctx context.Context) core.Country {
	var v core.Country
	if !s.get(ctx, SettingUserCountry, &v) {
		return core.Country{}
	}
	return v
}

func (s *SettingsService) SetUserCountry(ctx context.Context, country core.Country) error {
	return s.save(ctx, SettingUserCountry, country)
}

func (s *SettingsService) getTime(ctx context.Context, name string) time.Time {
	var iso string
	if !s.get(ctx, name, &iso) {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		s.log.ErrorContext(ctx, "setting malformed, serving default",
			log.FieldSetting, name, log.FieldError, err)
		return time.Time{}
	}
	return t
}
