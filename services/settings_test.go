package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/coderhema/Spenders/core"
)

func TestSettingsDefaultsWhenAbsent(t *testing.T) {
	env := setupServices(t)

	require.Equal(t, DefaultThemeIndex, env.settings.ThemeIndex(env.ctx))
	require.Equal(t, DefaultSoundEnabled, env.settings.SoundEnabled(env.ctx))
	require.Equal(t, DefaultCurrency, env.settings.Currency(env.ctx))
	require.True(t, env.settings.LastCalculationDate(env.ctx).IsZero())
	require.True(t, env.settings.StartDate(env.ctx).IsZero())
	require.Equal(t, core.Country{}, env.settings.UserCountry(env.ctx))
}

func TestSettingsRoundTrips(t *testing.T) {
	env := setupServices(t)

	t.Run("theme index", func(t *testing.T) {
		require.NoError(t, env.settings.SetThemeIndex(env.ctx, 3))
		require.Equal(t, 3, env.settings.ThemeIndex(env.ctx))
	})

	t.Run("sound toggle survives being switched off", func(t *testing.T) {
		require.NoError(t, env.settings.SetSoundEnabled(env.ctx, false))
		require.False(t, env.settings.SoundEnabled(env.ctx), "stored false must beat the true default")
	})

	t.Run("currency symbol", func(t *testing.T) {
		require.NoError(t, env.settings.SetCurrency(env.ctx, "€"))
		require.Equal(t, "€", env.settings.Currency(env.ctx))
	})

	t.Run("last calculation date", func(t *testing.T) {
		at := time.Date(2025, 4, 9, 8, 30, 0, 0, time.UTC)
		require.NoError(t, env.settings.SetLastCalculationDate(env.ctx, at))
		require.True(t, env.settings.LastCalculationDate(env.ctx).Equal(at))
	})

	t.Run("user country", func(t *testing.T) {
		country := core.Country{Code: "NG", Name: "Nigeria"}
		require.NoError(t, env.settings.SetUserCountry(env.ctx, country))
		require.Equal(t, country, env.settings.UserCountry(env.ctx))
	})

	t.Run("saving twice overwrites", func(t *testing.T) {
		require.NoError(t, env.settings.SetThemeIndex(env.ctx, 5))
		require.Equal(t, 5, env.settings.ThemeIndex(env.ctx))
	})
}

func TestEnsureStartDateStampsOnlyOnce(t *testing.T) {
	env := setupServices(t)
	first := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	got, err := env.settings.EnsureStartDate(env.ctx, first)
	require.NoError(t, err)
	require.True(t, got.Equal(first))

	// A later call must keep the original stamp.
	later := first.AddDate(0, 2, 0)
	got, err = env.settings.EnsureStartDate(env.ctx, later)
	require.NoError(t, err)
	require.True(t, got.Equal(first), "start date was restamped on second use")

	require.True(t, env.settings.StartDate(env.ctx).Equal(first))
}

func TestSettingsReadsDegradeToDefaults(t *testing.T) {
	env := setupServices(t)
	require.NoError(t, env.settings.SetThemeIndex(env.ctx, 7))
	env.closeStore(t)

	require.Equal(t, DefaultThemeIndex, env.settings.ThemeIndex(env.ctx))
	require.Equal(t, DefaultSoundEnabled, env.settings.SoundEnabled(env.ctx))
	require.Equal(t, DefaultCurrency, env.settings.Currency(env.ctx))
	require.Equal(t, core.Country{}, env.settings.UserCountry(env.ctx))
}

func TestSettingsWritesPropagateFailure(t *testing.T) {
	env := setupServices(t)
	env.closeStore(t)

	require.Error(t, env.settings.SetThemeIndex(env.ctx, 1))
	_, err := env.settings.EnsureStartDate(env.ctx, time.Now())
	require.Error(t, err)
}
