// Package prefs stores small device-local preferences in the metadata
// table. Preferences never sync; each device keeps its own.
package prefs

import (
	"context"
	"fmt"

	"github.com/Anandrajbgp/Noteflow/internal/client/repositories/kv"
	"github.com/Anandrajbgp/Noteflow/internal/common"
)

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	}
	return false
}

const themeKey = "pref:theme"

type Store struct {
	kv kv.Repository
}

func NewStore(kv kv.Repository) *Store {
	return &Store{kv: kv}
}

// Theme returns the stored theme, ThemeSystem when unset or unrecognized.
func (s *Store) Theme(ctx context.Context) (Theme, error) {
	raw, err := s.kv.Get(ctx, themeKey)
	if err != nil {
		return ThemeSystem, fmt.Errorf("reading theme: %w", err)
	}
	t := Theme(raw)
	if !t.Valid() {
		return ThemeSystem, nil
	}
	return t, nil
}

func (s *Store) SetTheme(ctx context.Context, t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("%w: unknown theme %q", common.ErrValidation, t)
	}
	return s.kv.Set(ctx, themeKey, []byte(t))
}
