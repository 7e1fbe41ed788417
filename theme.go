package stagecraft

import (
	"github.com/pkg/errors"
)

// Theme is a named colour scheme.
type Theme string

const (
	ThemePastel  Theme = "pastel"
	ThemeDracula Theme = "dracula"
)

// DefaultTheme is used when nothing is stored.
const DefaultTheme = ThemeDracula

// ThemeKey is the store key holding the theme name.
const ThemeKey = "stagecraftTheme"

// ThemeAttribute is the attribute ApplyTheme sets.
const ThemeAttribute = "data-theme"

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemePastel, ThemeDracula:
		return Theme(s), nil
	}
	return "", errors.Wrapf(ErrUnknownTheme, "%q", s)
}

// ThemePalette holds the colours a theme implies for the renderer and
// overlays.
type ThemePalette struct {
	Background Color
	Foreground Color
}

// Palette returns the colours of t. Unknown themes get the default palette.
func Palette(t Theme) ThemePalette {
	if t == ThemePastel {
		return ThemePalette{Background: ColorHex(0xf4eefc), Foreground: ColorHex(0x4b4563)}
	}
	return ThemePalette{Background: ColorHex(0x282a36), Foreground: ColorHex(0xf8f8f2)}
}

// LoadTheme reads the stored theme. When none is stored, or the stored value
// is not a known theme, DefaultTheme is written back and returned.
func LoadTheme(store KVStore) (Theme, error) {
	v, ok, err := store.Get(ThemeKey)
	if err != nil {
		return "", errors.Wrap(err, "load theme")
	}
	if ok {
		if t, err := ParseTheme(v); err == nil {
			return t, nil
		}
		debugf("stored theme %q is unknown, resetting to %s", v, DefaultTheme)
	}
	if err := SaveTheme(store, DefaultTheme); err != nil {
		return "", err
	}
	return DefaultTheme, nil
}

// SaveTheme stores t.
func SaveTheme(store KVStore, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	return errors.Wrap(store.Set(ThemeKey, string(t)), "save theme")
}

// AttributeSetter receives the applied theme. *Loop implements it.
type AttributeSetter interface {
	SetAttribute(name, value string)
}

// ApplyTheme sets the theme attribute on target.
func ApplyTheme(target AttributeSetter, t Theme) {
	target.SetAttribute(ThemeAttribute, string(t))
}

// ThemeSwitch is a checkbox selecting pastel (checked) or dracula. It
// implements Toggle so a Panel key can flip it.
type ThemeSwitch struct {
	Store  KVStore
	Target AttributeSetter

	Checked bool
}

// Init loads the stored theme, applies it and syncs Checked.
func (s *ThemeSwitch) Init() error {
	t, err := LoadTheme(s.Store)
	if err != nil {
		return err
	}
	if s.Target != nil {
		ApplyTheme(s.Target, t)
	}
	s.Checked = t == ThemePastel
	return nil
}

// SetChecked persists and applies pastel when checked, dracula otherwise.
func (s *ThemeSwitch) SetChecked(checked bool) error {
	t := ThemeDracula
	if checked {
		t = ThemePastel
	}
	if err := SaveTheme(s.Store, t); err != nil {
		return err
	}
	s.Checked = checked
	if s.Target != nil {
		ApplyTheme(s.Target, t)
	}
	return nil
}

// Theme returns the theme selected by Checked.
func (s *ThemeSwitch) Theme() Theme {
	if s.Checked {
		return ThemePastel
	}
	return ThemeDracula
}

// Visible reports Checked.
func (s *ThemeSwitch) Visible() bool {
	return s.Checked
}

// SetVisible calls SetChecked. A store error is logged in debug mode.
func (s *ThemeSwitch) SetVisible(v bool) {
	if err := s.SetChecked(v); err != nil {
		debugf("theme switch: %v", err)
	}
}
