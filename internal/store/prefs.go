package store

const (
	keyIsMuted = "isMuted"
	keyTheme   = "theme"
)

// Theme names.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// PrefsRepo manages user preferences: sound mute and color theme.
type PrefsRepo struct {
	store *Store
}

// NewPrefsRepo returns a PrefsRepo backed by the store.
func NewPrefsRepo(s *Store) *PrefsRepo {
	return &PrefsRepo{store: s}
}

// Muted reports whether sound cues are muted. Defaults to false.
func (r *PrefsRepo) Muted() bool {
	var muted bool
	r.store.Get(keyIsMuted, &muted)
	return muted
}

// SetMuted writes the mute flag through.
func (r *PrefsRepo) SetMuted(muted bool) error {
	return r.store.Set(keyIsMuted, muted)
}

// Theme returns the stored theme name. Defaults to system.
func (r *PrefsRepo) Theme() string {
	theme := ThemeSystem
	r.store.Get(keyTheme, &theme)
	switch theme {
	case ThemeLight, ThemeDark, ThemeSystem:
		return theme
	default:
		return ThemeSystem
	}
}

// SetTheme writes the theme name through.
func (r *PrefsRepo) SetTheme(theme string) error {
	return r.store.Set(keyTheme, theme)
}
