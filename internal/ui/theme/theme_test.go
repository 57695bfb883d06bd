package theme

import (
	"image/color"
	"testing"

	"github.com/adedotun/medprep/internal/store"
)

func TestApplySwitchesPalette(t *testing.T) {
	t.Cleanup(func() { Apply(store.ThemeDark) })

	Apply(store.ThemeLight)
	if Primary != lightPalette.Primary {
		t.Errorf("light Primary = %v, want %v", Primary, lightPalette.Primary)
	}
	if BgDark != lightPalette.BgDark {
		t.Errorf("light BgDark = %v, want %v", BgDark, lightPalette.BgDark)
	}

	Apply(store.ThemeDark)
	if Primary != darkPalette.Primary {
		t.Errorf("dark Primary = %v, want %v", Primary, darkPalette.Primary)
	}
}

func TestApplySystemAndUnknownFollowDark(t *testing.T) {
	t.Cleanup(func() { Apply(store.ThemeDark) })

	for _, name := range []string{store.ThemeSystem, "nonsense"} {
		Apply(name)
		if Primary != darkPalette.Primary {
			t.Errorf("Apply(%q): Primary = %v, want the dark palette", name, Primary)
		}
	}
}

func TestPaletteColorsAreConcrete(t *testing.T) {
	for _, c := range []color.Color{
		Primary, Secondary, Accent, Success, Error,
		Text, TextDim, BgDark, BgCard, Border,
	} {
		if c == nil {
			t.Fatal("palette color is nil")
		}
		if _, _, _, a := c.RGBA(); a == 0 {
			t.Error("palette color is fully transparent")
		}
	}
}
