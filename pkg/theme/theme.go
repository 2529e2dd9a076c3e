package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/roffe/speedometer/pkg/colors"
)

var _ fyne.Theme = (*SpeedoTheme)(nil)

// SpeedoTheme is the dark default theme on a black background with the
// accent used for primary elements such as the slider.
type SpeedoTheme struct {
	Accent color.Color
}

func (m SpeedoTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return colors.Background
	case theme.ColorNamePrimary:
		if m.Accent != nil {
			return m.Accent
		}
		return colors.Readout
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (m SpeedoTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m SpeedoTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m SpeedoTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameSeparatorThickness {
		return 0
	}
	return theme.DefaultTheme().Size(name)
}
