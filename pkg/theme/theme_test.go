package theme_test

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"
	"github.com/roffe/speedometer/pkg/colors"
	"github.com/roffe/speedometer/pkg/theme"
	"github.com/stretchr/testify/assert"
)

func TestColors(t *testing.T) {
	accent := color.RGBA{0x12, 0x34, 0x56, 0xff}
	tests := []struct {
		name  string
		theme theme.SpeedoTheme
		color fyne.ThemeColorName
		want  color.Color
	}{
		{name: "background", color: fynetheme.ColorNameBackground, want: colors.Background},
		{name: "default accent", color: fynetheme.ColorNamePrimary, want: colors.Readout},
		{name: "custom accent", theme: theme.SpeedoTheme{Accent: accent}, color: fynetheme.ColorNamePrimary, want: accent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.theme.Color(tt.color, fynetheme.VariantLight))
		})
	}
	assert.Zero(t, theme.SpeedoTheme{}.Size(fynetheme.SizeNameSeparatorThickness))
}
