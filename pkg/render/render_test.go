package render_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/roffe/speedometer/pkg/gaugemath"
	"github.com/roffe/speedometer/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gauge(t *testing.T) gaugemath.Config {
	t.Helper()
	cfg, err := gaugemath.NewConfig(225, 100, 10)
	require.NoError(t, err)
	return cfg
}

func rgba(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestRender(t *testing.T) {
	img, err := render.Render(gauge(t), 25, render.Options{})
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 300, 300), img.Bounds())

	hub := rgba(img, 150, 150)
	assert.Greater(t, hub.R, uint8(200), "hub is red")
	assert.Less(t, hub.G, uint8(60))

	corner := rgba(img, 2, 2)
	assert.Less(t, corner.R, uint8(20), "background is black")
	assert.Less(t, corner.G, uint8(20))

	// first major tick sits lower left and is green, the last lower right and red
	x, y := gaugemath.PointAt(150, 150, 140, -22.5)
	first := rgba(img, int(x), int(y))
	assert.Greater(t, first.G, uint8(200))
	assert.Less(t, first.R, uint8(60))

	x, y = gaugemath.PointAt(150, 150, 140, 202.5)
	last := rgba(img, int(x), int(y))
	assert.Greater(t, last.R, uint8(200))
	assert.Less(t, last.G, uint8(60))
}

func TestRenderScales(t *testing.T) {
	img, err := render.Render(gauge(t), 100, render.Options{Width: 600, Height: 400, HideReadout: true})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 600, 400), img.Bounds())
	hub := rgba(img, 300, 200)
	assert.Greater(t, hub.R, uint8(200))
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Encode(&buf, gauge(t), 50, render.Options{Width: 120, Height: 120}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gauge.png")
	require.NoError(t, render.SavePNG(path, gauge(t), 75, render.Options{}))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, fi.Size())
}
