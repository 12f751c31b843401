package qrcode_test

import (
	"image/color"
	"strings"
	"testing"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/qrcode"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	c, err := qrcode.ParseHexColor("#ff8000")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, c)

	c, err = qrcode.ParseHexColor("0af")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{R: 0x00, G: 0xaa, B: 0xff, A: 0xff}, c)

	for _, bad := range []string{"", "#12", "#gggggg", "#1234567"} {
		_, err := qrcode.ParseHexColor(bad)
		require.ErrorIs(t, err, qrcode.ErrInvalidColor, bad)
	}
}

func TestRenderUsesColours(t *testing.T) {
	url, err := qrcode.Render("http://localhost:3001/track/01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "#ff0000", "#00ff00", 128)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	img, err := qrcode.Decode(url)
	require.NoError(t, err)
	require.Equal(t, 128, img.Bounds().Dx())

	seen := map[color.RGBA]bool{}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			seen[color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)] = true
		}
	}
	require.True(t, seen[color.RGBA{R: 0xff, A: 0xff}])
	require.True(t, seen[color.RGBA{G: 0xff, A: 0xff}])
	require.Len(t, seen, 2)
}

func TestRenderRejectsBadInput(t *testing.T) {
	_, err := qrcode.Render("", "#000", "#fff", 0)
	require.Error(t, err)

	_, err = qrcode.Render("x", "black", "#fff", 0)
	require.ErrorIs(t, err, qrcode.ErrInvalidColor)
}
