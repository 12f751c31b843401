// Package qrcode renders project payloads as PNG data URLs.
package qrcode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const (
	DefaultSize = 512
	dataURLPNG  = "data:image/png;base64,"
)

var ErrInvalidColor = errors.New("qrcode: invalid hex colour")

// Render encodes content at medium error correction, scales it to a
// size×size square and paints it in fg on bg.
func Render(content, fg, bg string, size int) (string, error) {
	if content == "" {
		return "", errors.New("qrcode: empty content")
	}
	if size <= 0 {
		size = DefaultSize
	}

	fgc, err := ParseHexColor(fg)
	if err != nil {
		return "", err
	}
	bgc, err := ParseHexColor(bg)
	if err != nil {
		return "", err
	}

	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return "", fmt.Errorf("qrcode: encode: %w", err)
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return "", fmt.Errorf("qrcode: scale: %w", err)
	}

	b := scaled.Bounds()
	img := image.NewPaletted(b, color.Palette{bgc, fgc})
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := scaled.At(x, y).RGBA(); r < 0x8000 {
				img.SetColorIndex(x, y, 1)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("qrcode: png: %w", err)
	}
	return dataURLPNG + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ParseHexColor accepts #rgb and #rrggbb, with or without the hash.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Decode splits a data URL produced by Render back into PNG bytes.
func Decode(dataURL string) (image.Image, error) {
	raw, ok := strings.CutPrefix(dataURL, dataURLPNG)
	if !ok {
		return nil, errors.New("qrcode: not a png data url")
	}
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(b))
}
