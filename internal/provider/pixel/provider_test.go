package pixel

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeFrame(t *testing.T, fill func(x, y int) color.RGBA) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			img.SetRGBA(x, y, fill(x, y))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

var (
	skinTone = color.RGBA{R: 210, G: 150, B: 120, A: 255}
	darkGray = color.RGBA{R: 10, G: 10, B: 10, A: 255}
	blue     = color.RGBA{R: 40, G: 80, B: 200, A: 255}
)

func TestDetectFaces_FacePresent(t *testing.T) {
	frame := encodeFrame(t, func(x, y int) color.RGBA { return skinTone })

	p := New(DefaultConfig())
	faces, err := p.DetectFaces(context.Background(), frame)

	require.NoError(t, err)
	require.Len(t, faces, 1)
	assert.True(t, faces[0].Centered)
}

func TestDetectFaces_DarkFrame(t *testing.T) {
	frame := encodeFrame(t, func(x, y int) color.RGBA { return darkGray })

	p := New(DefaultConfig())
	faces, err := p.DetectFaces(context.Background(), frame)

	require.NoError(t, err)
	assert.Empty(t, faces)
}

func TestDetectFaces_NoSkinTone(t *testing.T) {
	frame := encodeFrame(t, func(x, y int) color.RGBA { return blue })

	p := New(DefaultConfig())
	faces, err := p.DetectFaces(context.Background(), frame)

	require.NoError(t, err)
	assert.Empty(t, faces)
}

func TestDetectFaces_OffCenterGaze(t *testing.T) {
	// Skin everywhere except the 100x100 center region: face present but
	// not facing the screen.
	frame := encodeFrame(t, func(x, y int) color.RGBA {
		if x >= 110 && x < 210 && y >= 70 && y < 170 {
			return blue
		}
		return skinTone
	})

	p := New(DefaultConfig())
	faces, err := p.DetectFaces(context.Background(), frame)

	require.NoError(t, err)
	require.Len(t, faces, 1)
	assert.False(t, faces[0].Centered)
}

func TestDetectFaces_UndecodableFrame(t *testing.T) {
	p := New(DefaultConfig())
	_, err := p.DetectFaces(context.Background(), []byte("not an image"))
	assert.Error(t, err)
}

func TestDetectObjects_NoCapability(t *testing.T) {
	p := New(DefaultConfig())
	objects, err := p.DetectObjects(context.Background(), []byte("anything"))

	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestWarm_NoOp(t *testing.T) {
	p := New(DefaultConfig())
	assert.NoError(t, p.Warm(context.Background()))
}
