package tray

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawIconIsPNG(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(drawIcon()))
	require.NoError(t, err)
	assert.Equal(t, iconSize, img.Bounds().Dx())
	assert.Equal(t, iconSize, img.Bounds().Dy())
}

func TestWrapICO(t *testing.T) {
	pngData := drawIcon()
	ico := wrapICO(pngData)
	require.Len(t, ico, 22+len(pngData))

	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(ico[2:4]), "icon type")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(ico[4:6]), "image count")
	assert.Equal(t, uint32(len(pngData)), binary.LittleEndian.Uint32(ico[14:18]))
	assert.Equal(t, uint32(22), binary.LittleEndian.Uint32(ico[18:22]))
	assert.Equal(t, pngData, ico[22:])
}

func TestGetIconIsCached(t *testing.T) {
	assert.Equal(t, GetIcon(), GetIcon())
	assert.NotEmpty(t, GetIcon())
}
