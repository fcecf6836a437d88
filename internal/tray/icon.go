package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"runtime"
	"sync"
)

const iconSize = 32

var (
	iconOnce sync.Once
	iconData []byte
)

// GetIcon returns the tray icon: ICO on Windows, PNG elsewhere.
func GetIcon() []byte {
	iconOnce.Do(func() {
		pngData := drawIcon()
		if runtime.GOOS == "windows" {
			iconData = wrapICO(pngData)
		} else {
			iconData = pngData
		}
	})
	return iconData
}

// drawIcon renders a rounded pad silhouette with two stick dots.
func drawIcon() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	body := color.NRGBA{R: 0x03, G: 0xa9, B: 0xf4, A: 0xff}
	dot := color.NRGBA{R: 0x16, G: 0x18, B: 0x1d, A: 0xff}

	for y := 8; y < 24; y++ {
		for x := 2; x < 30; x++ {
			corner := (x < 5 || x > 26) && (y < 11 || y > 20)
			if !corner {
				img.Set(x, y, body)
			}
		}
	}
	for _, c := range [][2]int{{9, 14}, {22, 17}} {
		for y := c[1] - 2; y <= c[1]+2; y++ {
			for x := c[0] - 2; x <= c[0]+2; x++ {
				img.Set(x, y, dot)
			}
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// wrapICO embeds PNG data as the single image of an ICO container.
func wrapICO(pngData []byte) []byte {
	var buf bytes.Buffer
	header := struct {
		Reserved, Type, Count uint16
	}{0, 1, 1}
	entry := struct {
		Width, Height, Colors, Reserved uint8
		Planes, BitCount                uint16
		Size, Offset                    uint32
	}{iconSize, iconSize, 0, 0, 1, 32, uint32(len(pngData)), 6 + 16}

	_ = binary.Write(&buf, binary.LittleEndian, header)
	_ = binary.Write(&buf, binary.LittleEndian, entry)
	buf.Write(pngData)
	return buf.Bytes()
}
