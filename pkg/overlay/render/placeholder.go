package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PanelError reports which panel failed to render.
type PanelError struct {
	Index int
	Title string
	Err   error
}

func (e *PanelError) Error() string {
	return fmt.Sprintf("render panel %d (%q): %v", e.Index+1, e.Title, e.Err)
}

func (e *PanelError) Unwrap() error {
	return e.Err
}

var frameColor = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}

// placeholder draws a framed, titled panel for a pairing with no points.
func placeholder(w, h int, title string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// Plot-area frame inside the same padding the charts use
	frame := image.Rect(40, 40, w-16, h-16)
	for x := frame.Min.X; x < frame.Max.X; x++ {
		img.Set(x, frame.Min.Y, frameColor)
		img.Set(x, frame.Max.Y-1, frameColor)
	}
	for y := frame.Min.Y; y < frame.Max.Y; y++ {
		img.Set(frame.Min.X, y, frameColor)
		img.Set(frame.Max.X-1, y, frameColor)
	}

	face := basicfont.Face7x13
	drawCentered(img, face, title, w/2, 26, color.Black)
	drawCentered(img, face, "no numeric data", w/2, frame.Min.Y+frame.Dy()/2, color.Gray{Y: 0x80})
	return img
}

func drawCentered(dst draw.Image, face font.Face, text string, cx, baseline int, c color.Color) {
	if text == "" {
		return
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	tw := d.MeasureString(text).Ceil()
	d.Dot = fixed.Point26_6{X: fixed.I(cx - tw/2), Y: fixed.I(baseline)}
	d.DrawString(text)
}
