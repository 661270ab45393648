package board

import (
	"image"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Baselines of the two text rows on a 128x64 panel.
const (
	row1Y = 24
	row2Y = 48
)

// OLED renders the two status lines on a monochrome display.
type OLED struct {
	dev display.Drawer
}

func NewOLED(dev display.Drawer) *OLED {
	return &OLED{dev: dev}
}

func (o *OLED) Show(line1, line2 string) {
	img := image1bit.NewVerticalLSB(o.dev.Bounds())

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	drawer.Dot = fixed.P(0, row1Y)
	drawer.DrawString(line1)

	drawer.Dot = fixed.P(0, row2Y)
	drawer.DrawString(line2)

	if err := o.dev.Draw(o.dev.Bounds(), img, image.Point{}); err != nil {
		log.Printf("board: display update failed: %v", err)
	}
}
