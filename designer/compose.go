package designer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	xdraw "golang.org/x/image/draw"
)

const (
	// BoxSize is the width and height in pixels of one module.
	BoxSize = 10

	// FrameWidth is the thickness in pixels of the border around the code.
	FrameWidth = 2

	// LogoRatio is the image width divided by the logo side.
	LogoRatio = 5

	// MaxLogoPixels bounds the decoded size of a logo. Compressed uploads
	// can declare far larger bitmaps than their byte size suggests.
	MaxLogoPixels = 4096 * 4096
)

var (
	// FrameColor is the light grey of the border (#E5E7EB).
	FrameColor = color.RGBA{0xe5, 0xe7, 0xeb, 0xff}

	lightColor = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// DecodeLogo decodes an uploaded logo. Only PNG and JPEG content is accepted,
// judged by the bytes rather than any file name, and the declared dimensions
// must stay within MaxLogoPixels.
func DecodeLogo(data []byte) (image.Image, error) {
	mt := mimetype.Detect(data)
	if !mt.Is("image/png") && !mt.Is("image/jpeg") {
		return nil, fmt.Errorf("%w: got %s", ErrLogoDecode, mt.String())
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoDecode, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxLogoPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrLogoDecode, cfg.Width, cfg.Height, MaxLogoPixels)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoDecode, err)
	}
	return img, nil
}

// Compose rasterizes sym in fg on white, surrounds it with the frame and
// pastes logo, if any, over the centre.
//
// The logo is forced to a square of side width/LogoRatio and copied opaquely.
// Nothing checks that the covered modules stay within the error correction
// budget, so an unusually busy logo can still make a code unreadable.
func Compose(sym *Symbol, fg color.RGBA, logo image.Image) *image.RGBA {
	fg.A = 0xff
	side := sym.Size()*BoxSize + 2*FrameWidth
	img := image.NewRGBA(image.Rect(0, 0, side, side))

	draw.Draw(img, img.Bounds(), image.NewUniform(FrameColor), image.Point{}, draw.Src)

	dark := image.NewUniform(fg)
	light := image.NewUniform(lightColor)
	for y, row := range sym.Modules {
		for x, on := range row {
			src := light
			if on {
				src = dark
			}
			x0 := FrameWidth + x*BoxSize
			y0 := FrameWidth + y*BoxSize
			draw.Draw(img, image.Rect(x0, y0, x0+BoxSize, y0+BoxSize), src, image.Point{}, draw.Src)
		}
	}

	if logo != nil {
		pasteLogo(img, logo)
	}
	return img
}

// LogoRect returns where the logo lands on an image with the given bounds.
func LogoRect(bounds image.Rectangle) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	s := w / LogoRatio
	x0 := bounds.Min.X + (w-s)/2
	y0 := bounds.Min.Y + (h-s)/2
	return image.Rect(x0, y0, x0+s, y0+s)
}

func pasteLogo(dst *image.RGBA, logo image.Image) {
	r := LogoRect(dst.Bounds())
	if r.Empty() {
		return
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), logo, logo.Bounds(), xdraw.Src, nil)

	// Alpha is dropped rather than blended.
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			c := scaled.NRGBAAt(x, y)
			dst.SetRGBA(r.Min.X+x, r.Min.Y+y, color.RGBA{c.R, c.G, c.B, 0xff})
		}
	}
}
