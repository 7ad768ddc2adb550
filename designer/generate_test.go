package designer

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func newTestGenerator() *Generator {
	return NewGenerator(DefaultJPEGQuality, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGenerateExampleURL(t *testing.T) {
	art, err := newTestGenerator().Generate(Request{
		Text:   "https://example.com",
		Color:  DefaultColor,
		Format: FormatPNG,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if art.Filename != "qrcode.png" || art.MIMEType != "image/png" {
		t.Errorf("got %s %s", art.Filename, art.MIMEType)
	}

	img, err := png.Decode(bytes.NewReader(art.Data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		t.Fatalf("image is %dx%d, want square", b.Dx(), b.Dy())
	}

	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	if got := color.RGBAModel.Convert(img.At(0, 0)); got != FrameColor {
		t.Errorf("corner = %v, want frame colour", got)
	}
	if got := color.RGBAModel.Convert(img.At(FrameWidth, FrameWidth)); got != white {
		t.Errorf("quiet zone = %v, want white", got)
	}

	// Only black, white and the frame colour: no overlay.
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y))
			if c != white && c != DefaultColor && c != FrameColor {
				t.Fatalf("unexpected colour %v at (%d,%d)", c, x, y)
			}
		}
	}

	if got := decodeQR(t, img); got != "https://example.com" {
		t.Errorf("decoded %q", got)
	}
}

func TestGenerateEmptyText(t *testing.T) {
	art, err := newTestGenerator().Generate(Request{Format: FormatPNG})
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
	if art != nil {
		t.Error("expected no artifact")
	}
}

func TestGenerateOverCapacity(t *testing.T) {
	art, err := newTestGenerator().Generate(Request{Text: strings.Repeat("z", 3000), Format: FormatPNG})
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("err = %v, want ErrCapacity", err)
	}
	if art != nil {
		t.Error("expected no artifact")
	}
}

func TestGenerateDefaultsToPNG(t *testing.T) {
	art, err := newTestGenerator().Generate(Request{Text: "default"})
	if err != nil {
		t.Fatal(err)
	}
	if art.Format != FormatPNG {
		t.Errorf("format = %s, want png", art.Format)
	}
}

func TestGenerateAllFormats(t *testing.T) {
	g := newTestGenerator()
	logo := solidImage(40, 40, color.NRGBA{0, 0x66, 0xcc, 0xff})
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			art, err := g.Generate(Request{Text: "formats", Color: DefaultColor, Logo: logo, Format: f})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if len(art.Data) == 0 {
				t.Fatal("empty artifact")
			}
			if art.Image == nil || art.Image.Bounds().Dx() != art.Width {
				t.Error("artifact image does not match dimensions")
			}
		})
	}
}
