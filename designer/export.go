package designer

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/bmp"
)

// DefaultJPEGQuality matches the quality most image tools use when none is set.
const DefaultJPEGQuality = 75

// pdfPointsPerPixel sizes PDF pages at 96 DPI.
const pdfPointsPerPixel = 72.0 / 96.0

// Artifact is an exported image ready for download.
type Artifact struct {
	Data     []byte
	Filename string
	MIMEType string
	Format   Format
	Width    int
	Height   int

	// Image is the composed bitmap the artifact was serialized from.
	Image *image.RGBA
}

// Exporter serializes composed images.
type Exporter struct {
	JPEGQuality int
}

// Export encodes img in format f.
func (e Exporter) Export(img *image.RGBA, f Format) (*Artifact, error) {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatPNG:
		data, err = encodePNG(img)
	case FormatJPG:
		data, err = e.encodeJPEG(img)
	case FormatBMP:
		data, err = encodeBMP(img)
	case FormatPDF:
		data, err = encodePDF(img)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSerialization, f, err)
	}

	b := img.Bounds()
	return &Artifact{
		Data:     data,
		Filename: f.Filename(),
		MIMEType: f.MIMEType(),
		Format:   f,
		Width:    b.Dx(),
		Height:   b.Dy(),
		Image:    img,
	}, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e Exporter) encodeJPEG(img image.Image) ([]byte, error) {
	q := e.JPEGQuality
	if q <= 0 || q > 100 {
		q = DefaultJPEGQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeBMP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodePDF wraps a PNG rendering of img as the only content of a single page
// the size of the image.
func encodePDF(img image.Image) ([]byte, error) {
	pngData, err := encodePNG(img)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	w := float64(b.Dx()) * pdfPointsPerPixel
	h := float64(b.Dy()) * pdfPointsPerPixel

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opt := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qrcode", opt, bytes.NewReader(pngData))
	pdf.ImageOptions("qrcode", 0, 0, w, h, false, opt, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
