package designer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
)

// Errors returned by the generation pipeline. Every one of them is terminal
// for the current generation cycle only.
var (
	ErrEmptyInput    = errors.New("no text to encode")
	ErrLogoDecode    = errors.New("logo is not a valid PNG or JPEG image")
	ErrCapacity      = errors.New("text exceeds QR code capacity")
	ErrSerialization = errors.New("failed to serialize image")
	ErrInvalidColor  = errors.New("invalid color")
	ErrInvalidFormat = errors.New("invalid export format")
)

// GuidanceMessage is shown instead of an image when there is no text.
const GuidanceMessage = "Enter a URL or text to generate your QR code."

// Format is an export file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
	FormatPDF Format = "pdf"
	FormatBMP Format = "bmp"
)

// Formats lists the supported export formats in display order.
var Formats = []Format{FormatPNG, FormatJPG, FormatPDF, FormatBMP}

// ParseFormat converts a user supplied format name. Matching is
// case-insensitive and "jpeg" is accepted for JPG. An empty string selects PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	case "pdf":
		return FormatPDF, nil
	case "bmp":
		return FormatBMP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// Ext returns the file extension without the dot.
func (f Format) Ext() string { return string(f) }

// Filename returns the download name for an artifact of this format.
func (f Format) Filename() string { return "qrcode." + f.Ext() }

// MIMEType returns the content type advertised for downloads.
func (f Format) MIMEType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatJPG:
		return "image/jpg"
	case FormatBMP:
		return "image/bmp"
	default:
		return "image/png"
	}
}

// DefaultColor is the foreground used when no colour is given.
var DefaultColor = color.RGBA{0, 0, 0, 0xff}

// ParseColor parses "#RRGGBB", "RRGGBB" or "#RGB" into an opaque colour.
// An empty string yields DefaultColor.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if hex == "" {
		return DefaultColor, nil
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// HexColor formats c as "#rrggbb".
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Request holds everything one generation cycle needs. It is passed by value
// and never shared between cycles.
type Request struct {
	Text   string
	Color  color.RGBA
	Logo   image.Image // optional
	Format Format
}
