package designer

import (
	"errors"
	"image/color"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"", DefaultColor, false},
		{"#000000", color.RGBA{0, 0, 0, 0xff}, false},
		{"#FF8800", color.RGBA{0xff, 0x88, 0x00, 0xff}, false},
		{"1a7f37", color.RGBA{0x1a, 0x7f, 0x37, 0xff}, false},
		{"#abc", color.RGBA{0xaa, 0xbb, 0xcc, 0xff}, false},
		{" #ffffff ", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"#12345", color.RGBA{}, true},
		{"#gg0000", color.RGBA{}, true},
		{"red", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Fatalf("err = %v, want ErrInvalidColor", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseColorErrorQuotesInput(t *testing.T) {
	for _, in := range []string{"#xyz", "#12345", "purple"} {
		_, err := ParseColor(in)
		if err == nil {
			t.Fatalf("ParseColor(%q) succeeded", in)
		}
		if want := `"` + in + `"`; !strings.Contains(err.Error(), want) {
			t.Errorf("ParseColor(%q) error %q does not mention %s", in, err, want)
		}
	}
}

func TestHexColorRoundTrip(t *testing.T) {
	c := color.RGBA{0x12, 0xab, 0xef, 0xff}
	got, err := ParseColor(HexColor(c))
	if err != nil || got != c {
		t.Errorf("ParseColor(HexColor) = %v, %v", got, err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		err  bool
	}{
		{"", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{"jpg", FormatJPG, false},
		{"JPEG", FormatJPG, false},
		{"pdf", FormatPDF, false},
		{"bmp", FormatBMP, false},
		{"tiff", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.err {
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("ParseFormat(%q) err = %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestFormatNaming(t *testing.T) {
	tests := []struct {
		f    Format
		name string
		mime string
	}{
		{FormatPNG, "qrcode.png", "image/png"},
		{FormatJPG, "qrcode.jpg", "image/jpg"},
		{FormatPDF, "qrcode.pdf", "application/pdf"},
		{FormatBMP, "qrcode.bmp", "image/bmp"},
	}
	for _, tt := range tests {
		if tt.f.Filename() != tt.name || tt.f.MIMEType() != tt.mime {
			t.Errorf("%s: got %s %s", tt.f, tt.f.Filename(), tt.f.MIMEType())
		}
	}
}
