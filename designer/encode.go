package designer

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	// RecoveryLevel is fixed at the highest tier, roughly 30% damage tolerance.
	RecoveryLevel = qrcode.Highest

	// QuietZone is the blank border, in modules, around the symbol.
	QuietZone = 2
)

// Symbol is an encoded QR code. Modules is square and already includes the
// quiet zone; true means a dark module.
type Symbol struct {
	Modules [][]bool
	Version int
}

// Size returns the side length of the symbol in modules.
func (s *Symbol) Size() int { return len(s.Modules) }

// Encode builds the smallest QR symbol that holds text at RecoveryLevel.
func Encode(text string) (*Symbol, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}

	qr, err := qrcode.New(text, RecoveryLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapacity, err)
	}
	// go-qrcode pads with a 4 module border; ours is narrower.
	qr.DisableBorder = true

	// Bitmap re-runs the encoder on every call, so call it once.
	bitmap := qr.Bitmap()

	n := len(bitmap) + 2*QuietZone
	modules := make([][]bool, n)
	for y := range modules {
		modules[y] = make([]bool, n)
	}
	for y, row := range bitmap {
		copy(modules[y+QuietZone][QuietZone:], row)
	}

	return &Symbol{Modules: modules, Version: qr.VersionNumber}, nil
}
