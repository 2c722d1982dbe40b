// Package qr renders short strings, like wallet addresses and links, as
// PNG QR codes.
package qr

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/skip2/go-qrcode"
)

// Size bounds in pixels.
const (
	MinSize     = 64
	MaxSize     = 1024
	DefaultSize = 256
)

// PNG encodes the content with low error correction and no quiet zone
// border. A size of zero selects DefaultSize.
func PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr: empty content")
	}

	switch {
	case size == 0:
		size = DefaultSize
	case size < MinSize || size > MaxSize:
		return nil, errors.New("qr: size out of range")
	}

	q, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true

	return q.PNG(size)
}

// ParseSize reads a size in pixels from text. Empty text selects
// DefaultSize.
func ParseSize(s string) (int, error) {
	if s == "" {
		return DefaultSize, nil
	}

	size, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("qr: invalid size %q", s)
	}

	if size < MinSize || size > MaxSize {
		return 0, fmt.Errorf("qr: size must be between %d and %d", MinSize, MaxSize)
	}

	return size, nil
}
