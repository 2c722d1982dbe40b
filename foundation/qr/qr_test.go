package qr_test

import (
	"bytes"
	"testing"

	"github.com/zaplanje/coin/foundation/qr"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_PNG(t *testing.T) {
	pngHeader := []byte("\x89PNG\r\n\x1a\n")

	img, err := qr.PNG("https://schebet-koin.netlify.app/", 100)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to encode a link : %v", failed, err)
	}
	t.Logf("\t%s\tShould be able to encode a link.", success)

	if !bytes.HasPrefix(img, pngHeader) {
		t.Fatalf("\t%s\tShould produce a PNG image.", failed)
	}
	t.Logf("\t%s\tShould produce a PNG image.", success)

	if _, err := qr.PNG("", 100); err == nil {
		t.Fatalf("\t%s\tShould reject empty content.", failed)
	}
	t.Logf("\t%s\tShould reject empty content.", success)

	if _, err := qr.PNG("zpk_00", 5000); err == nil {
		t.Fatalf("\t%s\tShould reject sizes out of range.", failed)
	}
	t.Logf("\t%s\tShould reject sizes out of range.", success)
}
