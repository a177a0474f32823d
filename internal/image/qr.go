package imagepkg

import (
	"bytes"
	"context"
	"fmt"
	"io"

	qrcode "github.com/skip2/go-qrcode"
)

// QRScheme prefixes locators that render their text as a QR code.
const QRScheme = "qr:"

const DefaultQRSize = 512

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("empty QR text")
	}
	return qrcode.Encode(text, qrcode.Medium, size)
}

// QRSource renders Text as a square QR code of Size pixels. It stands in
// for user content when previewing a template.
type QRSource struct {
	Text string
	Size int
}

func (s QRSource) Name() string { return QRScheme + s.Text }

func (s QRSource) Open(ctx context.Context) (io.ReadCloser, error) {
	b, err := GenerateQRPNG(s.Text, s.Size)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}
