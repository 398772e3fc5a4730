package qr

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

// DataURL renders the given content as a 256px PNG QR code and returns it
// as a data: URL suitable for direct embedding in an <img> tag.
func DataURL(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
