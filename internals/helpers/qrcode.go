package helper

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// QRDataURI encodes content as a PNG QR code wrapped in a data URI.
func QRDataURI(content string, size int) (string, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
