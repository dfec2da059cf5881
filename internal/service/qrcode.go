package service

import (
	qrcode "github.com/skip2/go-qrcode"
)

// QrBadge encodes the content as a 256px PNG QR code.
func QrBadge(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, 256)
}
