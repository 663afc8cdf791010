// Package qrcode implements the pipe-delimited scan payload carried in
// item QR codes and renders those payloads as PNG images.
package qrcode

import (
	"fmt"
	"strings"

	qr "github.com/skip2/go-qrcode"

	"github.com/wastenot-app/wastenot/internal/model"
)

// DefaultImageSize is the pixel size of generated QR images.
const DefaultImageSize = 180

// EncodePayload renders an item as the scan payload
// "name|category|storage|expiry|location". Absent fields are encoded as
// empty strings so that positions stay fixed.
func EncodePayload(item *model.Item) string {
	return strings.Join([]string{
		item.Name,
		item.Category,
		item.Storage,
		item.Expiry,
		item.Location,
	}, "|")
}

// DecodePayload parses a scan payload back into an item skeleton. Fields
// map positionally; missing trailing fields take the creation defaults.
// A payload with no separator at all is treated as a bare item name.
func DecodePayload(payload string) model.Item {
	parts := strings.Split(payload, "|")

	item := model.Item{
		Name:     field(parts, 0),
		Category: field(parts, 1),
		Storage:  field(parts, 2),
		Expiry:   field(parts, 3),
		Location: field(parts, 4),
	}

	if item.Category == "" {
		item.Category = model.DefaultCategory
	}
	if item.Storage == "" {
		item.Storage = model.DefaultStorage
	}

	return item
}

// ImagePNG renders a payload as a QR code PNG. A size of 0 or less uses
// DefaultImageSize.
func ImagePNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultImageSize
	}

	png, err := qr.Encode(payload, qr.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encoding qr image: %w", err)
	}

	return png, nil
}

// field returns parts[i], or "" when the index is out of range.
func field(parts []string, i int) string {
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}
