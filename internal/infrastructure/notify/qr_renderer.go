// Package notify holds the presentation-side collaborators the ledger only
// ever talks to through ports: code-image rendering and audio announcement.
package notify

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/qrdocs/deposit-system/internal/core/ports"
)

const defaultImageSize = 256

// QRRenderer renders a document code as a PNG QR image. The ledger never
// inspects the bytes, it only forwards them.
type QRRenderer struct{}

func NewQRRenderer() *QRRenderer {
	return &QRRenderer{}
}

func (r *QRRenderer) Render(code string, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultImageSize
	}
	png, err := qrcode.Encode(code, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("render code image: %w", err)
	}
	return png, nil
}

var _ ports.CodeRenderer = (*QRRenderer)(nil)
