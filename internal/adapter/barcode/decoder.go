package barcode

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/niksmo/ecoscan/internal/core/domain"
	"github.com/niksmo/ecoscan/internal/core/port"
)

var _ port.BarcodeDecoder = (*Decoder)(nil)

// A Decoder extracts a GTIN from raster image bytes (JPEG or PNG).
// It is stateless: a fresh reader is built per call, so one Decoder
// may serve concurrent requests.
type Decoder struct{}

func New() Decoder {
	return Decoder{}
}

// Decode scans the image for 1D UPC/EAN symbologies and returns the
// payload of the first match in row-scan order, which makes the pick
// deterministic when several barcodes are present. Undecodable bytes
// and barcode-free images both yield [domain.ErrNoBarcode]: the caller
// cannot tell the two apart and neither is a fault.
func (Decoder) Decode(data []byte) (string, error) {
	const op = "Decoder.Decode"

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, domain.ErrNoBarcode)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, domain.ErrNoBarcode)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	reader := oned.NewMultiFormatUPCEANReader(hints)
	result, err := reader.Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, domain.ErrNoBarcode)
	}

	gtin := result.GetText()
	if !domain.ValidGTIN(gtin) {
		return "", fmt.Errorf("%s: %w", op, domain.ErrNoBarcode)
	}
	return gtin, nil
}
