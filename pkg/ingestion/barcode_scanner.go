package ingestion

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
)

type (
	// BarcodeScanner extracts a barcode value from raw image bytes. A miss
	// is (empty, nil): the caller decides whether that is an error.
	BarcodeScanner interface {
		ScanImage(imageBytes []byte) (string, error)
	}

	zxingScanner struct{}
)

func NewBarcodeScanner() BarcodeScanner {
	return &zxingScanner{}
}

// ScanImage decodes EAN-13 and UPC-A, the formats on grocery packaging.
// A decodable image with no recognizable barcode is not an error.
func (s *zxingScanner) ScanImage(imageBytes []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return "", err
	}

	bitmap, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", err
	}

	reader := oned.NewMultiFormatUPCEANReader(nil)
	result, err := reader.Decode(bitmap, nil)
	if err != nil {
		return "", nil
	}

	return strings.TrimSpace(result.GetText()), nil
}
