package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// EncodedImage is an image returned to MCP clients as base64 PNG.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG.
func EncodePNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	b := img.Bounds()
	return &EncodedImage{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// EdgeMaskResult describes a binary mask as returned by the hough_edge_mask
// tool.
type EdgeMaskResult struct {
	EncodedImage
	ForegroundPixels int `json:"foreground_pixels"`
}

// EncodeMask renders m white-on-black and encodes it.
func EncodeMask(m *Mask) (*EdgeMaskResult, error) {
	enc, err := EncodePNG(m.Image())
	if err != nil {
		return nil, err
	}
	return &EdgeMaskResult{EncodedImage: *enc, ForegroundPixels: m.Count()}, nil
}
