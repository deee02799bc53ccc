package storage

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"net/http"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

const (
	PreviewMaxW    = 480
	PreviewMaxH    = 480
	PreviewQuality = 75
)

// decodeImage applies the EXIF orientation of phone photos.
func decodeImage(all []byte) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	switch {
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "png"):
		return imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(all))
	}
	return nil, fmt.Errorf("unsupported image type %s", ct)
}

func downscale(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := int(math.Max(1, math.Round(float64(w)*scale)))
	nh := int(math.Max(1, math.Round(float64(h)*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// WebPPreview decodes a JPEG/PNG and re-encodes it as a downscaled lossy WebP.
func WebPPreview(data []byte) ([]byte, error) {
	img, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	img = downscale(img, PreviewMaxW, PreviewMaxH)
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: PreviewQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
