// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging prepares uploaded card images. Wide still images are
// scaled down before they are stored, since an image element or a custom
// background travels inside the greeting document and every viewer
// downloads it.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"net/http"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// MaxUploadSize is the largest accepted upload (10 MB).
	MaxUploadSize = 10 << 20

	// DefaultMaxWidth is the widest image kept as uploaded.
	DefaultMaxWidth = 1600

	// maxPixels caps decoded dimensions to prevent memory bombs.
	maxPixels = 50_000_000

	jpegQuality = 82

	// minFitWidth is the narrowest image Fit produces before giving up.
	minFitWidth = 64
)

var (
	// ErrUnsupported is returned for uploads that are not a known image type.
	ErrUnsupported = errors.New("unsupported image type")

	// ErrTooLarge is returned for images whose decoded size exceeds the cap.
	ErrTooLarge = errors.New("image dimensions too large")

	// ErrInlineTooLarge is returned by Fit when even the smallest
	// re-encoding does not fit the inline limit.
	ErrInlineTooLarge = errors.New("image too large to inline")
)

// extensions maps accepted MIME types to file extensions.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Image is a prepared upload.
type Image struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Extension returns the file extension for the image's content type.
func (img Image) Extension() string {
	return extensions[img.ContentType]
}

// DataURI returns the image inlined as a data URI.
func (img Image) DataURI() string {
	return "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// DataURILen returns len(img.DataURI()) without building the string.
func (img Image) DataURILen() int {
	return len("data:") + len(img.ContentType) + len(";base64,") + base64.StdEncoding.EncodedLen(len(img.Data))
}

// Sniff detects the content type of data and rejects anything that is not
// an accepted image.
func Sniff(data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	if _, ok := extensions[contentType]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, contentType)
	}
	return contentType, nil
}

// Prepare validates data and scales it down to maxWidth when wider,
// preserving aspect ratio. GIFs are kept as uploaded so animations survive.
// Scaled images are re-encoded as JPEG, or PNG when they carry transparency.
func Prepare(data []byte, maxWidth int) (Image, error) {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}

	contentType, err := Sniff(data)
	if err != nil {
		return Image{}, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("decode config: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return Image{}, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	original := Image{Data: data, ContentType: contentType, Width: cfg.Width, Height: cfg.Height}
	if cfg.Width <= maxWidth || contentType == "image/gif" {
		return original, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("decode image: %w", err)
	}

	return encode(src, maxWidth)
}

// Fit returns img unchanged when its data URI is at most maxLen bytes.
// Otherwise the image is re-encoded, then scaled down by a quarter at a
// time, until it fits. GIFs keep only their first frame. ErrInlineTooLarge
// is returned once the width would drop below minFitWidth.
func Fit(img Image, maxLen int) (Image, error) {
	if img.DataURILen() <= maxLen {
		return img, nil
	}

	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return Image{}, fmt.Errorf("decode image: %w", err)
	}

	for width := src.Bounds().Dx(); width >= minFitWidth; width = width * 3 / 4 {
		out, err := encode(src, width)
		if err != nil {
			return Image{}, err
		}
		if out.DataURILen() <= maxLen {
			return out, nil
		}
	}
	return Image{}, fmt.Errorf("%w: %d bytes allowed", ErrInlineTooLarge, maxLen)
}

// encode scales src to width, preserving aspect ratio, and encodes it as
// JPEG, or PNG when it carries transparency.
func encode(src image.Image, width int) (Image, error) {
	bounds := src.Bounds()
	ratio := float64(width) / float64(bounds.Dx())
	height := max(1, int(float64(bounds.Dy())*ratio))

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	scaled := Image{Width: width, Height: height}
	if dst.Opaque() {
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return Image{}, fmt.Errorf("encode jpeg: %w", err)
		}
		scaled.ContentType = "image/jpeg"
	} else {
		if err := png.Encode(&buf, dst); err != nil {
			return Image{}, fmt.Errorf("encode png: %w", err)
		}
		scaled.ContentType = "image/png"
	}
	scaled.Data = buf.Bytes()
	return scaled, nil
}
