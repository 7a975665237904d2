// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"hola/internal/clock"
	"hola/internal/imaging"
	"hola/internal/models"
	"hola/internal/storage"
)

var errUploadTooLarge = errors.New("upload exceeds the size limit")

// ImageStore keeps uploaded card images. With S3 configured the image is
// written to the public bucket and referenced by URL; otherwise it is
// inlined into the greeting as a data URI.
type ImageStore struct {
	storage  *storage.Client
	ids      clock.IDGenerator
	maxWidth int
}

// NewImageStore creates an ImageStore. client may be nil.
func NewImageStore(client *storage.Client, ids clock.IDGenerator) *ImageStore {
	return &ImageStore{storage: client, ids: ids, maxWidth: imaging.DefaultMaxWidth}
}

// Store prepares data and returns the URL a card element or background
// should reference. Inlined images are shrunk until they fit the element
// content limit, so an accepted upload never blocks saving the greeting.
func (s *ImageStore) Store(ctx context.Context, data []byte) (string, error) {
	img, err := imaging.Prepare(data, s.maxWidth)
	if err != nil {
		return "", err
	}
	if s.storage == nil {
		img, err = imaging.Fit(img, models.MaxContentLength)
		if err != nil {
			return "", err
		}
		return img.DataURI(), nil
	}

	url, err := s.storage.PutImage(ctx, "uploads/"+s.ids.New()+img.Extension(), img.ContentType, img.Data)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

// readUpload reads the multipart file in field, enforcing the upload limit.
func readUpload(w http.ResponseWriter, r *http.Request, field string) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errUploadTooLarge
		}
		return nil, fmt.Errorf("parse form: %w", err)
	}

	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, imaging.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if len(data) > imaging.MaxUploadSize {
		return nil, errUploadTooLarge
	}
	return data, nil
}

// uploadMessage turns an upload failure into a notification for the editor.
func uploadMessage(err error) string {
	switch {
	case errors.Is(err, errUploadTooLarge):
		return "Image is too large (max 10 MB)."
	case errors.Is(err, imaging.ErrUnsupported):
		return "Please upload a JPEG, PNG, GIF or WebP image."
	case errors.Is(err, imaging.ErrTooLarge):
		return "Image dimensions are too large."
	case errors.Is(err, imaging.ErrInlineTooLarge):
		return "Image is too detailed to attach. Please try a smaller image."
	}
	return "Failed to upload image. Please try again."
}
