// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage is the S3-compatible object storage used by Hola. Images
// uploaded into cards go to the public bucket and are referenced by URL.
// The private bucket can hold the shared greeting document. Addressing is
// path-style, which CEPH/Hetzner and MinIO require.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrObjectNotFound is returned by GetObject when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Uploaded images get a fresh key each time, so they never change.
const imageCacheControl = "public, max-age=31536000, immutable"

// Options configures a Client.
type Options struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	PublicBucket  string
	PrivateBucket string
	PublicURL     string // optional CDN origin for the public bucket
}

// Client reads and writes the two buckets.
type Client struct {
	s3            *s3.Client
	publicBucket  string
	privateBucket string
	imageBase     string
}

// New creates a Client. It returns (nil, nil) when the endpoint or the
// credentials are empty, so the server can run without object storage.
func New(opts Options) (*Client, error) {
	if opts.Endpoint == "" || opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, nil
	}
	if opts.PublicBucket == "" && opts.PrivateBucket == "" {
		return nil, fmt.Errorf("s3: at least one bucket must be configured")
	}

	endpoint := strings.TrimRight(opts.Endpoint, "/")
	imageBase := strings.TrimRight(opts.PublicURL, "/")
	if imageBase == "" {
		imageBase = endpoint + "/" + opts.PublicBucket
	}

	return &Client{
		s3: s3.New(s3.Options{
			Region:       opts.Region,
			BaseEndpoint: aws.String(endpoint),
			Credentials:  credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
			UsePathStyle: true,
		}),
		publicBucket:  opts.PublicBucket,
		privateBucket: opts.PrivateBucket,
		imageBase:     imageBase,
	}, nil
}

// PutImage stores a card image in the public bucket with a public-read ACL
// and returns the URL cards reference it by.
func (c *Client) PutImage(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if c.publicBucket == "" {
		return "", fmt.Errorf("s3 put image %s: no public bucket configured", key)
	}
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.publicBucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String(imageCacheControl),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("s3 put image %s/%s: %w", c.publicBucket, key, err)
	}
	return c.ImageURL(key), nil
}

// ImageURL returns the public URL of an image key.
func (c *Client) ImageURL(key string) string {
	return c.imageBase + "/" + key
}

// PutObject replaces a private object.
func (c *Client) PutObject(ctx context.Context, key, contentType string, data []byte) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.privateBucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("no-store"),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s/%s: %w", c.privateBucket, key, err)
	}
	return nil
}

// GetObject reads a private object. A missing key yields ErrObjectNotFound.
func (c *Client) GetObject(ctx context.Context, key string) ([]byte, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.privateBucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *s3types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("s3 get %s/%s: %w", c.privateBucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read %s/%s: %w", c.privateBucket, key, err)
	}
	return data, nil
}
