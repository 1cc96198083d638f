package model

import (
	"context"
	"io"
)

// MediaHost stores uploaded files and exposes them under a public URL.
type MediaHost interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (publicURL string, err error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL maps a URL returned by Upload back to its object key.
	// ok is false for URLs this host did not produce.
	KeyFromURL(publicURL string) (key string, ok bool)
}

// Mailer delivers a plain text message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// Upload is a client supplied file.
type Upload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}
