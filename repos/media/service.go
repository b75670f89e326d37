// Package media stores uploaded images in the Firebase Storage bucket.
package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/samborkent/uuidv7"
	"golang.org/x/xerrors"

	"github.com/nvbf/league-manager/pkg/league"
)

// MaxUploadBytes caps a single image upload.
const MaxUploadBytes = 5 * 1024 * 1024

type Service struct {
	bucket     *storage.BucketHandle
	bucketName string
}

func NewService(bucket *storage.BucketHandle, bucketName string) *Service {
	return &Service{bucket: bucket, bucketName: bucketName}
}

// Upload writes r to <folder>/<uuid> and returns a Firebase download URL.
func (s *Service) Upload(ctx context.Context, folder, contentType string, r io.Reader) (string, error) {
	if err := CheckContentType(contentType); err != nil {
		return "", err
	}

	name := path.Join(folder, uuidv7.New().String())
	token := uuidv7.New().String()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := s.bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}

	n, err := io.Copy(w, io.LimitReader(r, MaxUploadBytes+1))
	if err == nil && n > MaxUploadBytes {
		err = xerrors.Errorf("%w: image exceeds %d bytes", league.ErrInvalidInput, MaxUploadBytes)
	}
	if err != nil {
		cancel()
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", xerrors.Errorf("failed to store %s: %w", name, err)
	}

	return DownloadURL(s.bucketName, name, token), nil
}

// CheckContentType accepts image/* types only.
func CheckContentType(contentType string) error {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return xerrors.Errorf("%w: unsupported content type %q", league.ErrInvalidInput, contentType)
	}
	return nil
}

func DownloadURL(bucket, object, token string) string {
	return fmt.Sprintf(
		"https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket,
		url.PathEscape(object),
		token,
	)
}
