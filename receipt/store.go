package receipt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goodlandcafe/pos_backend/utils"
)

// Store persists a rendered receipt and returns where it went.
type Store interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
}

type DirStore struct {
	Dir string
}

func (s DirStore) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("receipt dir: %w", err)
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write receipt: %w", err)
	}
	return path, nil
}

type GCSStore struct {
	Bucket string
	Prefix string
}

func (s GCSStore) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	return utils.UploadFileToGCS(ctx, s.Bucket, s.Prefix+name, contentType, data)
}
