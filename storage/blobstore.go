package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore persists uploaded images (hotel photos, room photos,
// payment proofs) and returns the public URL to store on the record.
// The rest of the system treats it as opaque.
type BlobStore interface {
	Save(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
	Delete(ctx context.Context, url string) error
}

// LocalStore writes files under BaseDir and serves them from BaseURL
// (the router mounts BaseDir as static). Object names are uuids so a
// hostile filename never reaches the filesystem.
type LocalStore struct {
	BaseDir string
	BaseURL string
}

func NewLocalStore(baseDir, baseURL string) *LocalStore {
	return &LocalStore{BaseDir: baseDir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStore) Save(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.NewString() + ext

	dir := filepath.Join(s.BaseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.BaseURL, folder, name), nil
}

func (s *LocalStore) Delete(ctx context.Context, url string) error {
	rel := strings.TrimPrefix(url, s.BaseURL+"/")
	if rel == url || strings.Contains(rel, "..") {
		return fmt.Errorf("url %q is not managed by this store", url)
	}
	if err := os.Remove(filepath.Join(s.BaseDir, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// FromEnv picks the store implementation: cloudinary when its
// credentials are configured, local disk otherwise.
func FromEnv() BlobStore {
	if c := CloudinaryFromEnv(); c != nil {
		log.Println("🗂  Blob storage: cloudinary")
		return c
	}
	log.Println("🗂  Blob storage: local ./uploads")
	return NewLocalStore("./uploads", "/uploads")
}
