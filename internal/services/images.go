package services

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"congestion-pricing-backend-go/internal/models"

	"github.com/google/uuid"
)

const BucketDetections = "detections"

func EnsureStoragePath(base string, bucket string) (string, error) {
	dir := filepath.Join(base, bucket)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// SaveImage copies body into the detections bucket under a fresh key and
// returns the reference to store in DetectedLicensePlate.Image together
// with the content's sha256. Empty bodies are rejected.
func SaveImage(basePath, ext string, body io.Reader) (models.ImageRef, string, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if strings.ContainsAny(ext, `/\`) || len(ext) > 10 {
		return "", "", ErrBadRequest("invalid image extension")
	}
	bucketPath, err := EnsureStoragePath(basePath, BucketDetections)
	if err != nil {
		return "", "", err
	}
	storageKey := uuid.NewString() + ext
	targetPath := filepath.Join(bucketPath, storageKey)

	file, err := os.Create(targetPath)
	if err != nil {
		return "", "", err
	}
	hasher := sha256.New()
	writer := io.MultiWriter(file, hasher)
	size, err := io.Copy(writer, body)
	_ = file.Close()
	if err != nil {
		_ = os.Remove(targetPath)
		return "", "", err
	}
	if size == 0 {
		_ = os.Remove(targetPath)
		return "", "", ErrBadRequest("image is empty")
	}
	return models.ImageRef(path.Join(BucketDetections, storageKey)), hex.EncodeToString(hasher.Sum(nil)), nil
}

// ImportImageFile stores a copy of the file at src.
func ImportImageFile(basePath, src string) (models.ImageRef, error) {
	file, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer file.Close()
	ref, _, err := SaveImage(basePath, filepath.Ext(src), file)
	return ref, err
}

// ImagePath resolves a stored reference to a file path under basePath.
// URLs and invalid references are rejected.
func ImagePath(basePath string, ref models.ImageRef) (string, error) {
	if err := ref.Validate(); err != nil {
		return "", ErrBadRequest(err.Error())
	}
	raw := string(ref)
	if raw == "" || strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return "", ErrBadRequest("image reference is not a stored file")
	}
	return filepath.Join(basePath, filepath.FromSlash(raw)), nil
}

func DeleteImage(basePath string, ref models.ImageRef) error {
	target, err := ImagePath(basePath, ref)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
