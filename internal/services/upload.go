package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/modulehub/modulehub-backend/internal/apierr"
	"github.com/modulehub/modulehub-backend/internal/logger"
)

type UploadService interface {
	SaveProfileImage(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (string, error)
}

type uploadService struct {
	log           *logger.Logger
	bucketService BucketService
	tempDir       string
}

func NewUploadService(log *logger.Logger, bucketService BucketService) UploadService {
	serviceLog := log.With("service", "UploadService")
	return &uploadService{
		log:           serviceLog,
		bucketService: bucketService,
		tempDir:       filepath.Join(os.TempDir(), "modulehub-uploads"),
	}
}

// SaveProfileImage stages the upload to a temp file, checks the sniffed MIME
// type, and pushes it to the image host under a deterministic per-user key so
// a re-upload overwrites the previous image. The temp file is removed on
// every exit path, including transfer failure.
func (us *uploadService) SaveProfileImage(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", apierr.Upstream("File upload failed", err)
	}
	defer src.Close()

	tmpPath, err := us.stageToTemp(src, file.Filename)
	if err != nil {
		return "", apierr.Upstream("File upload failed", err)
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			us.log.Warn("Failed to remove staged upload", "path", tmpPath, "error", err)
		}
	}()

	mtype, err := mimetype.DetectFile(tmpPath)
	if err != nil || !strings.HasPrefix(mtype.String(), "image/") {
		return "", apierr.Validation("File must be an image")
	}

	staged, err := os.Open(tmpPath)
	if err != nil {
		return "", apierr.Upstream("File upload failed", err)
	}
	defer staged.Close()

	key := fmt.Sprintf("profiles/user_%s", userID)
	if err := us.bucketService.UploadFile(ctx, key, staged); err != nil {
		return "", apierr.Upstream("File upload failed", err)
	}
	url := us.bucketService.GetPublicURL(key)
	us.log.Info("Profile image uploaded", "user_id", userID, "key", key)
	return url, nil
}

// stageToTemp writes the upload under a random name so concurrent uploads
// never collide on the staging path.
func (us *uploadService) stageToTemp(src io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(us.tempDir, 0o755); err != nil {
		return "", err
	}
	tmpPath := filepath.Join(us.tempDir, uuid.New().String()+filepath.Ext(originalName))
	dst, err := os.Create(tmpPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(tmpPath)
		return "", err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return tmpPath, nil
}
