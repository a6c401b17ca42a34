package services

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/modulehub/modulehub-backend/internal/apierr"
	"github.com/modulehub/modulehub-backend/internal/logger"
)

// pngHeader is the smallest prefix mimetype needs to call a file image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type fakeBucket struct {
	uploadedKeys []string
	uploadedSize int
	failUpload   bool
}

func (fb *fakeBucket) UploadFile(ctx context.Context, key string, file io.Reader) error {
	if fb.failUpload {
		return io.ErrUnexpectedEOF
	}
	n, err := io.Copy(io.Discard, file)
	if err != nil {
		return err
	}
	fb.uploadedKeys = append(fb.uploadedKeys, key)
	fb.uploadedSize = int(n)
	return nil
}

func (fb *fakeBucket) DeleteFile(ctx context.Context, key string) error { return nil }

func (fb *fakeBucket) GetPublicURL(key string) string { return "https://img.example.com/" + key }

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, fh, err := req.FormFile("file")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	return fh
}

func newUploadServiceForTest(t *testing.T, bucket BucketService) *uploadService {
	t.Helper()
	return &uploadService{
		log:           logger.NewNop(),
		bucketService: bucket,
		tempDir:       t.TempDir(),
	}
}

func tempFileCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%s): %v", dir, err)
	}
	return len(entries)
}

func TestSaveProfileImageUploadsUnderDeterministicKey(t *testing.T) {
	bucket := &fakeBucket{}
	us := newUploadServiceForTest(t, bucket)
	userID := uuid.New()

	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	fh := makeFileHeader(t, "avatar.png", content)

	url, err := us.SaveProfileImage(context.Background(), userID, fh)
	if err != nil {
		t.Fatalf("SaveProfileImage: %v", err)
	}
	wantKey := "profiles/user_" + userID.String()
	if len(bucket.uploadedKeys) != 1 || bucket.uploadedKeys[0] != wantKey {
		t.Fatalf("uploaded keys=%v, want [%s]", bucket.uploadedKeys, wantKey)
	}
	if url != "https://img.example.com/"+wantKey {
		t.Fatalf("url=%q", url)
	}
	if bucket.uploadedSize != len(content) {
		t.Fatalf("uploaded %d bytes, want %d", bucket.uploadedSize, len(content))
	}
	if n := tempFileCount(t, us.tempDir); n != 0 {
		t.Fatalf("staging dir holds %d files after success, want 0", n)
	}
}

func TestSaveProfileImageRejectsNonImage(t *testing.T) {
	bucket := &fakeBucket{}
	us := newUploadServiceForTest(t, bucket)

	fh := makeFileHeader(t, "notes.txt", []byte("just some plain text, definitely not pixels"))

	_, err := us.SaveProfileImage(context.Background(), uuid.New(), fh)
	if err == nil {
		t.Fatal("expected error for non-image upload")
	}
	if ae := apierr.From(err); ae.Status != 400 || ae.Msg != "File must be an image" {
		t.Fatalf("got %+v, want 400 validation error", ae)
	}
	if len(bucket.uploadedKeys) != 0 {
		t.Fatalf("bucket received %v, want nothing", bucket.uploadedKeys)
	}
	if n := tempFileCount(t, us.tempDir); n != 0 {
		t.Fatalf("staging dir holds %d files after rejection, want 0", n)
	}
}

func TestSaveProfileImageCleansUpOnTransferFailure(t *testing.T) {
	bucket := &fakeBucket{failUpload: true}
	us := newUploadServiceForTest(t, bucket)

	fh := makeFileHeader(t, "avatar.png", append(append([]byte{}, pngHeader...), 1, 2, 3))

	_, err := us.SaveProfileImage(context.Background(), uuid.New(), fh)
	if err == nil {
		t.Fatal("expected error when the image host rejects the transfer")
	}
	if ae := apierr.From(err); ae.Status != 500 {
		t.Fatalf("status=%d, want 500", ae.Status)
	}
	if n := tempFileCount(t, us.tempDir); n != 0 {
		t.Fatalf("staging dir holds %d files after failed transfer, want 0", n)
	}
}
