package oss

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	alioss "github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// Default timeout applied to storage calls when the caller has no deadline.
const defaultCallTimeout = 15 * time.Second

type Service struct {
	Client     *alioss.Client
	Bucket     *alioss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional: "proofs/"
}

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func NewServiceFromEnv(prefix string) (*Service, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	client, err := alioss.New(endpoint, ak, sk)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &Service{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

/* =======================================================================
   Upload / Download / Delete
======================================================================= */

// UploadBytes stores raw bytes under key.
func (s *Service) UploadBytes(ctx context.Context, key string, data io.Reader, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	opts := []alioss.Option{
		alioss.WithContext(ctx),
		alioss.ContentType(contentType),
		alioss.ContentDisposition("inline"),
	}
	return s.Bucket.PutObject(key, data, opts...)
}

// UploadFormFile stores a multipart upload as-is and returns (key, contentType).
func (s *Service) UploadFormFile(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", fmt.Errorf("nil file header")
	}
	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	ct, reader, err := detectContentType(src, fh.Filename)
	if err != nil {
		return "", "", err
	}

	key := s.BuildObjectKey(dir, fh.Filename)
	if err := s.UploadBytes(ctx, key, reader, ct); err != nil {
		return "", "", err
	}
	return key, ct, nil
}

// Download streams the object; the caller must Close the reader.
func (s *Service) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, fmt.Errorf("empty key")
	}
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return s.Bucket.GetObject(key, alioss.WithContext(ctx))
}

func (s *Service) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	return s.Bucket.DeleteObject(key, alioss.WithContext(ctx))
}

// DeleteBestEffort removes the object and only logs on failure. Storage
// cleanup must never abort the caller's DB transaction.
func (s *Service) DeleteBestEffort(ctx context.Context, key string) {
	if strings.TrimSpace(key) == "" {
		return
	}
	if err := s.Delete(ctx, key); err != nil {
		log.Printf("[OSS] warn: delete %q failed: %v", key, err)
	}
}

func IsNotFound(err error) bool {
	if e, ok := err.(alioss.ServiceError); ok {
		return e.StatusCode == 404
	}
	return false
}

/* =======================================================================
   Keys & content-type
======================================================================= */

// BuildObjectKey returns "<prefix>/<dir>/<slug>_<ts>_<rand><ext>".
// The timestamp plus random suffix keeps keys collision-resistant.
func (s *Service) BuildObjectKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), ext)

	parts := make([]string, 0, 3)
	if s.Prefix != "" {
		parts = append(parts, s.Prefix)
	}
	if d := strings.Trim(dir, "/"); d != "" {
		parts = append(parts, d)
	}

	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("%s_%s_%s%s", Slugify(base), ts, randHex(3), ext)
	parts = append(parts, name)
	return strings.Join(parts, "/")
}

func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r := strings.NewReplacer(" ", "-", "_", "-")
	s = r.Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	return s
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultCallTimeout)
}

// detectContentType: extension first, then a 512B sniff.
func detectContentType(src multipart.File, filename string) (string, io.Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	ct := mime.TypeByExtension(ext)

	head := make([]byte, 512)
	n, _ := io.ReadFull(io.LimitReader(src, 512), head)

	if n > 0 && (ct == "" || ct == "application/octet-stream") {
		ct = http.DetectContentType(head[:n])
	}
	if ext == ".webp" {
		ct = "image/webp"
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return "", nil, err
		}
		return ct, src, nil
	}
	rest, err := io.ReadAll(src)
	if err != nil {
		return "", nil, err
	}
	combined := append(append([]byte{}, head[:n]...), rest...)
	return ct, strings.NewReader(string(combined)), nil
}

func init() {
	_ = mime.AddExtensionType(".webp", "image/webp")
}
