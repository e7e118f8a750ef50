// Package storage uploads media to blob storage and hands back a durable
// URL. The upload happens before any post/profile mutation is invoked;
// mutations only ever receive the returned reference.
package storage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10 MB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Config selects S3 or local-disk storage.
type Config struct {
	UseS3     bool
	S3Bucket  string
	AWSRegion string
	LocalDir  string
	BaseURL   string
}

// Service stores uploaded media and returns its public URL.
type Service struct {
	s3Client *s3.S3
	bucket   string
	baseURL  string
	localDir string
	useS3    bool
}

// NewService creates a storage service. With UseS3 unset it falls back
// to a local upload directory, which it creates if needed.
func NewService(cfg Config) (*Service, error) {
	svc := &Service{
		bucket:   cfg.S3Bucket,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		localDir: cfg.LocalDir,
		useS3:    cfg.UseS3,
	}

	if cfg.UseS3 {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(cfg.AWSRegion),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		svc.s3Client = s3.New(sess)
	} else {
		if err := os.MkdirAll(cfg.LocalDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}

	return svc, nil
}

// Upload validates and stores one file, returning its URL.
func (s *Service) Upload(file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := validate(header); err != nil {
		return "", err
	}

	filename := generateFilename(header.Filename)
	if s.useS3 {
		return s.uploadToS3(file, filename, header)
	}
	return s.uploadToLocal(file, filename)
}

func (s *Service) uploadToS3(file multipart.File, filename string, header *multipart.FileHeader) (string, error) {
	buffer := bytes.NewBuffer(nil)
	if _, err := io.Copy(buffer, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("media/%s/%s", time.Now().Format("2006/01/02"), filename)
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(buffer.Bytes()),
		ContentType:        aws.String(header.Header.Get("Content-Type")),
		ContentDisposition: aws.String("inline"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}

func (s *Service) uploadToLocal(file multipart.File, filename string) (string, error) {
	path := filepath.Join(s.localDir, filename)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s", s.baseURL, filename), nil
}

func validate(header *multipart.FileHeader) error {
	if header.Size > maxUploadSize {
		return fmt.Errorf("file too large: %d bytes (max %d)", header.Size, maxUploadSize)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("file type %q not allowed", ext)
	}
	return nil
}

func generateFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.New().String() + ext
}
