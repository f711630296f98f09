// internal/services/storage_service.go
package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/recipebox/recipebox-backend/internal/config"
)

// StorageService persists recipe images and hands back stable URLs. Images
// arrive as base64 data URLs; only the resulting reference is stored on the
// recipe row.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
	localDir string
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Local filesystem fallback for development
		return &StorageService{config: cfg, localDir: "./uploads/media"}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
		localDir: "./uploads/media",
	}, nil
}

// StoreImage accepts a "data:image/...;base64," payload, validates and
// persists it, and returns the image URL. A plain http(s) URL is passed
// through unchanged so updates can resubmit an existing reference.
func (s *StorageService) StoreImage(data string) (string, error) {
	if strings.HasPrefix(data, "http://") || strings.HasPrefix(data, "https://") {
		return data, nil
	}

	if !strings.HasPrefix(data, "data:image") {
		return "", fmt.Errorf("image must be a base64 data URL")
	}

	parts := strings.SplitN(data, ";base64,", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("malformed base64 image data")
	}

	ext := "." + strings.TrimPrefix(parts[0], "data:image/")
	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 image: %w", err)
	}

	if maxBytes := int64(s.config.Media.MaxImageKiB) * 1024; int64(len(raw)) > maxBytes {
		return "", fmt.Errorf("image size %d bytes exceeds maximum allowed size %d bytes", len(raw), maxBytes)
	}

	if !isValidImageType(raw) {
		return "", fmt.Errorf("invalid image file")
	}

	key := s.generateFileName(ext)
	contentType := "image/" + strings.TrimPrefix(ext, ".")

	if s.s3Client != nil {
		return s.uploadToS3(raw, key, contentType)
	}
	return s.uploadToLocal(raw, key)
}

func (s *StorageService) uploadToS3(fileBytes []byte, key, contentType string) (string, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObject(params); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.getS3URL(key), nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key string) (string, error) {
	path := filepath.Join(s.localDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.Media.BaseURL, "/"), key), nil
}

func (s *StorageService) DeleteImage(url string) error {
	if s.s3Client == nil {
		// Local images are left in place; dev-only convenience
		return nil
	}

	key := strings.TrimPrefix(url, s.getS3URL(""))
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image from S3: %w", err)
	}

	return nil
}

func (s *StorageService) generateFileName(ext string) string {
	id := uuid.New()
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("recipes/%s_%s%s", timestamp, id.String()[:8], ext)
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

func isValidImageType(buffer []byte) bool {
	// Check for JPEG
	if len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF {
		return true
	}

	// Check for PNG
	if len(buffer) >= 8 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47 {
		return true
	}

	// Check for GIF
	if len(buffer) >= 6 && (string(buffer[0:6]) == "GIF87a" || string(buffer[0:6]) == "GIF89a") {
		return true
	}

	return false
}
