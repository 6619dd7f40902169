package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"studyhive_backend/internal/config"
	"studyhive_backend/internal/util"
	"studyhive_backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const (
	uploadURLExpiry   = time.Hour
	downloadURLExpiry = 24 * time.Hour
)

type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	ExpiresIn int    `json:"expiresIn"`
}

// StorageService hands out presigned URLs; file bytes never pass through the
// API server.
type StorageService struct {
	client *minio.Client
	bucket string
}

func NewStorageService(cfg config.StorageConfig) (*StorageService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	svc := &StorageService{client: client, bucket: cfg.Bucket}
	if err := svc.ensureBucket(context.Background()); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *StorageService) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Log.Info("Created storage bucket", zap.String("bucket", s.bucket))
	}
	return nil
}

// PresignUpload validates the filename and size, then returns a PUT URL under
// a fresh object key. The caller uploads directly to storage.
func (s *StorageService) PresignUpload(ctx context.Context, kind, filename string, size int64) (*UploadTicket, error) {
	if !util.AllowedExtension(filename) {
		return nil, util.BadRequest("File type not allowed, accepted types are pdf, doc, docx, ppt, pptx")
	}
	if size <= 0 || size > util.MaxUploadSize {
		return nil, util.BadRequest("File size must be between 1 byte and 50MB")
	}

	key := fmt.Sprintf("%s/%s/%s", kind, time.Now().Format("2006/01"), uuid.New().String()+"-"+filename)

	presigned, err := s.client.PresignedPutObject(ctx, s.bucket, key, uploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &UploadTicket{
		UploadURL: presigned.String(),
		FileKey:   key,
		ExpiresIn: int(uploadURLExpiry.Seconds()),
	}, nil
}

// PresignDownload returns a time-limited GET URL for a stored object, with a
// download filename hint.
func (s *StorageService) PresignDownload(ctx context.Context, key, filename string) (string, error) {
	params := make(url.Values)
	if filename != "" {
		params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, downloadURLExpiry, params)
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}
	return presigned.String(), nil
}

// Exists reports whether the object was actually uploaded. Used to confirm a
// ticket before attaching its key to a record.
func (s *StorageService) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *StorageService) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
