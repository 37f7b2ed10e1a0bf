package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"fleet-registry/internal/config"
	"fleet-registry/internal/repository"
)

var (
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrVehicleNotFound     = errors.New("vehicle not found")
)

// documentTypes maps the upload type field to the vehicle column holding
// the stored object path.
var documentTypes = map[string]string{
	"insurance":   "insurance_document_path",
	"mulkia":      "mulkia_document_path",
	"permit":      "permit_document_path",
	"truck_photo": "truck_photo_path",
}

type Upload struct {
	ChassisNumber string `json:"chassis_number"`
	DocumentType  string `json:"document_type"`
	StoragePath   string `json:"storage_path"`
	URL           string `json:"url"`
}

type Service interface {
	Upload(ctx context.Context, chassisNumber, documentType, fileName string, fileSize int64, mimeType string, reader io.Reader) (*Upload, error)
}

type service struct {
	vehicleRepo repository.VehicleRepository
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(vehicleRepo repository.VehicleRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		vehicleRepo: vehicleRepo,
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *service) Upload(ctx context.Context, chassisNumber, documentType, fileName string, fileSize int64, mimeType string, reader io.Reader) (*Upload, error) {
	column, ok := documentTypes[documentType]
	if !ok {
		return nil, ErrUnknownDocumentType
	}

	vehicle, err := s.vehicleRepo.GetByChassis(ctx, chassisNumber)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}

	storagePath := fmt.Sprintf("documents/%s/%s/%s-%s", chassisNumber, time.Now().Format("2006/01"), documentType, uuid.New().String())

	_, err = s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	if err := s.vehicleRepo.SetDocumentPath(ctx, chassisNumber, column, storagePath); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	return &Upload{
		ChassisNumber: chassisNumber,
		DocumentType:  documentType,
		StoragePath:   storagePath,
		URL:           s.publicURL(storagePath),
	}, nil
}

func (s *service) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}
