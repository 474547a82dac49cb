package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"bizdesk/internal/config"
	"bizdesk/internal/domain"
	"bizdesk/internal/port"
)

// AttachmentUploadInput is the DTO for attachment upload requests.
type AttachmentUploadInput struct {
	TenantID      uuid.UUID
	UploadedBy    uuid.UUID
	ReferenceType domain.ReferenceType
	ReferenceID   uuid.UUID
	File          multipart.File
	Header        *multipart.FileHeader
}

// AttachmentService defines the attachment management contract.
type AttachmentService interface {
	Upload(ctx context.Context, input AttachmentUploadInput) (*domain.Attachment, error)
	ListByReference(ctx context.Context, tenantID uuid.UUID, refType domain.ReferenceType, refID uuid.UUID) ([]domain.Attachment, error)
	GetDownloadURL(ctx context.Context, tenantID, attachmentID uuid.UUID) (string, error)
	Delete(ctx context.Context, tenantID, attachmentID uuid.UUID) error
}

type attachmentService struct {
	attachRepo  port.AttachmentRepository
	invoiceRepo port.InvoiceRepository
	noteRepo    port.CreditNoteRepository
	storage     port.ObjectStorage
	cfg         *config.S3Config
}

// NewAttachmentService creates a new AttachmentService implementation.
func NewAttachmentService(
	attachRepo port.AttachmentRepository,
	invoiceRepo port.InvoiceRepository,
	noteRepo port.CreditNoteRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) AttachmentService {
	return &attachmentService{
		attachRepo:  attachRepo,
		invoiceRepo: invoiceRepo,
		noteRepo:    noteRepo,
		storage:     storage,
		cfg:         cfg,
	}
}

// checkReference verifies the referenced document exists within the tenant
// before accepting an upload against it.
func (s *attachmentService) checkReference(ctx context.Context, tenantID uuid.UUID, refType domain.ReferenceType, refID uuid.UUID) error {
	switch refType {
	case domain.ReferenceInvoice:
		_, err := s.invoiceRepo.GetByID(ctx, tenantID, refID)
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return domain.ErrNotFound
		}
		return err
	case domain.ReferenceCreditNote:
		_, err := s.noteRepo.GetByID(ctx, tenantID, refID)
		return err
	default:
		return domain.ErrNotFound
	}
}

func (s *attachmentService) Upload(ctx context.Context, input AttachmentUploadInput) (*domain.Attachment, error) {
	if err := s.checkReference(ctx, input.TenantID, input.ReferenceType, input.ReferenceID); err != nil {
		return nil, err
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])

	ext, ok := domain.AllowedAttachmentTypes[detectedType]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	attachmentID := uuid.New()
	s3Key := fmt.Sprintf("tenants/%s/%s/%s/%s", input.TenantID, input.ReferenceType, input.ReferenceID, attachmentID)

	att := &domain.Attachment{
		ID:            attachmentID,
		TenantID:      input.TenantID,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
		UploadedBy:    input.UploadedBy,
		FileName:      attachmentID.String() + "." + ext,
		OriginalName:  input.Header.Filename,
		FileSize:      input.Header.Size,
		ContentType:   detectedType,
		S3Bucket:      s.cfg.Bucket,
		S3Key:         s3Key,
	}

	log.Printf("attachmentService.Upload: uploading %s (%s, %d bytes) against %s %s",
		input.Header.Filename, detectedType, input.Header.Size, input.ReferenceType, input.ReferenceID)

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: detectedType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("attachmentService.Upload: storage upload failed: %v", err)
		return nil, domain.ErrUploadFailed
	}

	if err := s.attachRepo.Create(ctx, att); err != nil {
		// Best effort cleanup of the orphaned object.
		_ = s.storage.Delete(ctx, s.cfg.Bucket, s3Key)
		return nil, fmt.Errorf("creating attachment metadata: %w", err)
	}

	return att, nil
}

func (s *attachmentService) ListByReference(ctx context.Context, tenantID uuid.UUID, refType domain.ReferenceType, refID uuid.UUID) ([]domain.Attachment, error) {
	return s.attachRepo.ListByReference(ctx, tenantID, refType, refID)
}

func (s *attachmentService) GetDownloadURL(ctx context.Context, tenantID, attachmentID uuid.UUID) (string, error) {
	att, err := s.attachRepo.GetByID(ctx, tenantID, attachmentID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, att.S3Bucket, att.S3Key, s.cfg.PresignExpiry)
}

func (s *attachmentService) Delete(ctx context.Context, tenantID, attachmentID uuid.UUID) error {
	att, err := s.attachRepo.GetByID(ctx, tenantID, attachmentID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, att.S3Bucket, att.S3Key); err != nil {
		log.Printf("attachmentService.Delete: storage delete failed for %s: %v", att.ID, err)
	}
	return s.attachRepo.Delete(ctx, tenantID, attachmentID)
}
