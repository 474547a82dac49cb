package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bizdesk/internal/config"
	"bizdesk/internal/domain"
	"bizdesk/internal/service"
	"bizdesk/mocks"
)

type attachmentFixture struct {
	attachRepo  *mocks.MockAttachmentRepo
	invoiceRepo *mocks.MockInvoiceRepo
	noteRepo    *mocks.MockCreditNoteRepo
	storage     *mocks.MockObjectStorage
	svc         service.AttachmentService
}

func newAttachmentFixture() *attachmentFixture {
	f := &attachmentFixture{
		attachRepo:  new(mocks.MockAttachmentRepo),
		invoiceRepo: new(mocks.MockInvoiceRepo),
		noteRepo:    new(mocks.MockCreditNoteRepo),
		storage:     new(mocks.MockObjectStorage),
	}
	cfg := &config.S3Config{
		Bucket:        "bizdesk-test",
		MaxFileSizeMB: 25,
		PresignExpiry: 3600,
	}
	f.svc = service.NewAttachmentService(f.attachRepo, f.invoiceRepo, f.noteRepo, f.storage, cfg)
	return f
}

func TestAttachmentService_GetDownloadURL(t *testing.T) {
	f := newAttachmentFixture()

	tenantID := uuid.New()
	attachmentID := uuid.New()
	att := &domain.Attachment{
		ID:       attachmentID,
		TenantID: tenantID,
		S3Bucket: "bizdesk-test",
		S3Key:    "tenants/x/invoice/y/file.pdf",
	}
	f.attachRepo.On("GetByID", mock.Anything, tenantID, attachmentID).Return(att, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "bizdesk-test", att.S3Key, int64(3600)).
		Return("https://s3.test/presigned", nil)

	url, err := f.svc.GetDownloadURL(context.Background(), tenantID, attachmentID)

	assert.NoError(t, err)
	assert.Equal(t, "https://s3.test/presigned", url)
}

func TestAttachmentService_GetDownloadURL_NotFound(t *testing.T) {
	f := newAttachmentFixture()

	tenantID := uuid.New()
	attachmentID := uuid.New()
	f.attachRepo.On("GetByID", mock.Anything, tenantID, attachmentID).Return(nil, domain.ErrNotFound)

	_, err := f.svc.GetDownloadURL(context.Background(), tenantID, attachmentID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.storage.AssertNotCalled(t, "GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachmentService_Delete_RemovesObjectAndRow(t *testing.T) {
	f := newAttachmentFixture()

	tenantID := uuid.New()
	attachmentID := uuid.New()
	att := &domain.Attachment{
		ID:       attachmentID,
		TenantID: tenantID,
		S3Bucket: "bizdesk-test",
		S3Key:    "tenants/x/invoice/y/file.pdf",
	}
	f.attachRepo.On("GetByID", mock.Anything, tenantID, attachmentID).Return(att, nil)
	f.storage.On("Delete", mock.Anything, "bizdesk-test", att.S3Key).Return(nil)
	f.attachRepo.On("Delete", mock.Anything, tenantID, attachmentID).Return(nil)

	err := f.svc.Delete(context.Background(), tenantID, attachmentID)

	assert.NoError(t, err)
	f.storage.AssertExpectations(t)
	f.attachRepo.AssertExpectations(t)
}

func TestAttachmentService_Delete_StorageFailureStillDeletesRow(t *testing.T) {
	f := newAttachmentFixture()

	tenantID := uuid.New()
	attachmentID := uuid.New()
	att := &domain.Attachment{
		ID:       attachmentID,
		TenantID: tenantID,
		S3Bucket: "bizdesk-test",
		S3Key:    "tenants/x/invoice/y/file.pdf",
	}
	f.attachRepo.On("GetByID", mock.Anything, tenantID, attachmentID).Return(att, nil)
	f.storage.On("Delete", mock.Anything, "bizdesk-test", att.S3Key).Return(assert.AnError)
	f.attachRepo.On("Delete", mock.Anything, tenantID, attachmentID).Return(nil)

	err := f.svc.Delete(context.Background(), tenantID, attachmentID)

	assert.NoError(t, err)
	f.attachRepo.AssertExpectations(t)
}

func TestAttachmentService_ListByReference(t *testing.T) {
	f := newAttachmentFixture()

	tenantID := uuid.New()
	refID := uuid.New()
	atts := []domain.Attachment{{ID: uuid.New()}, {ID: uuid.New()}}
	f.attachRepo.On("ListByReference", mock.Anything, tenantID, domain.ReferenceInvoice, refID).Return(atts, nil)

	result, err := f.svc.ListByReference(context.Background(), tenantID, domain.ReferenceInvoice, refID)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
}
