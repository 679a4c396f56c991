package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/mom-service/internal/domain/entities"
)

// MeetingRecordRepository defines the interface for meeting record data access
type MeetingRecordRepository interface {
	// Create persists a new meeting record
	Create(ctx context.Context, record *entities.MeetingRecord) error

	// FindByID retrieves a record by ID. Returns nil, nil when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingRecord, error)

	// UpdateArtifacts stores the generated document paths of a record
	UpdateArtifacts(ctx context.Context, id uuid.UUID, docPath, pdfPath *string) error

	// Delete removes a record
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByTask retrieves all records of a task, newest first
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*entities.MeetingRecord, error)

	// ListTaskCounts returns every task that has at least one record, with counts
	ListTaskCounts(ctx context.Context) ([]*entities.TaskRecordCount, error)
}
