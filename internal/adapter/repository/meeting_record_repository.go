package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/mom-service/internal/domain/entities"
	"github.com/johnquangdev/mom-service/internal/domain/repositories"
)

// meetingRecordRepository implements the MeetingRecordRepository interface
type meetingRecordRepository struct {
	db *gorm.DB
}

// NewMeetingRecordRepository creates a new meeting record repository
func NewMeetingRecordRepository(db *gorm.DB) repositories.MeetingRecordRepository {
	return &meetingRecordRepository{db: db}
}

// Create creates a new meeting record
func (r *meetingRecordRepository) Create(ctx context.Context, record *entities.MeetingRecord) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}
	if missing := record.MissingFields(); len(missing) > 0 {
		return entities.ErrIncompleteRecord
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID retrieves a meeting record by its ID
func (r *meetingRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingRecord, error) {
	var record entities.MeetingRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// UpdateArtifacts updates the generated document paths
func (r *meetingRecordRepository) UpdateArtifacts(ctx context.Context, id uuid.UUID, docPath, pdfPath *string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.MeetingRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"generated_doc_path": docPath,
			"generated_pdf_path": pdfPath,
			"updated_at":         time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrMeetingRecordNotFound
	}
	return nil
}

// Delete deletes a meeting record
func (r *meetingRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entities.MeetingRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrMeetingRecordNotFound
	}
	return nil
}

// ListByTask retrieves all records for a task ordered by creation time
func (r *meetingRecordRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*entities.MeetingRecord, error) {
	var records []*entities.MeetingRecord
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListTaskCounts groups records by task
func (r *meetingRecordRepository) ListTaskCounts(ctx context.Context) ([]*entities.TaskRecordCount, error) {
	var rows []struct {
		TaskID       uuid.UUID
		RecordCount  int64
		LastRecordAt time.Time
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.MeetingRecord{}).
		Select("task_id, COUNT(*) AS record_count, MAX(created_at) AS last_record_at").
		Group("task_id").
		Order("last_record_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make([]*entities.TaskRecordCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, &entities.TaskRecordCount{
			TaskID:       row.TaskID,
			RecordCount:  row.RecordCount,
			LastRecordAt: row.LastRecordAt,
		})
	}
	return counts, nil
}
