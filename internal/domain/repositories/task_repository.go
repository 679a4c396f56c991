package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/mom-service/internal/domain/entities"
)

// TaskRepository gives read access to tasks owned by the task subsystem
type TaskRepository interface {
	// FindByID retrieves a task by ID. Returns nil, nil when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)

	// FindByIDs retrieves the tasks with the given IDs, keyed by ID
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Task, error)
}
