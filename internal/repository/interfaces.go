package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jobslist/jobslist-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	CreateMany(ctx context.Context, jobs []*domain.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]*domain.Job, error)
	Count(ctx context.Context, search string) (int64, error)
}

type Repositories struct {
	User UserRepository
	Job  JobRepository
}
