package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jobslist/jobslist-api/internal/domain"
	"gorm.io/gorm"
)

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *jobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) CreateMany(ctx context.Context, jobs []*domain.Job) error {
	return r.db.WithContext(ctx).Create(&jobs).Error
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	var job domain.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Job{}, "id = ?", id).Error
}

func (r *jobRepository) List(ctx context.Context, search string, limit, offset int) ([]*domain.Job, error) {
	var jobs []*domain.Job
	err := r.searchScope(ctx, search).
		Order("posted_at DESC, id").
		Limit(limit).
		Offset(offset).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) Count(ctx context.Context, search string) (int64, error) {
	var total int64
	err := r.searchScope(ctx, search).Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// searchScope applies the case-insensitive substring filter over title,
// company and location. An empty search matches everything.
func (r *jobRepository) searchScope(ctx context.Context, search string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.Job{})
	if search == "" {
		return q
	}
	pattern := likePattern(search)
	return q.Where(
		"title ILIKE ? OR company ILIKE ? OR location ILIKE ?",
		pattern, pattern, pattern,
	)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps the search term for ILIKE, escaping metacharacters so
// user input is always matched literally.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}
