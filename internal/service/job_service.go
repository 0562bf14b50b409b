package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jobslist/jobslist-api/internal/domain"
	"github.com/jobslist/jobslist-api/internal/repository"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type JobService struct {
	jobRepo repository.JobRepository
}

func NewJobService(jobRepo repository.JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

// ListParams holds pagination and search inputs. Zero or negative values
// fall back to the defaults rather than erroring.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

type ListResult struct {
	Jobs        []*domain.Job
	Total       int64
	Pages       int
	CurrentPage int
}

// List returns one page of jobs matching the search term, newest first,
// together with the total match count across all pages.
func (s *JobService) List(ctx context.Context, params ListParams) (*ListResult, error) {
	params = params.normalized()
	offset := (params.Page - 1) * params.Limit

	jobs, err := s.jobRepo.List(ctx, params.Search, params.Limit, offset)
	if err != nil {
		return nil, err
	}

	// The count runs under the same filter but is independent of the
	// page window.
	total, err := s.jobRepo.Count(ctx, params.Search)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(params.Limit) - 1) / int64(params.Limit))

	return &ListResult{
		Jobs:        jobs,
		Total:       total,
		Pages:       pages,
		CurrentPage: params.Page,
	}, nil
}

func (s *JobService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

type JobInput struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Salary      *float64 `json:"salary"`
	JobType     string   `json:"jobType"`
}

func (in JobInput) validate() error {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Company == "" {
		missing = append(missing, "company")
	}
	if in.Location == "" {
		missing = append(missing, "location")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if in.JobType == "" {
		missing = append(missing, "jobType")
	}
	if len(missing) > 0 {
		return domain.NewValidationError(missing...)
	}
	if !domain.IsValidJobType(in.JobType) {
		return domain.ErrInvalidJobType
	}
	return nil
}

// Create validates the submission and persists a new job owned by userID.
func (s *JobService) Create(ctx context.Context, userID uuid.UUID, input JobInput) (*domain.Job, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	job := &domain.Job{
		ID:          uuid.New(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		Description: input.Description,
		Salary:      input.Salary,
		JobType:     input.JobType,
		PostedAt:    time.Now(),
		UserID:      userID,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// CreateBatch validates every element before anything is written, then
// inserts all records in a single call. A failure persists nothing.
func (s *JobService) CreateBatch(ctx context.Context, userID uuid.UUID, inputs []JobInput) ([]*domain.Job, error) {
	if len(inputs) == 0 {
		return nil, domain.NewValidationError("jobs")
	}
	for _, in := range inputs {
		if err := in.validate(); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	jobs := make([]*domain.Job, len(inputs))
	for i, in := range inputs {
		jobs[i] = &domain.Job{
			ID:          uuid.New(),
			Title:       in.Title,
			Company:     in.Company,
			Location:    in.Location,
			Description: in.Description,
			Salary:      in.Salary,
			JobType:     in.JobType,
			PostedAt:    now,
			UserID:      userID,
		}
	}

	if err := s.jobRepo.CreateMany(ctx, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// Update replaces the mutable fields of the job. The caller must be the
// owner; the owner reference and postedAt timestamp never change.
func (s *JobService) Update(ctx context.Context, userID, jobID uuid.UUID, input JobInput) (*domain.Job, error) {
	job, err := s.getOwned(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	job.Title = input.Title
	job.Company = input.Company
	job.Location = input.Location
	job.Description = input.Description
	job.Salary = input.Salary
	job.JobType = input.JobType

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes the job permanently and returns its prior state.
func (s *JobService) Delete(ctx context.Context, userID, jobID uuid.UUID) (*domain.Job, error) {
	job, err := s.getOwned(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return nil, err
	}
	return job, nil
}

// getOwned fetches the job and enforces the ownership check. Not-found and
// not-owner are distinct errors so handlers can answer 404 vs 403.
func (s *JobService) getOwned(ctx context.Context, userID, jobID uuid.UUID) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}
	if job.UserID != userID {
		return nil, domain.ErrNotJobOwner
	}
	return job, nil
}
