package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jobslist/jobslist-api/internal/api/middleware"
	"github.com/jobslist/jobslist-api/internal/api/response"
	"github.com/jobslist/jobslist-api/internal/domain"
	"github.com/jobslist/jobslist-api/internal/service"
)

type JobHandler struct {
	jobService *service.JobService
}

func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

type ListJobsResponse struct {
	Data        []*domain.Job `json:"data"`
	Count       int           `json:"count"`
	Total       int64         `json:"total"`
	Pages       int           `json:"pages"`
	CurrentPage int           `json:"currentPage"`
}

type BatchCreateResponse struct {
	Count int           `json:"count"`
	Data  []*domain.Job `json:"data"`
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	params := service.ListParams{
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
		Search: r.URL.Query().Get("search"),
	}

	result, err := h.jobService.List(r.Context(), params)
	if err != nil {
		log.Printf("ERROR [job.List]: %v", err)
		response.Error(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	response.JSON(w, http.StatusOK, ListJobsResponse{
		Data:        result.Jobs,
		Count:       len(result.Jobs),
		Total:       result.Total,
		Pages:       result.Pages,
		CurrentPage: result.CurrentPage,
	})
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "Job not found")
		return
	}

	job, err := h.jobService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			response.Error(w, http.StatusNotFound, "Job not found")
			return
		}
		log.Printf("ERROR [job.Get]: %v", err)
		response.Error(w, http.StatusInternalServerError, "Failed to get job")
		return
	}

	response.JSON(w, http.StatusOK, job)
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input service.JobInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	job, err := h.jobService.Create(r.Context(), identity.UserID, input)
	if err != nil {
		h.writeJobError(w, "job.Create", err)
		return
	}

	response.JSON(w, http.StatusCreated, job)
}

func (h *JobHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var inputs []service.JobInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body: expected a JSON array of jobs")
		return
	}

	jobs, err := h.jobService.CreateBatch(r.Context(), identity.UserID, inputs)
	if err != nil {
		h.writeJobError(w, "job.CreateBatch", err)
		return
	}

	response.JSON(w, http.StatusCreated, BatchCreateResponse{
		Count: len(jobs),
		Data:  jobs,
	})
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "Job not found")
		return
	}

	var input service.JobInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	job, err := h.jobService.Update(r.Context(), identity.UserID, id, input)
	if err != nil {
		h.writeJobError(w, "job.Update", err)
		return
	}

	response.JSON(w, http.StatusOK, job)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "Job not found")
		return
	}

	job, err := h.jobService.Delete(r.Context(), identity.UserID, id)
	if err != nil {
		h.writeJobError(w, "job.Delete", err)
		return
	}

	response.JSON(w, http.StatusOK, job)
}

func (h *JobHandler) writeJobError(w http.ResponseWriter, op string, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Error(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, domain.ErrInvalidJobType):
		response.Error(w, http.StatusBadRequest, domain.ErrInvalidJobType.Error())
	case errors.Is(err, domain.ErrJobNotFound):
		response.Error(w, http.StatusNotFound, "Job not found")
	case errors.Is(err, domain.ErrNotJobOwner):
		response.Error(w, http.StatusForbidden, "Not authorized to modify this job")
	default:
		log.Printf("ERROR [%s]: %v", op, err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

// queryInt parses a positive integer query parameter, returning 0 when the
// parameter is absent or malformed so the service applies its default.
func queryInt(r *http.Request, key string) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0
	}
	return n
}
