package service

import (
	"github.com/jobslist/jobslist-api/internal/config"
	"github.com/jobslist/jobslist-api/internal/repository"
)

type Services struct {
	Auth *AuthService
	Job  *JobService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth: NewAuthService(repos.User, cfg),
		Job:  NewJobService(repos.Job),
	}
}
