package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jobslist/jobslist-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndAuthenticate creates a user via the API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	registerBody, _ := json.Marshal(map[string]string{
		"username": b.username,
		"email":    b.email,
		"password": b.password,
	})

	resp, err := http.Post(ts.APIURL("/user/register"), "application/json", bytes.NewBuffer(registerBody))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected register status code: %d", resp.StatusCode)
	}

	var registered struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&registered); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}

	loginBody, _ := json.Marshal(map[string]string{
		"email":    b.email,
		"password": b.password,
	})

	loginResp, err := http.Post(ts.APIURL("/user/login"), "application/json", bytes.NewBuffer(loginBody))
	if err != nil {
		t.Fatalf("failed to login user: %v", err)
	}
	defer loginResp.Body.Close()

	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", loginResp.StatusCode)
	}

	var login struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(loginResp.Body).Decode(&login); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	userID, _ := uuid.Parse(registered.ID)
	user := &domain.User{
		ID:       userID,
		Username: registered.Username,
		Email:    registered.Email,
	}

	return user, login.AccessToken
}

// JobBuilder creates test jobs with a builder pattern
type JobBuilder struct {
	owner       *domain.User
	title       string
	company     string
	location    string
	description string
	salary      *float64
	jobType     string
	postedAt    time.Time
}

// NewJobBuilder creates a new JobBuilder with default values
func NewJobBuilder() *JobBuilder {
	return &JobBuilder{
		title:       "Software Engineer",
		company:     "Acme Corp",
		location:    "Remote",
		description: "Build and maintain backend services.",
		jobType:     domain.JobTypeFullTime,
		postedAt:    time.Now(),
	}
}

// WithOwner sets the owning user
func (b *JobBuilder) WithOwner(user *domain.User) *JobBuilder {
	b.owner = user
	return b
}

// WithTitle sets the title
func (b *JobBuilder) WithTitle(title string) *JobBuilder {
	b.title = title
	return b
}

// WithCompany sets the company
func (b *JobBuilder) WithCompany(company string) *JobBuilder {
	b.company = company
	return b
}

// WithLocation sets the location
func (b *JobBuilder) WithLocation(location string) *JobBuilder {
	b.location = location
	return b
}

// WithDescription sets the description
func (b *JobBuilder) WithDescription(description string) *JobBuilder {
	b.description = description
	return b
}

// WithSalary sets the salary
func (b *JobBuilder) WithSalary(salary float64) *JobBuilder {
	b.salary = &salary
	return b
}

// WithJobType sets the job type
func (b *JobBuilder) WithJobType(jobType string) *JobBuilder {
	b.jobType = jobType
	return b
}

// WithPostedAt sets the posting timestamp
func (b *JobBuilder) WithPostedAt(postedAt time.Time) *JobBuilder {
	b.postedAt = postedAt
	return b
}

// Build creates the job in the database
func (b *JobBuilder) Build(t *testing.T, db *gorm.DB) *domain.Job {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	job := &domain.Job{
		ID:          uuid.New(),
		Title:       b.title,
		Company:     b.company,
		Location:    b.location,
		Description: b.description,
		Salary:      b.salary,
		JobType:     b.jobType,
		PostedAt:    b.postedAt,
		UserID:      b.owner.ID,
	}

	if err := db.Create(job).Error; err != nil {
		t.Fatalf("failed to create job: %v", err)
	}

	return job
}
