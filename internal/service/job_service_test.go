package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jobslist/jobslist-api/internal/domain"
	"github.com/jobslist/jobslist-api/internal/repository/postgres"
	"github.com/jobslist/jobslist-api/internal/service"
	"github.com/jobslist/jobslist-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJobInput() service.JobInput {
	salary := 85000.0
	return service.JobInput{
		Title:       "Cook",
		Company:     "Acme",
		Location:    "NYC",
		Description: "Prepare meals for the team.",
		Salary:      &salary,
		JobType:     domain.JobTypeFullTime,
	}
}

func TestJobService_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	jobService := service.NewJobService(repos.Job)
	ctx := context.Background()

	tests := []struct {
		name       string
		mutate     func(*service.JobInput)
		wantErr    error
		wantFields []string
	}{
		{
			name:   "valid submission",
			mutate: func(in *service.JobInput) {},
		},
		{
			name:   "salary is optional",
			mutate: func(in *service.JobInput) { in.Salary = nil },
		},
		{
			name:       "missing title",
			mutate:     func(in *service.JobInput) { in.Title = "" },
			wantFields: []string{"title"},
		},
		{
			name: "missing several fields",
			mutate: func(in *service.JobInput) {
				in.Company = ""
				in.Description = ""
				in.JobType = ""
			},
			wantFields: []string{"company", "description", "jobType"},
		},
		{
			name:    "invalid job type",
			mutate:  func(in *service.JobInput) { in.JobType = "Freelance" },
			wantErr: domain.ErrInvalidJobType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean up between tests
			testDB.Truncate(t)
			owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

			input := validJobInput()
			tt.mutate(&input)

			job, err := jobService.Create(ctx, owner.ID, input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantFields != nil {
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantFields, ve.Fields)

				// Nothing may be persisted on a rejected submission
				count, countErr := repos.Job.Count(ctx, "")
				require.NoError(t, countErr)
				assert.Zero(t, count)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, owner.ID, job.UserID)
			assert.False(t, job.PostedAt.IsZero())

			// Round trip: fetching by id returns the same field values
			fetched, err := jobService.GetByID(ctx, job.ID)
			require.NoError(t, err)
			assert.Equal(t, job.Title, fetched.Title)
			assert.Equal(t, job.Company, fetched.Company)
			assert.Equal(t, job.Location, fetched.Location)
			assert.Equal(t, job.Description, fetched.Description)
			assert.Equal(t, job.JobType, fetched.JobType)
			assert.Equal(t, job.UserID, fetched.UserID)
			if job.Salary != nil {
				require.NotNil(t, fetched.Salary)
				assert.Equal(t, *job.Salary, *fetched.Salary)
			}
		})
	}
}

func TestJobService_CreateBatch(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	jobService := service.NewJobService(repos.Job)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("inserts all records", func(t *testing.T) {
		testDB.Truncate(t)
		owner, _ = testutil.NewUserBuilder().Build(t, testDB.DB)

		inputs := make([]service.JobInput, 3)
		for i := range inputs {
			inputs[i] = validJobInput()
			inputs[i].Title = fmt.Sprintf("Role %d", i)
		}

		jobs, err := jobService.CreateBatch(ctx, owner.ID, inputs)
		require.NoError(t, err)
		require.Len(t, jobs, 3)
		for _, job := range jobs {
			assert.Equal(t, owner.ID, job.UserID)
		}

		total, err := repos.Job.Count(ctx, "")
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
	})

	t.Run("one invalid element persists nothing", func(t *testing.T) {
		testDB.Truncate(t)
		owner, _ = testutil.NewUserBuilder().Build(t, testDB.DB)

		bad := validJobInput()
		bad.Location = ""
		inputs := []service.JobInput{validJobInput(), bad}

		_, err := jobService.CreateBatch(ctx, owner.ID, inputs)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)

		total, err := repos.Job.Count(ctx, "")
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("empty batch is rejected", func(t *testing.T) {
		_, err := jobService.CreateBatch(ctx, owner.ID, nil)
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestJobService_List_Pagination(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	jobService := service.NewJobService(repos.Job)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	// 25 jobs with strictly increasing postedAt
	base := time.Now().Add(-48 * time.Hour)
	for i := 0; i < 25; i++ {
		testutil.NewJobBuilder().
			WithOwner(owner).
			WithTitle(fmt.Sprintf("Role %02d", i)).
			WithPostedAt(base.Add(time.Duration(i) * time.Minute)).
			Build(t, testDB.DB)
	}

	tests := []struct {
		name      string
		params    service.ListParams
		wantCount int
		wantPage  int
		wantPages int
	}{
		{
			name:      "defaults apply",
			params:    service.ListParams{},
			wantCount: 10,
			wantPage:  1,
			wantPages: 3,
		},
		{
			name:      "last page is partial",
			params:    service.ListParams{Page: 3, Limit: 10},
			wantCount: 5,
			wantPage:  3,
			wantPages: 3,
		},
		{
			name:      "page past the end is empty",
			params:    service.ListParams{Page: 9, Limit: 10},
			wantCount: 0,
			wantPage:  9,
			wantPages: 3,
		},
		{
			name:      "limit of one",
			params:    service.ListParams{Page: 1, Limit: 1},
			wantCount: 1,
			wantPage:  1,
			wantPages: 25,
		},
		{
			name:      "negative values fall back to defaults",
			params:    service.ListParams{Page: -4, Limit: -1},
			wantCount: 10,
			wantPage:  1,
			wantPages: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := jobService.List(ctx, tt.params)
			require.NoError(t, err)

			assert.Len(t, result.Jobs, tt.wantCount)
			assert.EqualValues(t, 25, result.Total)
			assert.Equal(t, tt.wantPages, result.Pages)
			assert.Equal(t, tt.wantPage, result.CurrentPage)
		})
	}

	t.Run("newest first across pages", func(t *testing.T) {
		first, err := jobService.List(ctx, service.ListParams{Page: 1, Limit: 10})
		require.NoError(t, err)
		second, err := jobService.List(ctx, service.ListParams{Page: 2, Limit: 10})
		require.NoError(t, err)

		assert.Equal(t, "Role 24", first.Jobs[0].Title)
		prev := first.Jobs[0].PostedAt
		for _, job := range append(first.Jobs[1:], second.Jobs...) {
			assert.False(t, job.PostedAt.After(prev), "jobs must be ordered newest first")
			prev = job.PostedAt
		}
	})
}

func TestJobService_List_Search(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	jobService := service.NewJobService(repos.Job)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	build := func(title, company, location string) {
		testutil.NewJobBuilder().
			WithOwner(owner).
			WithTitle(title).
			WithCompany(company).
			WithLocation(location).
			Build(t, testDB.DB)
	}
	build("Backend Engineer", "Initech", "Berlin")
	build("Chef", "Berliner Bakery", "Hamburg")
	build("Waiter", "Acme", "berlin-mitte")
	build("Designer", "Globex", "Lisbon")

	tests := []struct {
		name       string
		search     string
		wantTotal  int64
		wantTitles []string
	}{
		{
			name:       "matches title, company and location",
			search:     "berlin",
			wantTotal:  3,
			wantTitles: []string{"Backend Engineer", "Chef", "Waiter"},
		},
		{
			name:       "case insensitive",
			search:     "GLOBEX",
			wantTotal:  1,
			wantTitles: []string{"Designer"},
		},
		{
			name:      "no match excludes everything",
			search:    "astronaut",
			wantTotal: 0,
		},
		{
			name:      "empty search matches all",
			search:    "",
			wantTotal: 4,
		},
		{
			name:      "metacharacters are literal",
			search:    "%",
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := jobService.List(ctx, service.ListParams{Search: tt.search})
			require.NoError(t, err)

			assert.Equal(t, tt.wantTotal, result.Total)
			if tt.wantTitles != nil {
				titles := make([]string, len(result.Jobs))
				for i, job := range result.Jobs {
					titles[i] = job.Title
				}
				assert.ElementsMatch(t, tt.wantTitles, titles)
			}
		})
	}
}

func TestJobService_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	jobService := service.NewJobService(repos.Job)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	job := testutil.NewJobBuilder().WithOwner(owner).WithTitle("Original").Build(t, testDB.DB)

	t.Run("owner can update", func(t *testing.T) {
		input := validJobInput()
		input.Title = "Updated"
		input.JobType = domain.JobTypeContract

		updated, err := jobService.Update(ctx, owner.ID, job.ID, input)
		require.NoError(t, err)
		assert.Equal(t, "Updated", updated.Title)
		assert.Equal(t, domain.JobTypeContract, updated.JobType)
		assert.Equal(t, owner.ID, updated.UserID)
		assert.Equal(t, job.PostedAt.UTC().Truncate(time.Millisecond), updated.PostedAt.UTC().Truncate(time.Millisecond))
	})

	t.Run("non-owner is rejected and record unchanged", func(t *testing.T) {
		input := validJobInput()
		input.Title = "Hijacked"

		_, err := jobService.Update(ctx, stranger.ID, job.ID, input)
		assert.ErrorIs(t, err, domain.ErrNotJobOwner)

		current, err := jobService.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.NotEqual(t, "Hijacked", current.Title)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := jobService.Update(ctx, owner.ID, uuid.New(), validJobInput())
		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})

	t.Run("invalid job type is rejected", func(t *testing.T) {
		input := validJobInput()
		input.JobType = "Internship"

		_, err := jobService.Update(ctx, owner.ID, job.ID, input)
		assert.ErrorIs(t, err, domain.ErrInvalidJobType)
	})
}

func TestJobService_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	jobService := service.NewJobService(repos.Job)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("non-owner cannot delete", func(t *testing.T) {
		job := testutil.NewJobBuilder().WithOwner(owner).Build(t, testDB.DB)

		_, err := jobService.Delete(ctx, stranger.ID, job.ID)
		assert.ErrorIs(t, err, domain.ErrNotJobOwner)

		// Record still exists
		_, err = jobService.GetByID(ctx, job.ID)
		assert.NoError(t, err)
	})

	t.Run("owner delete is physical and returns prior state", func(t *testing.T) {
		job := testutil.NewJobBuilder().WithOwner(owner).WithTitle("Doomed").Build(t, testDB.DB)

		deleted, err := jobService.Delete(ctx, owner.ID, job.ID)
		require.NoError(t, err)
		assert.Equal(t, "Doomed", deleted.Title)

		_, err = jobService.GetByID(ctx, job.ID)
		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := jobService.Delete(ctx, owner.ID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})
}
