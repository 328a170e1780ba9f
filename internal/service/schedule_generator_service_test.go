package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classwise/timetabler/internal/compilecache"
	"github.com/classwise/timetabler/internal/dto"
	jobstore "github.com/classwise/timetabler/internal/jobs"
	"github.com/classwise/timetabler/internal/metrics"
	"github.com/classwise/timetabler/pkg/config"
	pkgjobs "github.com/classwise/timetabler/pkg/jobs"
)

func newGeneratorFixture(t *testing.T) (*ScheduleGeneratorService, *pkgjobs.Queue) {
	t.Helper()
	jobs := jobstore.NewStore(time.Hour)
	cache := compilecache.New(nil, metrics.New(), zap.NewNop(), compilecache.Config{Enabled: false})

	svc := NewScheduleGeneratorService(nil, cache, jobs, nil, validator.New(), metrics.New(), zap.NewNop(), config.GeneratorConfig{})
	queue := pkgjobs.NewQueue("generate", svc.Handle, pkgjobs.QueueConfig{Workers: 1})
	svc.queue = queue
	queue.Start(context.Background())
	t.Cleanup(queue.Stop)
	return svc, queue
}

func sampleRequest() dto.GenerateScheduleRequest {
	return dto.GenerateScheduleRequest{
		Catalog: []dto.CourseInput{
			{ID: "c1", Name: "Calculus", Credits: 3, Professor: "Kim", TimeSlots: []dto.TimeSlotInput{{Day: 0, Start: "09:00", End: "10:30"}}},
			{ID: "c2", Name: "Physics", Credits: 3, Professor: "Lee", TimeSlots: []dto.TimeSlotInput{{Day: 1, Start: "09:00", End: "10:30"}}},
		},
		MinCredits: 3,
		MaxCredits: 6,
		Required:   []dto.FilterInput{{ID: "c1"}},
		Desired:    []dto.FilterInput{{ID: "c2"}},
		Target:     10,
		BatchLimit: 10,
		Seed:       1,
	}
}

func TestScheduleGeneratorServiceSubmitAndPoll(t *testing.T) {
	svc, _ := newGeneratorFixture(t)

	submitted, err := svc.Submit(context.Background(), sampleRequest())
	require.NoError(t, err)
	require.NotEmpty(t, submitted.JobID)

	require.Eventually(t, func() bool {
		resp, err := svc.Poll(context.Background(), submitted.JobID)
		return err == nil && resp.Status == string(jobstore.StatusDone)
	}, time.Second, 5*time.Millisecond)

	resp, err := svc.Poll(context.Background(), submitted.JobID)
	require.NoError(t, err)
	assert.Equal(t, string(jobstore.StatusDone), resp.Status)
	assert.NotEmpty(t, resp.Schedules)
}

func TestScheduleGeneratorServiceSubmitRejectsMissingCatalog(t *testing.T) {
	svc, _ := newGeneratorFixture(t)

	req := sampleRequest()
	req.Catalog = nil
	req.CatalogRef = ""

	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
}

func TestScheduleGeneratorServicePollUnknownJob(t *testing.T) {
	svc, _ := newGeneratorFixture(t)

	_, err := svc.Poll(context.Background(), "does-not-exist")
	require.Error(t, err)
}
