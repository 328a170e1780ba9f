package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/classwise/timetabler/internal/dto"
	"github.com/classwise/timetabler/internal/engine"
)

type scheduleGeneratorMock struct {
	captured  dto.GenerateScheduleRequest
	polled    string
	exported  string
	schedules []engine.Schedule
}

func (m *scheduleGeneratorMock) Submit(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	m.captured = req
	return &dto.GenerateScheduleResponse{JobID: "job-1", Status: "queued"}, nil
}

func (m *scheduleGeneratorMock) Poll(ctx context.Context, jobID string) (*dto.GenerateScheduleResponse, error) {
	m.polled = jobID
	return &dto.GenerateScheduleResponse{JobID: jobID, Status: "done"}, nil
}

func (m *scheduleGeneratorMock) Export(ctx context.Context, jobID string) ([]engine.Schedule, error) {
	m.exported = jobID
	return m.schedules, nil
}

func TestScheduleGeneratorSubmitSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleGeneratorMock{}
	handler := &ScheduleGeneratorHandler{service: mockSvc}
	payload := []byte(`{"minCredits":3,"maxCredits":18,"catalog":[{"id":"c1","name":"Calculus","credits":3,"timeSlots":[{"day":0,"start":"09:00","end":"10:30"}]}]}`)
	req, _ := http.NewRequest(http.MethodPost, "/schedules/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Equal(t, 3, mockSvc.captured.MinCredits)
}

func TestScheduleGeneratorSubmitValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ScheduleGeneratorHandler{service: &scheduleGeneratorMock{}}
	req, _ := http.NewRequest(http.MethodPost, "/schedules/generate", bytes.NewReader([]byte(`{"minCredits":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleGeneratorJobPoll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleGeneratorMock{}
	handler := &ScheduleGeneratorHandler{service: mockSvc}
	req, _ := http.NewRequest(http.MethodGet, "/schedules/jobs/job-1", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}

	handler.Job(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "job-1", mockSvc.polled)
}

func TestScheduleGeneratorExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	course := engine.NewCourse("c1", "Calculus", 3, "Smith", []engine.TimeSlot{{Day: engine.Monday, Start: 540, End: 630}}, "", "")
	mockSvc := &scheduleGeneratorMock{schedules: []engine.Schedule{{Courses: []engine.Course{course}, TotalCredits: 3}}}
	handler := &ScheduleGeneratorHandler{service: mockSvc}
	req, _ := http.NewRequest(http.MethodGet, "/schedules/jobs/job-1/export", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}

	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "job-1", mockSvc.exported)
	require.Contains(t, w.Body.String(), "Calculus")
}
