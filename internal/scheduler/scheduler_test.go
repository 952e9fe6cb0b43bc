package scheduler

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnquant/portfolio-daily/pkg/config"
	"github.com/vnquant/portfolio-daily/pkg/logger"
)

type stubJob struct {
	name     string
	schedule string
	runs     int
	err      error
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return j.schedule }
func (j *stubJob) Run(ctx context.Context) error {
	j.runs++
	return j.err
}

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func TestScheduler_AddJob(t *testing.T) {
	s := New(testLogger())

	job := &stubJob{name: "daily-report", schedule: "0 0 6 * * *"}
	require.NoError(t, s.AddJob(job))

	// Duplicate names are rejected
	err := s.AddJob(&stubJob{name: "daily-report", schedule: "@hourly"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestScheduler_AddJob_BadSchedule(t *testing.T) {
	s := New(testLogger())

	err := s.AddJob(&stubJob{name: "broken", schedule: "whenever"})
	require.Error(t, err)
}

func TestScheduler_RunJobNow(t *testing.T) {
	s := New(testLogger())

	job := &stubJob{name: "daily-report", schedule: "0 0 6 * * *"}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJobNow("daily-report"))
	assert.Equal(t, 1, job.runs)

	history, err := s.GetJobHistory("daily-report")
	require.NoError(t, err)
	require.NotNil(t, history.Latest())
	assert.True(t, history.Latest().Success)

	require.Error(t, s.RunJobNow("missing"))
}

func TestScheduler_RecordsFailure(t *testing.T) {
	s := New(testLogger())

	job := &stubJob{name: "flaky", schedule: "@hourly", err: fmt.Errorf("provider down")}
	require.NoError(t, s.AddJob(job))
	require.NoError(t, s.RunJobNow("flaky"))

	history, err := s.GetJobHistory("flaky")
	require.NoError(t, err)
	require.NotNil(t, history.Latest())
	assert.False(t, history.Latest().Success)
	assert.Equal(t, "provider down", history.Latest().Error)
}

func TestJobHistory_Caps(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: "j", Success: true})
	}
	assert.Len(t, h.Results, 100)
}
