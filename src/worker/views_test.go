package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"famwealth/src/schemas"
	"famwealth/src/services"
	"famwealth/src/worker"
	"famwealth/src/worker/controllers"
	"famwealth/src/worker/handlers"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBrokers struct {
	services.BrokerSyncServiceI
	err error
}

func (s *stubBrokers) SyncAll(context.Context, string) ([]*schemas.BrokerSyncResponse, error) {
	return nil, s.err
}

func newServer(brokers services.BrokerSyncServiceI) *worker.Server {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	c := controllers.NewController(brokers, nil, []string{"u1"}, logger)
	return worker.NewServer(handlers.NewHandler(c), logger)
}

func TestAlive(t *testing.T) {
	s := newServer(&stubBrokers{})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alive", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRunSyncAll(t *testing.T) {
	s := newServer(&stubBrokers{})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/jobs/sync-all", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var run schemas.JobRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, controllers.JobSyncAll, run.Job)
	assert.Equal(t, 1, run.Users)
}

func TestRunSyncAll_PartialFailure(t *testing.T) {
	s := newServer(&stubBrokers{err: errors.New("hdfc unreachable")})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/jobs/sync-all", nil))
	assert.Equal(t, http.StatusMultiStatus, rec.Code)
	assert.Contains(t, rec.Body.String(), "hdfc unreachable")
}

func TestListJobs_Empty(t *testing.T) {
	s := newServer(&stubBrokers{})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
