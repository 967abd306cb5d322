//go:build integration_test || all_tests

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/2beens/healthdash/internal/dashboard"
	"github.com/2beens/healthdash/internal/middleware"
	"github.com/2beens/healthdash/internal/projection"
	"github.com/2beens/healthdash/internal/series"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) do(ctx context.Context, method, path string, body []byte, token string) (int, []byte) {
	t := s.T()
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, bytes.NewReader(body))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) TestWeightsAndProjection() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	status, body := s.do(ctx, http.MethodGet, "/weights", nil, "")
	require.Equal(t, http.StatusOK, status)

	var weightsView struct {
		Message string               `json:"message"`
		Data    []series.Observation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &weightsView))
	assert.Empty(t, weightsView.Message)
	require.Len(t, weightsView.Data, 3)
	assert.Equal(t, 81.4, weightsView.Data[2].Value)

	status, body = s.do(ctx, http.MethodGet, "/projection", nil, "")
	require.Equal(t, http.StatusOK, status)

	var projectionView struct {
		Data dashboard.ProjectionView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &projectionView))
	// the horizon may have been changed by another test
	assert.Len(t, projectionView.Data.Points, projectionView.Data.Horizon.Days)
	require.NotEmpty(t, projectionView.Data.Points)
	assert.InDelta(t, 81.3, projectionView.Data.Points[0].Weight, 1e-9)
}

func (s *IntegrationTestSuite) TestExport() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	status, body := s.do(ctx, http.MethodGet, "/export.csv", nil, "")
	require.Equal(t, http.StatusOK, status)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	// header, 3 weights, 1 sleep, 1 steps
	assert.Len(t, lines, 6)
}

func (s *IntegrationTestSuite) TestReloadAndHorizon() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	status, _ := s.do(ctx, http.MethodPost, "/reload", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := s.do(ctx, http.MethodPost, "/reload", nil, testAdminToken)
	require.Equal(t, http.StatusOK, status)
	var reload dashboard.ReloadView
	require.NoError(t, json.Unmarshal(body, &reload))
	assert.Empty(t, reload.Unavailable)

	status, body = s.do(ctx, http.MethodPut, "/preferences/horizon", []byte(`{"days":45}`), testAdminToken)
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = s.do(ctx, http.MethodGet, "/preferences/horizon", nil, "")
	require.Equal(t, http.StatusOK, status)
	var horizon projection.Horizon
	require.NoError(t, json.Unmarshal(body, &horizon))
	assert.Equal(t, 45, horizon.Days)

	status, _ = s.do(ctx, http.MethodPut, "/preferences/horizon", []byte(`{"days":0}`), testAdminToken)
	assert.Equal(t, http.StatusBadRequest, status)
}
