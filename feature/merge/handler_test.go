package merge

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"row-merger/core/dataset"
	apperrors "row-merger/core/errors"
	"row-merger/feature/merge/models"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T, withHistory bool) (*fiber.App, *testEnv) {
	env := setupService(t, withHistory)
	app := fiber.New()
	NewHandler(env.service).RegisterRoutes(app)
	return app, env
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, []byte) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestHandleMerge(t *testing.T) {
	app, _ := setupTestApp(t, true)

	status, body := postJSON(t, app, "/merge", models.InlineRequest{Old: oldDataset, New: newDataset})
	require.Equal(t, 200, status, string(body))

	var res models.Result
	require.NoError(t, json.Unmarshal(body, &res))
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, []string{"name", "dept"}, res.Header)
	assert.Len(t, res.Rows, 3)
	assert.Equal(t, 1, res.Summary.MergedGroups)

	t.Run("Run Is Retrievable", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/merge/runs/"+res.RunID, nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var run models.MergeRun
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
		assert.Equal(t, res.RunID, run.ID)
		assert.Equal(t, "inline:old", run.OldSource)
	})

	t.Run("Runs Are Listed", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/merge/runs?limit=5", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var runs []models.MergeRun
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
		assert.Len(t, runs, 1)
	})
}

func TestHandleMerge_CSV(t *testing.T) {
	app, _ := setupTestApp(t, false)

	raw, err := json.Marshal(models.InlineRequest{
		Old: &dataset.Dataset{Header: []string{"name"}, Rows: [][]string{{"John Doe"}}},
		New: &dataset.Dataset{Rows: [][]string{{"Doe John"}}},
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/merge?format=csv", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.NotEmpty(t, resp.Header.Get("X-Merge-Run-ID"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "name\nDoe John\n", string(body))
}

func TestHandleMerge_Errors(t *testing.T) {
	app, _ := setupTestApp(t, false)

	t.Run("Malformed Body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/merge", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Missing Dataset", func(t *testing.T) {
		status, _ := postJSON(t, app, "/merge", models.InlineRequest{Old: oldDataset})
		assert.Equal(t, 400, status)
	})

	t.Run("Bad Threshold Query", func(t *testing.T) {
		status, _ := postJSON(t, app, "/merge?threshold=abc", models.InlineRequest{Old: oldDataset, New: newDataset})
		assert.Equal(t, 400, status)
	})

	t.Run("History Disabled", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/merge/runs", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("Invalid Run ID", func(t *testing.T) {
		app, _ := setupTestApp(t, true)
		resp, err := app.Test(httptest.NewRequest("GET", "/merge/runs/not-a-uuid", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestHandleMerge_ThresholdQuery(t *testing.T) {
	app, _ := setupTestApp(t, false)

	status, body := postJSON(t, app, "/merge?threshold=101", models.InlineRequest{Old: oldDataset, New: newDataset})
	require.Equal(t, 200, status)

	var res models.Result
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Len(t, res.Rows, 4)
	assert.Equal(t, 101.0, res.Summary.Threshold)
}

func TestHandleMergeRefs(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app, env := setupTestApp(t, false)
		env.client.On("GetObject", mock.Anything, "datasets", "old.csv", mock.Anything).
			Return(io.NopCloser(strings.NewReader("name\nJohn Doe\n")), nil)
		env.client.On("GetObject", mock.Anything, "datasets", "new.csv", mock.Anything).
			Return(io.NopCloser(strings.NewReader("name\nJane Smith\n")), nil)

		status, body := postJSON(t, app, "/merge/refs", models.RefRequest{Old: "s3://old.csv", New: "s3://new.csv"})
		require.Equal(t, 200, status, string(body))

		var res models.Result
		require.NoError(t, json.Unmarshal(body, &res))
		assert.Equal(t, [][]string{{"Jane Smith"}, {"John Doe"}}, res.Rows)
	})

	t.Run("Storage Failure", func(t *testing.T) {
		app, env := setupTestApp(t, false)
		env.client.On("GetObject", mock.Anything, "datasets", mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		status, _ := postJSON(t, app, "/merge/refs", models.RefRequest{Old: "s3://old.csv", New: "s3://new.csv"})
		assert.Equal(t, 502, status)
	})

	t.Run("Missing Object", func(t *testing.T) {
		app, env := setupTestApp(t, false)
		env.client.On("GetObject", mock.Anything, "datasets", mock.Anything, mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		status, _ := postJSON(t, app, "/merge/refs", models.RefRequest{Old: "s3://old.csv", New: "s3://new.csv"})
		assert.Equal(t, 404, status)
	})

	t.Run("Bad Reference", func(t *testing.T) {
		app, _ := setupTestApp(t, false)

		status, _ := postJSON(t, app, "/merge/refs", models.RefRequest{Old: "ftp://x", New: "s3://new.csv"})
		assert.Equal(t, 400, status)
	})
}

func TestHandlePlan(t *testing.T) {
	app, _ := setupTestApp(t, false)

	status, body := postJSON(t, app, "/merge/plan", models.InlineRequest{Old: oldDataset, New: newDataset})
	require.Equal(t, 200, status)

	var plan map[string]any
	require.NoError(t, json.Unmarshal(body, &plan))
	groups, ok := plan["groups"].([]any)
	require.True(t, ok)
	assert.Len(t, groups, 3)

	t.Run("Threshold Query", func(t *testing.T) {
		threshold := 80.0
		status, body := postJSON(t, app, "/merge/plan?threshold=101", models.InlineRequest{Old: oldDataset, New: newDataset, Threshold: &threshold})
		require.Equal(t, 200, status)

		var plan map[string]any
		require.NoError(t, json.Unmarshal(body, &plan))
		groups, ok := plan["groups"].([]any)
		require.True(t, ok)
		assert.Len(t, groups, 4)
	})

	t.Run("Bad Threshold Query", func(t *testing.T) {
		status, _ := postJSON(t, app, "/merge/plan?threshold=abc", models.InlineRequest{Old: oldDataset, New: newDataset})
		assert.Equal(t, 400, status)
	})
}

func TestHandleScore(t *testing.T) {
	app, _ := setupTestApp(t, false)

	resp, err := app.Test(httptest.NewRequest("GET", "/merge/score?a=John+Doe&b=Doe+John", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var score models.ScoreResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&score))
	assert.Equal(t, "John Doe", score.A)
	assert.Equal(t, 100.0, score.Score)
}

func TestHandleListDatasets(t *testing.T) {
	app, env := setupTestApp(t, false)

	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Key: "a.csv"}
	close(ch)
	env.client.On("ListObjects", mock.Anything, "datasets", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	resp, err := app.Test(httptest.NewRequest("GET", "/merge/datasets", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["count"])
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.NewValidationError("x", "bad"), 400},
		{apperrors.NewNotFoundError("run", "1"), 404},
		{apperrors.NewSourceError("s3://a", "load", assert.AnError), 502},
		{apperrors.NewSourceError("s3://a", "load", apperrors.NewNotFoundError("object", "a")), 404},
		{assert.AnError, 500},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}
