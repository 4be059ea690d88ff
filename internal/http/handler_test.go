package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"qa-review-system.com/qa-review-system/internal/checklist"
	config "qa-review-system.com/qa-review-system/internal/configs"
	"qa-review-system.com/qa-review-system/internal/constants"
	"qa-review-system.com/qa-review-system/internal/locks"
	model "qa-review-system.com/qa-review-system/internal/models"
	"qa-review-system.com/qa-review-system/internal/notifications"
	repository "qa-review-system.com/qa-review-system/internal/repositories"
	"qa-review-system.com/qa-review-system/internal/services"
)

type apiTest struct {
	e  *echo.Echo
	db *gorm.DB
}

func newAPITest(t *testing.T) *apiTest {
	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	linkRepo := repository.NewLinkRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)

	template, err := checklist.ForVariant("standard")
	require.NoError(t, err)

	linkService := services.NewLinkService(linkRepo, logger)
	referenceService := services.NewReferenceService(referenceRepo, logger)
	accountService := services.NewAccountService(accountRepo, referenceService, logger)
	taskService := services.NewTaskService(
		taskRepo, accountRepo, linkService, linkRepo, referenceService,
		repository.NewTxManager(db), locks.Noop{},
		notifications.NewDispatcher(nil, 0, logger), template, logger,
	)

	e := echo.New()
	handler := NewHandler(linkService, taskService, accountService, referenceService,
		map[string]string{"qa_guidelines": "https://example.com/guidelines"})
	Register(e, handler, 1000)

	t.Cleanup(taskService.FlushNotifications)

	return &apiTest{e: e, db: db}
}

func (a *apiTest) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *apiTest) createAccount(t *testing.T, name string) *model.Account {
	account := &model.Account{Name: name, Status: constants.AccountActive}
	require.NoError(t, a.db.Create(account).Error)
	return account
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAddLinkEndpoint(t *testing.T) {
	api := newAPITest(t)

	rec := api.request(t, http.MethodPost, "/links",
		`{"url": "https://drive.google.com/file/d/FILE1/view"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"file_id":"FILE1"`)

	rec = api.request(t, http.MethodPost, "/links", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.request(t, http.MethodPost, "/links", `{"url": "https://example.com/nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.request(t, http.MethodPost, "/links",
		`{"url": "https://drive.google.com/file/d/FILE1/view"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBulkImportEndpoint(t *testing.T) {
	api := newAPITest(t)

	rec := api.request(t, http.MethodPost, "/links/bulk",
		`{"urls": ["https://drive.google.com/file/d/A1/view", "garbage"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	var added, errored []services.BulkResult
	require.NoError(t, json.Unmarshal(body["added"], &added))
	require.NoError(t, json.Unmarshal(body["errors"], &errored))
	assert.Len(t, added, 1)
	assert.Len(t, errored, 1)

	rec = api.request(t, http.MethodPost, "/links/bulk", `{"urls": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewFlowEndpoints(t *testing.T) {
	api := newAPITest(t)
	api.createAccount(t, "satisfying_clips")

	rec := api.request(t, http.MethodPost, "/links",
		`{"url": "https://drive.google.com/file/d/FILE1/view"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.request(t, http.MethodPost, "/qa/claim",
		`{"account_id": 1, "url": "https://drive.google.com/file/d/FILE1/view"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"qa_task_id":1`)

	rec = api.request(t, http.MethodPost, "/qa/steps",
		`{"qa_task_id": 1, "step": 1, "checks": {"audioQuality": true}, "comments": "ok"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.request(t, http.MethodPost, "/qa/complete",
		`{"qa_task_id": 1, "final_notes": "done", "completed_by": "reviewer"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"completed"`)

	// The task is terminal now.
	rec = api.request(t, http.MethodPost, "/qa/complete",
		`{"qa_task_id": 1, "final_notes": "again"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.request(t, http.MethodPost, "/qa/steps",
		`{"qa_task_id": 1, "step": 1, "checks": {}}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.request(t, http.MethodGet, "/qa/tasks", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"completed":1`)

	rec = api.request(t, http.MethodGet, "/qa/tasks/1/report", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "QA_Report_1_satisfying_clips.txt")
	assert.Contains(t, rec.Body.String(), "QA REVIEW REPORT")
}

func TestSubmitStepEndpoint_Validation(t *testing.T) {
	api := newAPITest(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing task id", `{"step": 1, "checks": {}}`},
		{"missing step", `{"qa_task_id": 1, "checks": {}}`},
		{"missing checks", `{"qa_task_id": 1, "step": 1}`},
		{"malformed json", `{"qa_task_id": `},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := api.request(t, http.MethodPost, "/qa/steps", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestClaimEndpoint_Errors(t *testing.T) {
	api := newAPITest(t)
	api.createAccount(t, "acc")

	rec := api.request(t, http.MethodPost, "/qa/claim", `{"url": "x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.request(t, http.MethodPost, "/qa/claim",
		`{"account_id": 1, "url": "https://drive.google.com/file/d/NOPE/view"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListLinksEndpoint(t *testing.T) {
	api := newAPITest(t)

	api.request(t, http.MethodPost, "/links",
		`{"url": "https://drive.google.com/file/d/FILE1/view"}`)

	rec := api.request(t, http.MethodGet, "/links", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)
}

func TestAccountsEndpoint(t *testing.T) {
	api := newAPITest(t)
	api.createAccount(t, "visible")

	disabled := &model.Account{Name: "hidden", Status: constants.AccountDisabled}
	require.NoError(t, api.db.Create(disabled).Error)

	rec := api.request(t, http.MethodGet, "/accounts", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "visible")
	assert.NotContains(t, rec.Body.String(), "hidden")
}

func TestQAConfigEndpoint(t *testing.T) {
	api := newAPITest(t)

	rec := api.request(t, http.MethodGet, "/qa/config", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://example.com/guidelines")
}
