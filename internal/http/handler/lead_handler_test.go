package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/pipeforge/lead-api/internal/http/handler"
	"github.com/pipeforge/lead-api/internal/repository"
	"github.com/pipeforge/lead-api/internal/service"
	"github.com/pipeforge/lead-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newLeadAPI wires the lead handler onto a router backed by real services and
// an in-memory database. Caller identity comes from the X-Tenant-ID and
// X-User-ID request headers; requests without them reach the handlers with no
// user context, the same as an unresolved tenant in production.
func newLeadAPI(t *testing.T) http.Handler {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zap.NewNop()

	leadRepo := repository.NewLeadRepository(db)
	activityRepo := repository.NewLeadActivityRepository(db)
	eventRepo := repository.NewLifecycleEventRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	numberSvc := service.NewLeadNumberService(repository.NewLeadNumberSequenceRepository(db), log)
	assignmentSvc := service.NewAssignmentService(leadRepo, log)
	leadSvc := service.NewLeadService(leadRepo, activityRepo, eventRepo, notificationRepo, numberSvc, assignmentSvc, log)
	statsSvc := service.NewLeadStatsService(leadRepo, log)
	exportSvc := service.NewLeadExportService(leadRepo, nil, log)

	h := handler.NewLeadHandler(leadSvc, statsSvc, exportSvc, log)

	r := chi.NewRouter()
	r.Use(headerAuth)
	r.Route("/leads", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/stats", h.GetStats)
		r.Get("/export", h.Export)
		r.Get("/{id}", h.GetByID)
		r.Patch("/{id}", h.Update)
		r.Post("/{id}/qualify", h.Qualify)
		r.Post("/{id}/convert", h.Convert)
		r.Post("/{id}/assign", h.Assign)
		r.Get("/{id}/activities", h.ListActivities)
		r.Post("/{id}/activities", h.CreateActivity)
		r.Get("/{id}/history", h.GetHistory)
	})
	return r
}

func doJSON(t *testing.T, api http.Handler, method, path string, body interface{}, tenant, user string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tenant != "" {
		req.Header.Set("X-Tenant-ID", tenant)
	}
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}

	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	return rec
}

func createLeadViaAPI(t *testing.T, api http.Handler, tenant string) domain.LeadDTO {
	t.Helper()

	rec := doJSON(t, api, http.MethodPost, "/leads", map[string]interface{}{
		"contactName": "Jane Prospect",
		"source":      "website",
	}, tenant, "user-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var lead domain.LeadDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
	return lead
}

func TestLeadHandler_CreateAndGet(t *testing.T) {
	api := newLeadAPI(t)

	lead := createLeadViaAPI(t, api, "acme")
	assert.Equal(t, "LEAD-00001", lead.LeadNumber)
	assert.Equal(t, domain.LeadStatusNew, lead.Status)

	rec := doJSON(t, api, http.MethodGet, "/leads/"+lead.ID.String(), nil, "acme", "user-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched domain.LeadDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, lead.ID, fetched.ID)
}

func TestLeadHandler_Create_ValidationError(t *testing.T) {
	api := newLeadAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/leads", map[string]interface{}{
		"source": "website",
	}, "acme", "user-1")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "Validation Error", apiErr.Title)
	assert.Contains(t, apiErr.Errors, "contactName")
}

func TestLeadHandler_NoTenantIsForbidden(t *testing.T) {
	api := newLeadAPI(t)

	// Authenticated caller, but the token carried no tenant
	rec := doJSON(t, api, http.MethodPost, "/leads", map[string]interface{}{
		"contactName": "Jane Prospect",
		"source":      "website",
	}, "", "user-1")
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = doJSON(t, api, http.MethodGet, "/leads", nil, "", "user-1")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLeadHandler_GetByID_NotFound(t *testing.T) {
	api := newLeadAPI(t)

	rec := doJSON(t, api, http.MethodGet, "/leads/"+uuid.NewString(), nil, "acme", "user-1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeadHandler_GetByID_CrossTenantReadsAsMissing(t *testing.T) {
	api := newLeadAPI(t)

	lead := createLeadViaAPI(t, api, "acme")

	rec := doJSON(t, api, http.MethodGet, "/leads/"+lead.ID.String(), nil, "globex", "user-2")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeadHandler_GetByID_InvalidUUID(t *testing.T) {
	api := newLeadAPI(t)

	rec := doJSON(t, api, http.MethodGet, "/leads/not-a-uuid", nil, "acme", "user-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeadHandler_Update_UnknownFieldRejected(t *testing.T) {
	api := newLeadAPI(t)

	lead := createLeadViaAPI(t, api, "acme")

	rec := doJSON(t, api, http.MethodPatch, "/leads/"+lead.ID.String(), map[string]interface{}{
		"contactName":     "New Name",
		"favouriteColour": "teal",
	}, "acme", "user-1")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "favouriteColour")
}

func TestLeadHandler_Update_StatusTransition(t *testing.T) {
	api := newLeadAPI(t)

	lead := createLeadViaAPI(t, api, "acme")

	rec := doJSON(t, api, http.MethodPatch, "/leads/"+lead.ID.String(), map[string]interface{}{
		"status": "contacted",
	}, "acme", "user-1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated domain.LeadDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, domain.LeadStatusContacted, updated.Status)

	// Converted is never reachable through a plain update
	rec = doJSON(t, api, http.MethodPatch, "/leads/"+lead.ID.String(), map[string]interface{}{
		"status": "converted",
	}, "acme", "user-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeadHandler_Convert_SecondCallConflicts(t *testing.T) {
	api := newLeadAPI(t)

	lead := createLeadViaAPI(t, api, "acme")
	body := map[string]interface{}{"customerId": uuid.NewString()}

	rec := doJSON(t, api, http.MethodPost, fmt.Sprintf("/leads/%s/convert", lead.ID), body, "acme", "user-1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp domain.ConvertLeadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Lead.ConvertedToCustomer)

	rec = doJSON(t, api, http.MethodPost, fmt.Sprintf("/leads/%s/convert", lead.ID), body, "acme", "user-1")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLeadHandler_Qualify(t *testing.T) {
	api := newLeadAPI(t)

	lead := createLeadViaAPI(t, api, "acme")

	rec := doJSON(t, api, http.MethodPost, fmt.Sprintf("/leads/%s/qualify", lead.ID), map[string]interface{}{
		"budget":    50000,
		"authority": true,
		"need":      "Replacing a legacy CRM",
		"timeline":  "immediate",
	}, "acme", "user-1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var qualified domain.LeadDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &qualified))
	assert.Equal(t, domain.LeadStatusQualified, qualified.Status)
	assert.Greater(t, qualified.Score, lead.Score)
}

func TestLeadHandler_Qualify_AdjustmentOutOfRange(t *testing.T) {
	api := newLeadAPI(t)

	lead := createLeadViaAPI(t, api, "acme")

	rec := doJSON(t, api, http.MethodPost, fmt.Sprintf("/leads/%s/qualify", lead.ID), map[string]interface{}{
		"adjustment": 150,
	}, "acme", "user-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeadHandler_Activities(t *testing.T) {
	api := newLeadAPI(t)

	lead := createLeadViaAPI(t, api, "acme")

	rec := doJSON(t, api, http.MethodPost, fmt.Sprintf("/leads/%s/activities", lead.ID), map[string]interface{}{
		"activityType": "call",
		"subject":      "Intro call",
	}, "acme", "user-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, api, http.MethodGet, fmt.Sprintf("/leads/%s/activities", lead.ID), nil, "acme", "user-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.PaginatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Total)
}

func TestLeadHandler_History(t *testing.T) {
	api := newLeadAPI(t)

	lead := createLeadViaAPI(t, api, "acme")

	rec := doJSON(t, api, http.MethodGet, fmt.Sprintf("/leads/%s/history", lead.ID), nil, "acme", "user-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var events []domain.LifecycleEventDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventLeadCreated, events[0].EventType)
}

func TestLeadHandler_Stats(t *testing.T) {
	api := newLeadAPI(t)

	createLeadViaAPI(t, api, "acme")
	createLeadViaAPI(t, api, "acme")

	rec := doJSON(t, api, http.MethodGet, "/leads/stats", nil, "acme", "user-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats domain.LeadStatsDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(2), stats.Total)
}

func TestLeadHandler_Export(t *testing.T) {
	api := newLeadAPI(t)

	createLeadViaAPI(t, api, "acme")

	rec := doJSON(t, api, http.MethodGet, "/leads/export", nil, "acme", "user-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "leads-acme-")
	assert.Contains(t, rec.Body.String(), "LEAD-00001")
}

func TestLeadHandler_List_Filters(t *testing.T) {
	api := newLeadAPI(t)

	createLeadViaAPI(t, api, "acme")

	rec := doJSON(t, api, http.MethodGet, "/leads?status=new", nil, "acme", "user-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.PaginatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Total)

	rec = doJSON(t, api, http.MethodGet, "/leads?status=lost", nil, "acme", "user-1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(0), page.Total)
}
