package v1

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vigia-app/vigia-backend/internal/alert"
	"github.com/vigia-app/vigia-backend/internal/config"
	"github.com/vigia-app/vigia-backend/internal/models"
	"github.com/vigia-app/vigia-backend/internal/service"
	"github.com/vigia-app/vigia-backend/internal/service/mocks"
	"github.com/vigia-app/vigia-backend/internal/sos"
	"github.com/vigia-app/vigia-backend/pkg/e"
)

type stubEventStore struct{}

func (stubEventStore) InsertEvent(context.Context, *models.SOSEvent) error { return nil }

type stubBlobStore struct{}

func (stubBlobStore) UploadBlob(_ context.Context, key string, _ []byte) (string, error) {
	return "/api/v1/sos/audio/" + key, nil
}

type stubAlertPublisher struct{}

func (stubAlertPublisher) Publish(context.Context, alert.Event) error { return nil }

type stubSOSStore struct {
	data   map[string][]byte
	events []*models.SOSEvent
}

func (s *stubSOSStore) GetBlob(_ context.Context, key string) ([]byte, error) {
	data, ok := s.data[key]
	if !ok {
		return nil, e.ErrNotFound
	}
	return data, nil
}

func (s *stubSOSStore) ListEventsByUser(_ context.Context, userID uuid.UUID, _ int) ([]*models.SOSEvent, error) {
	matched := make([]*models.SOSEvent, 0)
	for _, event := range s.events {
		if event.UserID == userID {
			matched = append(matched, event)
		}
	}
	return matched, nil
}

type testEnv struct {
	reports      *mocks.MockReportService
	verification *mocks.MockVerificationService
	leaderboard  *mocks.MockLeaderboardService
	directory    *mocks.MockAuthDirectory
	sosStore     *stubSOSStore
	beacons      *sos.Manager
	router       *gin.Engine
}

// newTestHandler builds a Handler with mocked services and a real SOS
// manager wired to stub stores.
func newTestHandler(t *testing.T) *testEnv {
	ctrl := gomock.NewController(t)

	env := &testEnv{
		reports:      mocks.NewMockReportService(ctrl),
		verification: mocks.NewMockVerificationService(ctrl),
		leaderboard:  mocks.NewMockLeaderboardService(ctrl),
		directory:    mocks.NewMockAuthDirectory(ctrl),
		sosStore:     &stubSOSStore{data: map[string][]byte{}},
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // silence logs in tests

	cfg := &config.Config{
		SOSEmitInterval: time.Hour, // only the immediate emission fires in tests
	}

	env.beacons = sos.NewManager(env.directory, stubEventStore{}, stubBlobStore{}, stubAlertPublisher{}, logger, cfg)
	t.Cleanup(env.beacons.StopAll)

	services := &service.Service{
		Reports:      env.reports,
		Verification: env.verification,
		Leaderboard:  env.leaderboard,
	}
	handler := NewHandler(services, env.beacons, env.sosStore, env.directory, logger)

	gin.SetMode(gin.TestMode)
	env.router = gin.New()
	api := env.router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return env
}

// makeRequest performs an HTTP request against the test router.
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// expectIdentity registers the directory lookup the identity middleware
// performs and returns the header to attach to requests.
func expectIdentity(env *testEnv, identity *models.UserIdentity) map[string]string {
	env.directory.EXPECT().
		CurrentUser(gomock.Any(), identity.ID).
		Return(identity, nil).
		AnyTimes()
	return map[string]string{"X-User-ID": identity.ID.String()}
}

func testIdentity() *models.UserIdentity {
	return &models.UserIdentity{
		ID:           uuid.New(),
		AnonHandle:   "vecino-742",
		Role:         models.RoleUser,
		Neighborhood: "Centro",
	}
}

func TestCreateReport_Success(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)

	reqBody := CreateReportRequest{
		Category:    "theft",
		Latitude:    19.4326,
		Longitude:   -99.1332,
		Description: "Bike stolen outside the market",
	}
	reportID := uuid.New()

	env.reports.EXPECT().
		CreateReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Report) error {
			assert.Equal(t, identity.ID, r.UserID)
			assert.Equal(t, models.CategoryTheft, r.Category)
			r.ID = reportID
			r.CreatedAt = time.Now()
			return nil
		}).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(env.router, "POST", "/api/v1/reports", bytes.NewBuffer(bodyBytes), headers)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp ReportResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, reportID, resp.ID)
	assert.Equal(t, "theft", resp.Category)
}

func TestCreateReport_InvalidJSON(t *testing.T) {
	env := newTestHandler(t)
	headers := expectIdentity(env, testIdentity())

	env.reports.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, "POST", "/api/v1/reports", bytes.NewBufferString(`{"category": "theft"`), headers)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateReport_UnknownCategory(t *testing.T) {
	env := newTestHandler(t)
	headers := expectIdentity(env, testIdentity())

	env.reports.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Times(0)

	reqBody := CreateReportRequest{Category: "jaywalking", Latitude: 19.4, Longitude: -99.1}
	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(env.router, "POST", "/api/v1/reports", bytes.NewBuffer(bodyBytes), headers)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Category")
}

func TestCreateReport_MissingIdentity(t *testing.T) {
	env := newTestHandler(t)

	env.reports.EXPECT().CreateReport(gomock.Any(), gomock.Any()).Times(0)

	reqBody := CreateReportRequest{Category: "theft", Latitude: 19.4, Longitude: -99.1}
	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(env.router, "POST", "/api/v1/reports", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "user identity required")
}

func TestListReports_Success(t *testing.T) {
	env := newTestHandler(t)
	expected := []*models.Report{
		{ID: uuid.New(), Category: models.CategoryTheft, Verified: true},
		{ID: uuid.New(), Category: models.CategoryTheft, Verified: true},
	}

	env.reports.EXPECT().
		ListVerifiedReports(gomock.Any(), models.CategoryTheft, 2, 10).
		Return(expected, nil).
		Times(1)

	w := makeRequest(env.router, "GET", "/api/v1/reports?category=theft&page=2&pageSize=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []*ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, expected[0].ID, resp[0].ID)
}

func TestListReports_UnknownCategory(t *testing.T) {
	env := newTestHandler(t)

	env.reports.EXPECT().
		ListVerifiedReports(gomock.Any(), models.ReportCategory("pickpocket"), 1, 20).
		Return(nil, fmt.Errorf("unknown category: %w", e.ErrInvalidInput)).
		Times(1)

	w := makeRequest(env.router, "GET", "/api/v1/reports?category=pickpocket", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown category")
}

func TestGetReport_Success(t *testing.T) {
	env := newTestHandler(t)
	reportID := uuid.New()
	expected := &models.Report{ID: reportID, Category: models.CategoryAssault, Verified: true}

	env.reports.EXPECT().GetReport(gomock.Any(), reportID).Return(expected, nil).Times(1)

	w := makeRequest(env.router, "GET", fmt.Sprintf("/api/v1/reports/%s", reportID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, reportID, resp.ID)
}

func TestGetReport_InvalidID(t *testing.T) {
	env := newTestHandler(t)

	env.reports.EXPECT().GetReport(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, "GET", "/api/v1/reports/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid report ID")
}

func TestGetReport_NotFound(t *testing.T) {
	env := newTestHandler(t)
	reportID := uuid.New()

	env.reports.EXPECT().GetReport(gomock.Any(), reportID).Return(nil, e.ErrReportNotFound).Times(1)

	w := makeRequest(env.router, "GET", fmt.Sprintf("/api/v1/reports/%s", reportID), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "report not found")
}

func TestListMyReports_Success(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)
	expected := []*models.Report{{ID: uuid.New(), UserID: identity.ID, Category: models.CategoryVandalism}}

	env.reports.EXPECT().ListUserReports(gomock.Any(), identity.ID).Return(expected, nil).Times(1)

	w := makeRequest(env.router, "GET", "/api/v1/reports/mine", nil, headers)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []*ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}

func TestListUnverifiedReports_Success(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)
	expected := []*models.Report{{ID: uuid.New(), Category: models.CategoryTheft}}

	env.verification.EXPECT().
		ListVerifiableReports(gomock.Any(), identity, gomock.Not(gomock.Nil())).
		Return(expected, nil).
		Times(1)

	w := makeRequest(env.router, "GET", "/api/v1/reports/unverified?lat=19.4326&lng=-99.1332", nil, headers)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []*ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}

func TestListUnverifiedReports_MissingLocation(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)

	env.verification.EXPECT().
		ListVerifiableReports(gomock.Any(), identity, gomock.Nil()).
		Return(nil, e.ErrLocationUnavailable).
		Times(1)

	w := makeRequest(env.router, "GET", "/api/v1/reports/unverified", nil, headers)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "location required")
}

func verifyBody(t *testing.T, lat, lng float64) *bytes.Buffer {
	t.Helper()
	bodyBytes, err := json.Marshal(VerifyReportRequest{Latitude: &lat, Longitude: &lng})
	require.NoError(t, err)
	return bytes.NewBuffer(bodyBytes)
}

func TestVerifyReport_Success(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)
	reportID := uuid.New()

	env.verification.EXPECT().
		VerifyReport(gomock.Any(), identity, reportID, gomock.Not(gomock.Nil())).
		Return(nil).
		Times(1)

	w := makeRequest(env.router, "POST", fmt.Sprintf("/api/v1/reports/%s/verify", reportID), verifyBody(t, 19.4326, -99.1332), headers)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "verified")
}

func TestVerifyReport_SelfVerification(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)
	reportID := uuid.New()

	env.verification.EXPECT().
		VerifyReport(gomock.Any(), identity, reportID, gomock.Any()).
		Return(e.ErrSelfVerification).
		Times(1)

	w := makeRequest(env.router, "POST", fmt.Sprintf("/api/v1/reports/%s/verify", reportID), verifyBody(t, 19.4326, -99.1332), headers)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "your own report")
}

func TestVerifyReport_TooFar(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)
	reportID := uuid.New()

	env.verification.EXPECT().
		VerifyReport(gomock.Any(), identity, reportID, gomock.Any()).
		Return(&e.TooFarError{DistanceMeters: 412.7}).
		Times(1)

	w := makeRequest(env.router, "POST", fmt.Sprintf("/api/v1/reports/%s/verify", reportID), verifyBody(t, 19.4326, -99.1332), headers)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "too far from incident", resp["error"])
	assert.Equal(t, float64(413), resp["distance_meters"])
}

func TestVerifyReport_AlreadyVerified(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)
	reportID := uuid.New()

	env.verification.EXPECT().
		VerifyReport(gomock.Any(), identity, reportID, gomock.Any()).
		Return(e.ErrAlreadyVerified).
		Times(1)

	w := makeRequest(env.router, "POST", fmt.Sprintf("/api/v1/reports/%s/verify", reportID), verifyBody(t, 19.4326, -99.1332), headers)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already verified")
}

func TestVerifyReport_NotFound(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)
	reportID := uuid.New()

	env.verification.EXPECT().
		VerifyReport(gomock.Any(), identity, reportID, gomock.Any()).
		Return(e.ErrReportNotFound).
		Times(1)

	w := makeRequest(env.router, "POST", fmt.Sprintf("/api/v1/reports/%s/verify", reportID), verifyBody(t, 19.4326, -99.1332), headers)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyReport_LocationUnavailable(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)
	reportID := uuid.New()

	env.verification.EXPECT().
		VerifyReport(gomock.Any(), identity, reportID, gomock.Nil()).
		Return(e.ErrLocationUnavailable).
		Times(1)

	w := makeRequest(env.router, "POST", fmt.Sprintf("/api/v1/reports/%s/verify", reportID), bytes.NewBufferString(`{}`), headers)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "location required")
}

func TestLeaderboard_Success(t *testing.T) {
	env := newTestHandler(t)
	expected := []*models.Neighborhood{
		{ID: uuid.New(), Name: "Centro", TotalReports: 10, VerifiedReports: 8, CurrentPrize: "5000 MXN"},
		{ID: uuid.New(), Name: "Roma Norte", TotalReports: 4, VerifiedReports: 1},
	}

	env.leaderboard.EXPECT().Leaderboard(gomock.Any()).Return(expected, nil).Times(1)

	w := makeRequest(env.router, "GET", "/api/v1/neighborhoods/leaderboard", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []*NeighborhoodResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Centro", resp[0].Name)
	assert.Equal(t, 80, resp[0].VerifiedPercent)
}

func sosStartBody(t *testing.T, lat, lng float64, audio bool) *bytes.Buffer {
	t.Helper()
	bodyBytes, err := json.Marshal(SOSStartRequest{Latitude: &lat, Longitude: &lng, Audio: audio})
	require.NoError(t, err)
	return bytes.NewBuffer(bodyBytes)
}

func TestSOSStart_Success(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)

	w := makeRequest(env.router, "POST", "/api/v1/sos/start", sosStartBody(t, 19.4326, -99.1332, false), headers)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp SOSStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Active)
	require.NotNil(t, resp.StartedAt)
	assert.True(t, env.beacons.Active(identity.ID))
}

func TestSOSStart_MissingLocation(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)

	w := makeRequest(env.router, "POST", "/api/v1/sos/start", bytes.NewBufferString(`{"audio": true}`), headers)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "location required")
	assert.False(t, env.beacons.Active(identity.ID))
}

func TestSOSStatus_ReflectsLifecycle(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)

	w := makeRequest(env.router, "GET", "/api/v1/sos", nil, headers)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"active":false`)

	makeRequest(env.router, "POST", "/api/v1/sos/start", sosStartBody(t, 19.4326, -99.1332, false), headers)

	w = makeRequest(env.router, "GET", "/api/v1/sos", nil, headers)
	assert.Contains(t, w.Body.String(), `"active":true`)

	w = makeRequest(env.router, "POST", "/api/v1/sos/stop", nil, headers)
	assert.Equal(t, http.StatusOK, w.Code)

	w = makeRequest(env.router, "GET", "/api/v1/sos", nil, headers)
	assert.Contains(t, w.Body.String(), `"active":false`)
}

func TestSOSLocation_NoArmedBeacon(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)

	body := bytes.NewBufferString(`{"latitude": 19.43, "longitude": -99.13}`)
	w := makeRequest(env.router, "POST", "/api/v1/sos/location", body, headers)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no armed beacon")
}

func TestSOSLocationAndAudio_PushIntoSession(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)

	makeRequest(env.router, "POST", "/api/v1/sos/start", sosStartBody(t, 19.4326, -99.1332, true), headers)

	body := bytes.NewBufferString(`{"latitude": 19.44, "longitude": -99.14}`)
	w := makeRequest(env.router, "POST", "/api/v1/sos/location", body, headers)
	assert.Equal(t, http.StatusOK, w.Code)

	chunk := base64.StdEncoding.EncodeToString([]byte("audio-bytes"))
	audioBody, _ := json.Marshal(SOSAudioRequest{Chunk: chunk})
	w = makeRequest(env.router, "POST", "/api/v1/sos/audio", bytes.NewBuffer(audioBody), headers)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSOSAudio_InvalidEncoding(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)

	w := makeRequest(env.router, "POST", "/api/v1/sos/audio", bytes.NewBufferString(`{"chunk": "%%%not-base64%%%"}`), headers)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Chunk")
}

func TestSOSAudioGet_ServesStoredObject(t *testing.T) {
	env := newTestHandler(t)
	key := uuid.New().String() + "/2026-08-29T12:00:00Z"
	env.sosStore.data[key] = []byte("stored audio")

	w := makeRequest(env.router, "GET", "/api/v1/sos/audio/"+key, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "stored audio", w.Body.String())
}

func TestSOSEvents_ReturnsOwnHistory(t *testing.T) {
	env := newTestHandler(t)
	identity := testIdentity()
	headers := expectIdentity(env, identity)
	env.sosStore.events = []*models.SOSEvent{
		{ID: 2, UserID: identity.ID, Latitude: 19.44, Longitude: -99.14, CreatedAt: time.Now()},
		{ID: 1, UserID: uuid.New(), Latitude: 20.0, Longitude: -98.0, CreatedAt: time.Now()},
	}

	w := makeRequest(env.router, "GET", "/api/v1/sos/events", nil, headers)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []*SOSEventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, int64(2), resp[0].ID)
}

func TestSOSAudioGet_NotFound(t *testing.T) {
	env := newTestHandler(t)

	w := makeRequest(env.router, "GET", "/api/v1/sos/audio/missing-key", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "audio not found")
}

func TestHealthCheck(t *testing.T) {
	env := newTestHandler(t)

	w := makeRequest(env.router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
