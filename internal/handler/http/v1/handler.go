package v1

import (
	"context"
	"encoding/base64"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vigia-app/vigia-backend/internal/models"
	"github.com/vigia-app/vigia-backend/internal/service"
	"github.com/vigia-app/vigia-backend/internal/sos"
	"github.com/vigia-app/vigia-backend/pkg/e"
	"github.com/vigia-app/vigia-backend/pkg/geo"
)

// SOSStore serves persisted SOS data back to clients: stored audio objects
// and the requester's emission history.
type SOSStore interface {
	GetBlob(ctx context.Context, key string) ([]byte, error)
	ListEventsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.SOSEvent, error)
}

type Handler struct {
	services  *service.Service
	beacons   *sos.Manager
	sosStore  SOSStore
	directory service.AuthDirectory
	logger    *logrus.Logger
	validate  *validator.Validate
}

func NewHandler(
	services *service.Service,
	beacons *sos.Manager,
	sosStore SOSStore,
	directory service.AuthDirectory,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		services:  services,
		beacons:   beacons,
		sosStore:  sosStore,
		directory: directory,
		logger:    logger,
		validate:  validator.New(),
	}
}

// @Summary Submit a new incident report
// @Description Create a geolocated incident report on behalf of the requesting user.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body CreateReportRequest true "Report submission"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [post]
func (h *Handler) createReport(c *gin.Context) {
	identity := identityFrom(c)
	log := h.logger.WithField("method", "createReport")

	var input CreateReportRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := &models.Report{
		UserID:      identity.ID,
		Category:    models.ReportCategory(input.Category),
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Description: input.Description,
		PhotoURL:    input.PhotoURL,
		PoliceFolio: input.PoliceFolio,
	}
	if err := h.services.Reports.CreateReport(c.Request.Context(), report); err != nil {
		log.WithError(err).Error("Failed to create report in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToReportResponse(report))
}

// @Summary List verified reports
// @Description Get verified reports newest first, optionally filtered by category.
// @Tags Reports
// @Produce json
// @Security ApiKeyAuth
// @Param category query string false "Report category filter"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Success 200 {array} ReportResponse
// @Failure 400 {object} map[string]string "Unknown category"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [get]
func (h *Handler) listReports(c *gin.Context) {
	log := h.logger.WithField("method", "listReports")
	category := models.ReportCategory(c.Query("category"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	reports, err := h.services.Reports.ListVerifiedReports(c.Request.Context(), category, page, pageSize)
	if err != nil {
		if errors.Is(err, e.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
			return
		}
		log.WithError(err).Error("Failed to list reports from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToReportResponses(reports))
}

// @Summary List the requester's reports
// @Tags Reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} ReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/mine [get]
func (h *Handler) listMyReports(c *gin.Context) {
	identity := identityFrom(c)
	log := h.logger.WithField("method", "listMyReports")

	reports, err := h.services.Reports.ListUserReports(c.Request.Context(), identity.ID)
	if err != nil {
		log.WithError(err).Error("Failed to list user reports from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToReportResponses(reports))
}

// @Summary Get a report by ID
// @Tags Reports
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 404 {object} map[string]string "Report not found"
// @Router /reports/{id} [get]
func (h *Handler) getReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "getReport").WithField("id", id)

	report, err := h.services.Reports.GetReport(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get report from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary List reports the requester may verify
// @Description Unverified reports newest first. Non-admins must supply lat/lng and only see reports within the listing radius.
// @Tags Verification
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number false "Requester latitude"
// @Param lng query number false "Requester longitude"
// @Success 200 {array} ReportResponse
// @Failure 400 {object} map[string]string "Location unavailable"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/unverified [get]
func (h *Handler) listUnverifiedReports(c *gin.Context) {
	identity := identityFrom(c)
	log := h.logger.WithField("method", "listUnverifiedReports")

	loc := coordinateFromQuery(c)
	reports, err := h.services.Verification.ListVerifiableReports(c.Request.Context(), identity, loc)
	if err != nil {
		if errors.Is(err, e.ErrLocationUnavailable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "location required to list verifiable reports"})
			return
		}
		log.WithError(err).Error("Failed to list verifiable reports from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToReportResponses(reports))
}

// @Summary Verify a report
// @Description Apply the proximity-gated verification to one report. The body carries the requester's fresh location.
// @Tags Verification
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Report ID"
// @Param location body VerifyReportRequest true "Requester location"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid input or location unavailable"
// @Failure 403 {object} map[string]string "Self verification or too far from incident"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 409 {object} map[string]string "Already verified"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id}/verify [post]
func (h *Handler) verifyReport(c *gin.Context) {
	identity := identityFrom(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report ID"})
		return
	}
	log := h.logger.WithField("method", "verifyReport").WithField("report_id", id)

	var input VerifyReportRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var loc *geo.Coordinate
	if input.Latitude != nil && input.Longitude != nil {
		loc = &geo.Coordinate{Latitude: *input.Latitude, Longitude: *input.Longitude}
	}

	err = h.services.Verification.VerifyReport(c.Request.Context(), identity, id, loc)
	if err != nil {
		var tooFar *e.TooFarError
		switch {
		case errors.Is(err, e.ErrReportNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		case errors.Is(err, e.ErrSelfVerification):
			c.JSON(http.StatusForbidden, gin.H{"error": "you cannot verify your own report"})
		case errors.Is(err, e.ErrLocationUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": "location required to verify"})
		case errors.As(err, &tooFar):
			c.JSON(http.StatusForbidden, gin.H{
				"error":           "too far from incident",
				"distance_meters": math.Round(tooFar.DistanceMeters),
			})
		case errors.Is(err, e.ErrAlreadyVerified):
			c.JSON(http.StatusConflict, gin.H{"error": "report already verified"})
		default:
			log.WithError(err).Error("Failed to verify report in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "verified"})
}

// @Summary Neighborhood verification leaderboard
// @Tags Leaderboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} NeighborhoodResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /neighborhoods/leaderboard [get]
func (h *Handler) leaderboard(c *gin.Context) {
	log := h.logger.WithField("method", "leaderboard")

	entries, err := h.services.Leaderboard.Leaderboard(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to load leaderboard from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToNeighborhoodResponses(entries))
}

// @Summary SOS beacon status
// @Tags SOS
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SOSStatusResponse
// @Router /sos [get]
func (h *Handler) sosStatus(c *gin.Context) {
	identity := identityFrom(c)
	c.JSON(http.StatusOK, SOSStatusResponse{Active: h.beacons.Active(identity.ID)})
}

// @Summary Arm the SOS beacon
// @Description Start the emergency beacon with the device's initial location fix. Audio capture is optional and its absence never blocks arming.
// @Tags SOS
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param start body SOSStartRequest true "Initial fix and audio flag"
// @Success 201 {object} SOSStatusResponse
// @Failure 400 {object} map[string]string "Location unavailable"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /sos/start [post]
func (h *Handler) sosStart(c *gin.Context) {
	identity := identityFrom(c)
	log := h.logger.WithField("method", "sosStart").WithField("user_id", identity.ID)

	var input SOSStartRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var initial *geo.Coordinate
	if input.Latitude != nil && input.Longitude != nil {
		initial = &geo.Coordinate{Latitude: *input.Latitude, Longitude: *input.Longitude}
	}

	session, err := h.beacons.StartClient(c.Request.Context(), identity.ID, initial, input.Audio)
	if err != nil {
		if errors.Is(err, e.ErrLocationUnavailable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "location required to arm the beacon"})
			return
		}
		log.WithError(err).Error("Failed to arm SOS beacon")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, SOSStatusResponse{Active: true, StartedAt: &session.StartedAt})
}

// @Summary Disarm the SOS beacon
// @Description Stop the emergency beacon. Stopping an idle beacon is a no-op.
// @Tags SOS
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SOSStatusResponse
// @Router /sos/stop [post]
func (h *Handler) sosStop(c *gin.Context) {
	identity := identityFrom(c)
	h.beacons.StopUser(identity.ID)
	c.JSON(http.StatusOK, SOSStatusResponse{Active: false})
}

// @Summary Push an SOS location fix
// @Tags SOS
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param fix body SOSLocationRequest true "Location fix"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "No armed beacon"
// @Router /sos/location [post]
func (h *Handler) sosLocation(c *gin.Context) {
	identity := identityFrom(c)
	log := h.logger.WithField("method", "sosLocation").WithField("user_id", identity.ID)

	var input SOSLocationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.beacons.PushLocation(identity.ID, geo.Coordinate{Latitude: input.Latitude, Longitude: input.Longitude}); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no armed beacon for user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Push an SOS audio chunk
// @Tags SOS
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param chunk body SOSAudioRequest true "Base64 audio chunk"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "No armed beacon"
// @Router /sos/audio [post]
func (h *Handler) sosAudio(c *gin.Context) {
	identity := identityFrom(c)
	log := h.logger.WithField("method", "sosAudio").WithField("user_id", identity.ID)

	var input SOSAudioRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chunk, err := base64.StdEncoding.DecodeString(input.Chunk)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid audio chunk encoding"})
		return
	}

	if err := h.beacons.PushAudio(identity.ID, chunk); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no armed beacon for user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary List the requester's SOS emissions
// @Tags SOS
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Maximum events to return" default(100)
// @Success 200 {array} SOSEventResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sos/events [get]
func (h *Handler) sosEvents(c *gin.Context) {
	identity := identityFrom(c)
	log := h.logger.WithField("method", "sosEvents").WithField("user_id", identity.ID)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	events, err := h.sosStore.ListEventsByUser(c.Request.Context(), identity.ID, limit)
	if err != nil {
		log.WithError(err).Error("Failed to list SOS events")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToSOSEventResponses(events))
}

// @Summary Fetch stored SOS audio
// @Tags SOS
// @Produce octet-stream
// @Security ApiKeyAuth
// @Param key path string true "Audio object key"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "Audio not found"
// @Router /sos/audio/{key} [get]
func (h *Handler) sosAudioGet(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}
	log := h.logger.WithField("method", "sosAudioGet").WithField("key", key)

	data, err := h.sosStore.GetBlob(c.Request.Context(), key)
	if err != nil {
		log.WithError(err).Warn("Failed to get audio object")
		c.JSON(http.StatusNotFound, gin.H{"error": "audio not found"})
		return
	}
	c.Data(http.StatusOK, "audio/webm", data)
}

// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// coordinateFromQuery parses optional lat/lng query parameters. Either one
// missing or malformed means no location.
func coordinateFromQuery(c *gin.Context) *geo.Coordinate {
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr == "" || lngStr == "" {
		return nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil
	}
	return &geo.Coordinate{Latitude: lat, Longitude: lng}
}
