package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wildpitch/spot-booking-backend/internal/auth"
	"github.com/wildpitch/spot-booking-backend/internal/pkg/response"
	"github.com/wildpitch/spot-booking-backend/internal/reservation"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

// writeError maps the engine's error types onto HTTP statuses. Conflicts and
// transition refusals are 409, policy refusals 422, sentinels carry their own
// code.
func writeError(c *gin.Context, err error) {
	var slotErr *reservation.SlotUnavailableError
	if errors.As(err, &slotErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":     slotErr.Error(),
			"spot_id":   slotErr.SpotID,
			"conflicts": slotErr.Conflicts,
		})
		return
	}

	var transErr *reservation.InvalidTransitionError
	if errors.As(err, &transErr) {
		c.JSON(http.StatusConflict, gin.H{"error": transErr.Error()})
		return
	}

	var deniedErr *reservation.CancellationDeniedError
	if errors.As(err, &deniedErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": deniedErr.Error()})
		return
	}

	response.Error(c, err)
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	res, err := h.service.Create(c.Request.Context(), reservation.CreateRequest{
		RequesterID: auth.GetUserID(c),
		SpotID:      body.SpotID,
		CheckIn:     body.CheckIn,
		CheckOut:    body.CheckOut,
		Guests:      body.Guests,
		Notes:       body.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReservationResponse(res))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	actorID := auth.GetUserID(c)
	res, err := h.service.GetByID(c.Request.Context(), id, actorID, auth.IsAdmin(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

func (h *Handler) List(c *gin.Context) {
	var req ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := reservation.Filter{
		SpotID:   req.SpotID,
		Status:   reservation.Status(req.Status),
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	// Non-admins only ever see their own side of the table.
	actorID := auth.GetUserID(c)
	switch req.Role {
	case "owner":
		filter.OwnerID = actorID
	default:
		filter.RequesterID = actorID
	}

	reservations, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		items[i] = NewReservationResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Availability(c *gin.Context) {
	spotID := c.Param("id")
	if _, err := uuid.Parse(spotID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	ranges, err := h.service.Availability(c.Request.Context(), spotID, req.From, req.To)
	if err != nil {
		writeError(c, err)
		return
	}

	if ranges == nil {
		ranges = []reservation.DateRange{}
	}
	c.JSON(http.StatusOK, AvailabilityResponse{
		SpotID:       spotID,
		From:         req.From,
		To:           req.To,
		BookedRanges: ranges,
	})
}

func (h *Handler) Approve(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	res, err := h.service.Approve(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

func (h *Handler) Reject(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	// Body is optional; a missing reason is fine.
	var body CancelReservationRequest
	_ = c.ShouldBindJSON(&body)

	res, err := h.service.Reject(c.Request.Context(), id, auth.GetUserID(c), body.Reason)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body CancelReservationRequest
	_ = c.ShouldBindJSON(&body)

	actorID := auth.GetUserID(c)
	res, err := h.service.Cancel(c.Request.Context(), id, actorID, auth.IsAdmin(c), body.Reason)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

func (h *Handler) UpdatePayment(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdatePaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	res, err := h.service.UpdatePaymentStatus(c.Request.Context(), id, auth.GetUserID(c), auth.IsAdmin(c), reservation.PaymentStatus(body.PaymentStatus))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

func (h *Handler) CompleteDue(c *gin.Context) {
	n, err := h.service.CompleteDue(c.Request.Context(), time.Now().UTC())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CompleteDueResponse{Completed: n})
}
