package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"clinical_voice_service/internal/domain/orders"
	"clinical_voice_service/internal/domain/scheduling"
	"clinical_voice_service/internal/domain/transcripts"
	"clinical_voice_service/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EncounterHandler defines the interface for managing appointments, orders
// and transcripts produced by voice encounters
type EncounterHandler interface {
	CreateAppointment(ctx *gin.Context)
	ListAppointments(ctx *gin.Context)
	GetAppointmentByCode(ctx *gin.Context)
	UpdateAppointmentByCode(ctx *gin.Context)
	CreateOrder(ctx *gin.Context)
	ListOrders(ctx *gin.Context)
	GetOrderByCode(ctx *gin.Context)
	ListTranscripts(ctx *gin.Context)
}

type encounterHandler struct {
	appointments scheduling.AppointmentRepository
	orders       orders.OrderRepository
	transcripts  transcripts.Store
}

// NewEncounterHandler creates a new EncounterHandler
func NewEncounterHandler(
	appointments scheduling.AppointmentRepository,
	orderRepository orders.OrderRepository,
	transcriptStore transcripts.Store,
) EncounterHandler {
	return &encounterHandler{
		appointments: appointments,
		orders:       orderRepository,
		transcripts:  transcriptStore,
	}
}

// CreateAppointment stores a new appointment or availability slot
func (handler *encounterHandler) CreateAppointment(ctx *gin.Context) {
	var request CreateAppointmentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorMessage := "invalid request body"
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("validation failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, request.ScheduledAt)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("invalid scheduled_at: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	// Allocate a code and insert; a concurrent create can take the same
	// code, so retry with a fresh one on collision.
	var appointment *scheduling.Appointment
	for attempt := 0; ; attempt++ {
		code, err := handler.appointments.NextCode(ctx)
		if err != nil {
			var errorResponse ErrorResponse
			errorMessage := fmt.Sprintf("error allocating appointment code: %v", err.Error())
			errorResponse.Message = &errorMessage
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}

		appointment = &scheduling.Appointment{
			ID:              uuid.New().String(),
			Code:            code,
			PatientID:       request.PatientID,
			Type:            request.Type,
			ScheduledAt:     scheduledAt,
			DurationMinutes: request.DurationMinutes,
			Provider:        request.Provider,
			Status:          request.Status,
			Notes:           request.Notes,
			DateTimeCreated: time.Now().UTC(),
		}
		if appointment.Type == "" {
			appointment.Type = "Follow-up"
		}
		if appointment.DurationMinutes == 0 {
			appointment.DurationMinutes = 30
		}
		if appointment.Status == "" {
			appointment.Status = scheduling.StatusAvailable
		}

		err = handler.appointments.Create(ctx, appointment)
		if err == nil {
			break
		}
		if errors.Is(err, scheduling.ErrCodeTaken) && attempt < 2 {
			continue
		}

		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error creating appointment: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusCreated, newAppointmentResponse(appointment))
}

// ListAppointments fetches appointments optionally filtered by query parameters
func (handler *encounterHandler) ListAppointments(ctx *gin.Context) {
	query := &scheduling.AppointmentQuery{}

	if status := ctx.Query("status"); len(status) > 0 {
		query.Status = status
	}
	if provider := ctx.Query("provider"); len(provider) > 0 {
		query.Provider = provider
	}
	if from := ctx.Query("from"); len(from) > 0 {
		if parsed, err := time.Parse(time.RFC3339, from); err == nil {
			query.From = &parsed
		}
	}
	if to := ctx.Query("to"); len(to) > 0 {
		if parsed, err := time.Parse(time.RFC3339, to); err == nil {
			query.To = &parsed
		}
	}
	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}

	if err := query.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("validation failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	appointments, err := handler.appointments.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("list query failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	listResponse := []AppointmentResponse{}
	for _, appointment := range appointments {
		listResponse = append(listResponse, newAppointmentResponse(appointment))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetAppointmentByCode fetches an appointment by its short code
func (handler *encounterHandler) GetAppointmentByCode(ctx *gin.Context) {
	code := ctx.Param("code")

	appointment, err := handler.appointments.GetByCode(ctx, code)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("appointment with code %s not found", code)
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newAppointmentResponse(appointment))
}

// UpdateAppointmentByCode applies a partial update to an appointment
func (handler *encounterHandler) UpdateAppointmentByCode(ctx *gin.Context) {
	code := ctx.Param("code")

	var request UpdateAppointmentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorMessage := "invalid request body"
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("validation failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	appointment, err := handler.appointments.GetByCode(ctx, code)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("appointment with code %s not found", code)
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	if request.ScheduledAt != "" {
		scheduledAt, err := time.Parse(time.RFC3339, request.ScheduledAt)
		if err != nil {
			var errorResponse ErrorResponse
			errorMessage := fmt.Sprintf("invalid scheduled_at: %v", err.Error())
			errorResponse.Message = &errorMessage
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}
		appointment.ScheduledAt = scheduledAt
	}
	if request.Provider != "" {
		appointment.Provider = request.Provider
	}
	if request.Status != "" {
		appointment.Status = request.Status
	}
	if request.Notes != "" {
		appointment.Notes = request.Notes
	}

	if err := handler.appointments.UpdateByID(ctx, appointment); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error updating appointment: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newAppointmentResponse(appointment))
}

// CreateOrder stores a new clinical order in pending status
func (handler *encounterHandler) CreateOrder(ctx *gin.Context) {
	var request CreateOrderRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorMessage := "invalid request body"
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("validation failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	details := request.Details
	if details == nil {
		details = map[string]interface{}{}
	}

	now := time.Now().UTC()
	order := &orders.ClinicalOrder{
		ID:              uuid.New().String(),
		Code:            orders.NewOrderCode(now),
		PatientID:       request.PatientID,
		OrderType:       request.OrderType,
		Details:         details,
		Status:          orders.StatusPending,
		DateTimeCreated: now,
	}

	if err := handler.orders.Create(ctx, order); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error creating order: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusCreated, newOrderResponse(order))
}

// ListOrders fetches clinical orders optionally filtered by query parameters
func (handler *encounterHandler) ListOrders(ctx *gin.Context) {
	query := &orders.OrderQuery{}

	if status := ctx.Query("status"); len(status) > 0 {
		query.Status = status
	}
	if orderType := ctx.Query("order_type"); len(orderType) > 0 {
		query.OrderType = orderType
	}
	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}

	if err := query.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("validation failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	clinicalOrders, err := handler.orders.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("list query failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	listResponse := []OrderResponse{}
	for _, order := range clinicalOrders {
		listResponse = append(listResponse, newOrderResponse(order))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetOrderByCode fetches a clinical order by its announced code
func (handler *encounterHandler) GetOrderByCode(ctx *gin.Context) {
	code := ctx.Param("code")

	order, err := handler.orders.GetByCode(ctx, code)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("order with code %s not found", code)
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newOrderResponse(order))
}

// ListTranscripts fetches stored transcripts, newest first
func (handler *encounterHandler) ListTranscripts(ctx *gin.Context) {
	limit := 0
	if limitQuery := ctx.Query("limit"); len(limitQuery) > 0 {
		limit = strutil.ConvertToInt(limitQuery)
	}

	stored, err := handler.transcripts.List(ctx, limit)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("list query failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	listResponse := []TranscriptResponse{}
	for _, transcript := range stored {
		listResponse = append(listResponse, newTranscriptResponse(transcript))
	}

	ctx.JSON(http.StatusOK, listResponse)
}
