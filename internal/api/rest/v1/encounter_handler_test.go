//go:build unit
// +build unit

package v1

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinical_voice_service/internal/domain/orders"
	"clinical_voice_service/internal/domain/scheduling"
	"clinical_voice_service/internal/domain/transcripts"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEncounterHandler_CreateAppointment_Success(t *testing.T) {
	mockAppointmentRepository := new(MockAppointmentRepository)
	mockOrderRepository := new(MockOrderRepository)
	mockTranscriptStore := new(MockTranscriptStore)

	handler := NewEncounterHandler(mockAppointmentRepository, mockOrderRepository, mockTranscriptStore)

	requestBody := `{"scheduled_at": "2026-09-01T09:00:00Z", "provider": "Dr. Chen", "status": "available"}`

	mockAppointmentRepository.
		On("NextCode", mock.Anything).
		Return("A001", nil)
	mockAppointmentRepository.
		On("Create", mock.Anything, mock.AnythingOfType("*scheduling.Appointment")).
		Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/appointments", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.CreateAppointment(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "A001")
	assert.Contains(t, w.Body.String(), "Dr. Chen")
	mockAppointmentRepository.AssertExpectations(t)
}

func TestEncounterHandler_CreateAppointment_RetriesOnCodeCollision(t *testing.T) {
	mockAppointmentRepository := new(MockAppointmentRepository)
	mockOrderRepository := new(MockOrderRepository)
	mockTranscriptStore := new(MockTranscriptStore)

	handler := NewEncounterHandler(mockAppointmentRepository, mockOrderRepository, mockTranscriptStore)

	requestBody := `{"scheduled_at": "2026-09-01T09:00:00Z", "provider": "Dr. Chen", "status": "available"}`

	// A concurrent insert takes A001 first; the handler must allocate A002
	// and succeed.
	mockAppointmentRepository.
		On("NextCode", mock.Anything).
		Return("A001", nil).Once()
	mockAppointmentRepository.
		On("Create", mock.Anything, mock.AnythingOfType("*scheduling.Appointment")).
		Return(scheduling.ErrCodeTaken).Once()
	mockAppointmentRepository.
		On("NextCode", mock.Anything).
		Return("A002", nil).Once()
	mockAppointmentRepository.
		On("Create", mock.Anything, mock.AnythingOfType("*scheduling.Appointment")).
		Return(nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/appointments", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.CreateAppointment(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "A002")
	mockAppointmentRepository.AssertExpectations(t)
}

func TestEncounterHandler_CreateAppointment_MissingProvider(t *testing.T) {
	mockAppointmentRepository := new(MockAppointmentRepository)
	mockOrderRepository := new(MockOrderRepository)
	mockTranscriptStore := new(MockTranscriptStore)

	handler := NewEncounterHandler(mockAppointmentRepository, mockOrderRepository, mockTranscriptStore)

	requestBody := `{"scheduled_at": "2026-09-01T09:00:00Z"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/appointments", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.CreateAppointment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")
	mockAppointmentRepository.AssertNotCalled(t, "Create")
}

func TestEncounterHandler_UpdateAppointmentByCode_Success(t *testing.T) {
	mockAppointmentRepository := new(MockAppointmentRepository)
	mockOrderRepository := new(MockOrderRepository)
	mockTranscriptStore := new(MockTranscriptStore)

	handler := NewEncounterHandler(mockAppointmentRepository, mockOrderRepository, mockTranscriptStore)

	appointment := &scheduling.Appointment{
		ID:              "id-1",
		Code:            "A001",
		Type:            "Follow-up",
		ScheduledAt:     time.Now().Add(48 * time.Hour),
		DurationMinutes: 30,
		Provider:        "Dr. Chen",
		Status:          "scheduled",
	}

	mockAppointmentRepository.
		On("GetByCode", mock.Anything, "A001").
		Return(appointment, nil)
	mockAppointmentRepository.
		On("UpdateByID", mock.Anything, mock.AnythingOfType("*scheduling.Appointment")).
		Return(nil)

	requestBody := `{"status": "cancelled"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/appointments/A001", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "code", Value: "A001"}}

	handler.UpdateAppointmentByCode(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cancelled")
	mockAppointmentRepository.AssertExpectations(t)
}

func TestEncounterHandler_CreateOrder_Success(t *testing.T) {
	mockAppointmentRepository := new(MockAppointmentRepository)
	mockOrderRepository := new(MockOrderRepository)
	mockTranscriptStore := new(MockTranscriptStore)

	handler := NewEncounterHandler(mockAppointmentRepository, mockOrderRepository, mockTranscriptStore)

	requestBody := `{"order_type": "test", "details": {"test_name": "CBC"}}`

	mockOrderRepository.
		On("Create", mock.Anything, mock.AnythingOfType("*orders.ClinicalOrder")).
		Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/orders", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.CreateOrder(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "ORD-")
	assert.Contains(t, w.Body.String(), "pending")
	mockOrderRepository.AssertExpectations(t)
}

func TestEncounterHandler_CreateOrder_InvalidType(t *testing.T) {
	mockAppointmentRepository := new(MockAppointmentRepository)
	mockOrderRepository := new(MockOrderRepository)
	mockTranscriptStore := new(MockTranscriptStore)

	handler := NewEncounterHandler(mockAppointmentRepository, mockOrderRepository, mockTranscriptStore)

	requestBody := `{"order_type": "imaging"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/orders", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.CreateOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")
	mockOrderRepository.AssertNotCalled(t, "Create")
}

func TestEncounterHandler_ListAppointments_Success(t *testing.T) {
	mockAppointmentRepository := new(MockAppointmentRepository)
	mockOrderRepository := new(MockOrderRepository)
	mockTranscriptStore := new(MockTranscriptStore)

	handler := NewEncounterHandler(mockAppointmentRepository, mockOrderRepository, mockTranscriptStore)

	appointment := &scheduling.Appointment{
		ID:              "id-1",
		Code:            "A001",
		Type:            "Follow-up",
		ScheduledAt:     time.Now().Add(48 * time.Hour),
		DurationMinutes: 30,
		Provider:        "Dr. Chen",
		Status:          "scheduled",
	}

	mockAppointmentRepository.
		On("List", mock.Anything, mock.Anything).
		Return([]*scheduling.Appointment{appointment}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/appointments?status=scheduled&provider=Dr.%20Chen", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListAppointments(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "A001")
	assert.Contains(t, w.Body.String(), "Dr. Chen")
	mockAppointmentRepository.AssertExpectations(t)
}

func TestEncounterHandler_ListAppointments_InvalidStatus(t *testing.T) {
	mockAppointmentRepository := new(MockAppointmentRepository)
	mockOrderRepository := new(MockOrderRepository)
	mockTranscriptStore := new(MockTranscriptStore)

	handler := NewEncounterHandler(mockAppointmentRepository, mockOrderRepository, mockTranscriptStore)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/appointments?status=imaginary", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListAppointments(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")
	mockAppointmentRepository.AssertNotCalled(t, "List")
}

func TestEncounterHandler_GetAppointmentByCode_Success(t *testing.T) {
	mockAppointmentRepository := new(MockAppointmentRepository)
	mockOrderRepository := new(MockOrderRepository)
	mockTranscriptStore := new(MockTranscriptStore)

	handler := NewEncounterHandler(mockAppointmentRepository, mockOrderRepository, mockTranscriptStore)

	appointment := &scheduling.Appointment{
		ID:              "id-1",
		Code:            "A001",
		Type:            "Follow-up",
		ScheduledAt:     time.Now().Add(48 * time.Hour),
		DurationMinutes: 30,
		Provider:        "Dr. Chen",
		Status:          "scheduled",
	}

	mockAppointmentRepository.
		On("GetByCode", mock.Anything, "A001").
		Return(appointment, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/appointments/A001", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "code", Value: "A001"}}

	handler.GetAppointmentByCode(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "A001")
	mockAppointmentRepository.AssertExpectations(t)
}

func TestEncounterHandler_GetAppointmentByCode_NotFound(t *testing.T) {
	mockAppointmentRepository := new(MockAppointmentRepository)
	mockOrderRepository := new(MockOrderRepository)
	mockTranscriptStore := new(MockTranscriptStore)

	handler := NewEncounterHandler(mockAppointmentRepository, mockOrderRepository, mockTranscriptStore)

	mockAppointmentRepository.
		On("GetByCode", mock.Anything, "A999").
		Return(nil, errors.New("record not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/appointments/A999", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "code", Value: "A999"}}

	handler.GetAppointmentByCode(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "appointment with code A999 not found")
	mockAppointmentRepository.AssertExpectations(t)
}

func TestEncounterHandler_ListOrders_Success(t *testing.T) {
	mockAppointmentRepository := new(MockAppointmentRepository)
	mockOrderRepository := new(MockOrderRepository)
	mockTranscriptStore := new(MockTranscriptStore)

	handler := NewEncounterHandler(mockAppointmentRepository, mockOrderRepository, mockTranscriptStore)

	order := &orders.ClinicalOrder{
		ID:              "id-1",
		Code:            "ORD-20260827093000",
		OrderType:       "test",
		Details:         map[string]interface{}{"test_name": "CBC"},
		Status:          "pending",
		DateTimeCreated: time.Now(),
	}

	mockOrderRepository.
		On("List", mock.Anything, mock.Anything).
		Return([]*orders.ClinicalOrder{order}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/orders?status=pending&order_type=test", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListOrders(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ORD-20260827093000")
	mockOrderRepository.AssertExpectations(t)
}

func TestEncounterHandler_GetOrderByCode_NotFound(t *testing.T) {
	mockAppointmentRepository := new(MockAppointmentRepository)
	mockOrderRepository := new(MockOrderRepository)
	mockTranscriptStore := new(MockTranscriptStore)

	handler := NewEncounterHandler(mockAppointmentRepository, mockOrderRepository, mockTranscriptStore)

	mockOrderRepository.
		On("GetByCode", mock.Anything, "ORD-00000000000000").
		Return(nil, errors.New("record not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/orders/ORD-00000000000000", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "code", Value: "ORD-00000000000000"}}

	handler.GetOrderByCode(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "order with code ORD-00000000000000 not found")
	mockOrderRepository.AssertExpectations(t)
}

func TestEncounterHandler_ListTranscripts_Success(t *testing.T) {
	mockAppointmentRepository := new(MockAppointmentRepository)
	mockOrderRepository := new(MockOrderRepository)
	mockTranscriptStore := new(MockTranscriptStore)

	handler := NewEncounterHandler(mockAppointmentRepository, mockOrderRepository, mockTranscriptStore)

	transcript := &transcripts.Transcript{
		Text:      "Schedule an appointment with Dr. Chen",
		Timestamp: time.Now(),
		Metadata:  map[string]interface{}{"agent": "scheduling"},
	}

	mockTranscriptStore.
		On("List", mock.Anything, 5).
		Return([]*transcripts.Transcript{transcript}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/transcripts?limit=5", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListTranscripts(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Schedule an appointment with Dr. Chen")
	mockTranscriptStore.AssertExpectations(t)
}
