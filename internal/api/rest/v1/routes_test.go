//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"clinical_voice_service/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestSetupRoutes_RoutesRegistered verifies that routes are properly registered
func TestSetupRoutes_RoutesRegistered(t *testing.T) {
	mockAssistService := new(MockAssistService)
	mockPatientRepository := new(MockPatientRepository)
	mockRecordRepository := new(MockMedicalRecordRepository)
	mockPrescriptionRepository := new(MockPrescriptionRepository)
	mockAppointmentRepository := new(MockAppointmentRepository)
	mockOrderRepository := new(MockOrderRepository)
	mockTranscriptStore := new(MockTranscriptStore)

	r := gin.Default()

	// Setup mocks to return nil
	mockAssistService.On("Dispatch", mock.Anything, mock.Anything).Return(nil, nil)
	mockPatientRepository.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockPatientRepository.On("List", mock.Anything, mock.Anything).Return(nil, nil)
	mockPatientRepository.On("GetByMRN", mock.Anything, mock.Anything).Return(nil, nil)
	mockPatientRepository.On("DeleteByID", mock.Anything, mock.Anything).Return(nil)
	mockAppointmentRepository.On("List", mock.Anything, mock.Anything).Return(nil, nil)
	mockAppointmentRepository.On("GetByCode", mock.Anything, mock.Anything).Return(nil, nil)
	mockOrderRepository.On("List", mock.Anything, mock.Anything).Return(nil, nil)
	mockOrderRepository.On("GetByCode", mock.Anything, mock.Anything).Return(nil, nil)
	mockTranscriptStore.On("List", mock.Anything, mock.Anything).Return(nil, nil)

	SetupRoutes(r, mockAssistService, mockPatientRepository, mockRecordRepository, mockPrescriptionRepository, mockAppointmentRepository, mockOrderRepository, mockTranscriptStore, testutil.SetupTestLogger(t))

	// Verify routes are registered by testing they respond (even with errors)
	tests := []struct {
		method string
		url    string
	}{
		{"POST", "/api/v1/cva/assist"},
		{"POST", "/api/v1/cva/patients"},
		{"GET", "/api/v1/cva/patients"},
		{"GET", "/api/v1/cva/appointments"},
		{"GET", "/api/v1/cva/orders"},
		{"GET", "/api/v1/cva/transcripts"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// Just verify route exists (status != 404)
			assert.NotEqual(t, http.StatusNotFound, w.Code, "Route should be registered")
		})
	}
}
