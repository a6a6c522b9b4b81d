package v1

import (
	"clinical_voice_service/internal/domain/ehr"
	"clinical_voice_service/internal/domain/orders"
	"clinical_voice_service/internal/domain/scheduling"
	"clinical_voice_service/internal/domain/transcripts"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	assistService AssistService,
	patientRepository ehr.PatientRepository,
	recordRepository ehr.MedicalRecordRepository,
	prescriptionRepository ehr.PrescriptionRepository,
	appointmentRepository scheduling.AppointmentRepository,
	orderRepository orders.OrderRepository,
	transcriptStore transcripts.Store,
	log logger.Logger) {

	v1 := r.Group(BasePath) // lookup in version file

	// Assistant Routes
	assistHandler := NewAssistHandler(assistService, log)
	v1.POST("/assist", assistHandler.Assist)
	v1.GET("/assist/stream", assistHandler.Stream)

	// Patient Routes
	patientHandler := NewPatientHandler(patientRepository, recordRepository, prescriptionRepository)
	v1.POST("/patients", patientHandler.Create)
	v1.GET("/patients", patientHandler.List)
	v1.GET("/patients/:mrn", patientHandler.GetByMRN)
	v1.DELETE("/patients/:mrn", patientHandler.DeleteByMRN)
	v1.GET("/patients/:mrn/records", patientHandler.ListRecordsByMRN)
	v1.GET("/patients/:mrn/prescriptions", patientHandler.ListPrescriptionsByMRN)

	// Encounter Routes
	encounterHandler := NewEncounterHandler(appointmentRepository, orderRepository, transcriptStore)
	v1.POST("/appointments", encounterHandler.CreateAppointment)
	v1.GET("/appointments", encounterHandler.ListAppointments)
	v1.GET("/appointments/:code", encounterHandler.GetAppointmentByCode)
	v1.PATCH("/appointments/:code", encounterHandler.UpdateAppointmentByCode)
	v1.POST("/orders", encounterHandler.CreateOrder)
	v1.GET("/orders", encounterHandler.ListOrders)
	v1.GET("/orders/:code", encounterHandler.GetOrderByCode)
	v1.GET("/transcripts", encounterHandler.ListTranscripts)
}
