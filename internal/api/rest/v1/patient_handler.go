package v1

import (
	"fmt"
	"net/http"
	"time"

	"clinical_voice_service/internal/domain/ehr"
	"clinical_voice_service/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PatientHandler defines the interface for handling patient record operations
type PatientHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByMRN(ctx *gin.Context)
	DeleteByMRN(ctx *gin.Context)
	ListRecordsByMRN(ctx *gin.Context)
	ListPrescriptionsByMRN(ctx *gin.Context)
}

type patientHandler struct {
	patients      ehr.PatientRepository
	records       ehr.MedicalRecordRepository
	prescriptions ehr.PrescriptionRepository
}

// NewPatientHandler creates a new PatientHandler
func NewPatientHandler(
	patients ehr.PatientRepository,
	records ehr.MedicalRecordRepository,
	prescriptions ehr.PrescriptionRepository,
) PatientHandler {
	return &patientHandler{
		patients:      patients,
		records:       records,
		prescriptions: prescriptions,
	}
}

// Create stores a new patient record
func (handler *patientHandler) Create(ctx *gin.Context) {
	var request CreatePatientRequest
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

	patient := &ehr.Patient{
		ID:              uuid.New().String(),
		MRN:             request.MRN,
		Name:            request.Name,
		Gender:          request.Gender,
		ContactInfo:     request.ContactInfo,
		MedicalHistory:  request.MedicalHistory,
		Medications:     request.Medications,
		Allergies:       request.Allergies,
		DateTimeCreated: time.Now().UTC(),
	}
	if patient.MRN == "" {
		patient.MRN = "MRN-" + uuid.New().String()[:8]
	}
	if request.DateOfBirth != "" {
		if dob, err := time.Parse("2006-01-02", request.DateOfBirth); err == nil {
			patient.DateOfBirth = &dob
		}
	}

	if err := handler.patients.Create(ctx, patient); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error creating patient: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusCreated, newPatientResponse(patient))
}

// List fetches patient records optionally filtered by query parameters
func (handler *patientHandler) List(ctx *gin.Context) {
	query := &ehr.PatientQuery{}

	if mrn := ctx.Query("mrn"); len(mrn) > 0 {
		query.MRN = mrn
	}
	if name := ctx.Query("name"); len(name) > 0 {
		query.Name = name
	}
	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}
	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}

	if err := query.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("validation failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	patients, err := handler.patients.List(ctx, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("list query failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	listResponse := []PatientResponse{}
	for _, patient := range patients {
		listResponse = append(listResponse, newPatientResponse(patient))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetByMRN fetches a patient record by medical record number
func (handler *patientHandler) GetByMRN(ctx *gin.Context) {
	mrn := ctx.Param("mrn")

	patient, err := handler.patients.GetByMRN(ctx, mrn)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("patient with mrn %s not found", mrn)
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newPatientResponse(patient))
}

// DeleteByMRN deletes a patient record by medical record number
func (handler *patientHandler) DeleteByMRN(ctx *gin.Context) {
	mrn := ctx.Param("mrn")

	patient, err := handler.patients.GetByMRN(ctx, mrn)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("patient with mrn %s not found", mrn)
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	if err := handler.patients.DeleteByID(ctx, patient.ID); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error deleting patient: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	var infoResponse InfoResponse
	infoMessage := fmt.Sprintf("deleted patient with mrn %s", mrn)
	infoResponse.Message = &infoMessage
	ctx.JSON(http.StatusNoContent, infoResponse)
}

// ListRecordsByMRN fetches a patient's medical records, newest first
func (handler *patientHandler) ListRecordsByMRN(ctx *gin.Context) {
	mrn := ctx.Param("mrn")

	patient, err := handler.patients.GetByMRN(ctx, mrn)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("patient with mrn %s not found", mrn)
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	records, err := handler.records.ListByPatientID(ctx, patient.ID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("list query failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	listResponse := []MedicalRecordResponse{}
	for _, record := range records {
		listResponse = append(listResponse, newMedicalRecordResponse(record))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// ListPrescriptionsByMRN fetches a patient's prescriptions
func (handler *patientHandler) ListPrescriptionsByMRN(ctx *gin.Context) {
	mrn := ctx.Param("mrn")

	patient, err := handler.patients.GetByMRN(ctx, mrn)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("patient with mrn %s not found", mrn)
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	prescriptions, err := handler.prescriptions.ListByPatientID(ctx, patient.ID)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("list query failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	listResponse := []PrescriptionResponse{}
	for _, prescription := range prescriptions {
		listResponse = append(listResponse, newPrescriptionResponse(prescription))
	}

	ctx.JSON(http.StatusOK, listResponse)
}
