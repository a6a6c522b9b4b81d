package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/domain/ehr"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/google/uuid"
)

const ehrSystemPrompt = `You are an EHR (Electronic Health Record) Agent responsible for managing patient information.
You can perform the following operations:
- retrieve: Retrieve patient records
- update: Update patient records
- create: Create new patient records

IMPORTANT: You must respond with a valid JSON object. The response must be parseable JSON.
DO NOT include any escaped characters or newlines in string values.

Always respond in JSON format with the following structure:
{
    "operation": "<operation_type>",
    "status": "success" or "error",
    "data": {
        "mrn": "<medical_record_number_if_mentioned>",
        "name": "<patient_name_if_mentioned>",
        "medical_history": ["<condition>"],
        "medications": ["<medication>"],
        "allergies": ["<allergy>"],
        "updates": {"<field>": "<value>"}
    },
    "warnings": [],
    "error": null or error_message
}

Remember:
1. All string values must be properly quoted
2. No escaped newlines in string values
3. No trailing commas
4. Only include data fields that are present in the request`

// ehrAgent resolves record operations extracted by the model against the
// patient repository.
type ehrAgent struct {
	chat     agents.ChatClient
	patients ehr.PatientRepository
	logger   logger.Logger
}

// NewEHRAgent creates a new instance of the EHR agent
func NewEHRAgent(chat agents.ChatClient, patients ehr.PatientRepository, logger logger.Logger) (agents.Agent, error) {
	if chat == nil || patients == nil {
		return nil, fmt.Errorf("chat client and patient repository are required")
	}
	return &ehrAgent{
		chat:     chat,
		patients: patients,
		logger:   logger,
	}, nil
}

func (a *ehrAgent) Name() string {
	return agents.AgentEHR
}

// Process extracts the requested operation from the message and executes it
// against stored patient records. The model only classifies and extracts
// fields; reads and writes are performed here.
func (a *ehrAgent) Process(ctx context.Context, message string) (*agents.Response, error) {
	envelope := completeEnvelope(ctx, a.chat, ehrSystemPrompt, message)
	if envelope.Status == agents.StatusError {
		return envelope, nil
	}

	switch envelope.Operation {
	case "retrieve":
		return a.handleRetrieve(ctx, envelope.Data)
	case "update":
		return a.handleUpdate(ctx, envelope.Data)
	case "create":
		return a.handleCreate(ctx, envelope.Data)
	default:
		return agents.NewErrorResponse(envelope.Operation, fmt.Sprintf("Unsupported operation: %s", envelope.Operation)), nil
	}
}

func (a *ehrAgent) handleRetrieve(ctx context.Context, data map[string]interface{}) (*agents.Response, error) {
	mrn := stringField(data, "mrn", "patient_id")
	if mrn != "" {
		patient, err := a.patients.GetByMRN(ctx, mrn)
		if err != nil {
			a.logger.Warn("Patient lookup failed for MRN ", mrn, ": ", err)
			return agents.NewErrorResponse("retrieve", fmt.Sprintf("Patient %s not found", mrn)), nil
		}
		return agents.NewSuccessResponse("retrieve", map[string]interface{}{
			"patients": []interface{}{patientData(patient)},
		}), nil
	}

	query := &ehr.PatientQuery{Name: stringField(data, "name")}
	patients, err := a.patients.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	listed := make([]interface{}, 0, len(patients))
	for _, patient := range patients {
		listed = append(listed, patientData(patient))
	}
	return agents.NewSuccessResponse("retrieve", map[string]interface{}{
		"patients": listed,
	}), nil
}

func (a *ehrAgent) handleUpdate(ctx context.Context, data map[string]interface{}) (*agents.Response, error) {
	mrn := stringField(data, "mrn", "patient_id")
	if mrn == "" {
		return agents.NewErrorResponse("update", "No patient identifier provided"), nil
	}

	updates := mapField(data, "updates")
	if len(updates) == 0 {
		return agents.NewErrorResponse("update", "No update fields provided"), nil
	}

	patient, err := a.patients.GetByMRN(ctx, mrn)
	if err != nil {
		return agents.NewErrorResponse("update", fmt.Sprintf("Patient %s not found", mrn)), nil
	}

	applied := applyPatientUpdates(patient, updates)
	if len(applied) == 0 {
		return agents.NewErrorResponse("update", "No update fields provided"), nil
	}

	if err := a.patients.UpdateByID(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient %s: %w", mrn, err)
	}

	a.logger.Info("Updated patient ", mrn, " fields ", strings.Join(applied, ", "))
	return agents.NewSuccessResponse("update", map[string]interface{}{
		"mrn":     patient.MRN,
		"updates": updates,
	}), nil
}

func (a *ehrAgent) handleCreate(ctx context.Context, data map[string]interface{}) (*agents.Response, error) {
	name := stringField(data, "name")
	if name == "" {
		name = "Unknown"
	}

	mrn := stringField(data, "mrn")
	if mrn == "" {
		mrn = newMRN()
	}

	patient := &ehr.Patient{
		ID:              uuid.New().String(),
		MRN:             mrn,
		Name:            name,
		Gender:          stringField(data, "gender"),
		MedicalHistory:  stringSliceField(data, "medical_history"),
		Medications:     stringSliceField(data, "medications"),
		Allergies:       stringSliceField(data, "allergies"),
		DateTimeCreated: time.Now().UTC(),
	}
	if err := patient.Validate(); err != nil {
		return nil, fmt.Errorf("invalid patient: %w", err)
	}

	if err := a.patients.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	a.logger.Info("Created patient ", patient.MRN)
	return agents.NewSuccessResponse("create", patientData(patient)), nil
}

// applyPatientUpdates copies recognized update fields onto the patient and
// returns the names of the fields that were applied.
func applyPatientUpdates(patient *ehr.Patient, updates map[string]interface{}) []string {
	var applied []string
	for field, value := range updates {
		switch field {
		case "name":
			if s, ok := value.(string); ok && s != "" {
				patient.Name = s
				applied = append(applied, field)
			}
		case "gender":
			if s, ok := value.(string); ok {
				patient.Gender = s
				applied = append(applied, field)
			}
		case "medical_history":
			patient.MedicalHistory = stringSliceField(updates, field)
			applied = append(applied, field)
		case "medications":
			patient.Medications = stringSliceField(updates, field)
			applied = append(applied, field)
		case "allergies":
			patient.Allergies = stringSliceField(updates, field)
			applied = append(applied, field)
		case "contact_info":
			if m := mapField(updates, field); m != nil {
				patient.ContactInfo = m
				applied = append(applied, field)
			}
		}
	}
	return applied
}

// patientData renders a patient entity into envelope data.
func patientData(patient *ehr.Patient) map[string]interface{} {
	data := map[string]interface{}{
		"mrn":             patient.MRN,
		"name":            patient.Name,
		"medical_history": patient.MedicalHistory,
		"medications":     patient.Medications,
		"allergies":       patient.Allergies,
	}
	if patient.Gender != "" {
		data["gender"] = patient.Gender
	}
	if patient.DateOfBirth != nil {
		data["date_of_birth"] = patient.DateOfBirth.Format("2006-01-02")
	}
	if len(patient.ContactInfo) > 0 {
		data["contact_info"] = patient.ContactInfo
	}
	return data
}

// newMRN derives a fresh medical record number for patients created by voice.
func newMRN() string {
	return "MRN-" + strings.ToUpper(uuid.New().String()[:8])
}
