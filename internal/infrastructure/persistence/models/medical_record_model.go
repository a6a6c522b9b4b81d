package models

import (
	"time"

	"clinical_voice_service/internal/domain/ehr"

	"gorm.io/datatypes"
)

// MedicalRecordModel is the GORM database model for medical records
type MedicalRecordModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	PatientID       string    `gorm:"not null;index;type:uuid"`
	RecordType      string    `gorm:"not null;type:varchar(50)"`
	RecordDate      time.Time `gorm:"not null;index"`
	Provider        string    `gorm:"type:varchar(100)"`
	Notes           string    `gorm:"type:text"`
	Data            datatypes.JSON `gorm:"type:jsonb"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (MedicalRecordModel) TableName() string {
	return "medical_records"
}

// ToDomain converts GORM model to domain entity
func (m *MedicalRecordModel) ToDomain() (*ehr.MedicalRecord, error) {
	data, err := fromJSONMap(m.Data)
	if err != nil {
		return nil, err
	}

	return &ehr.MedicalRecord{
		ID:              m.ID,
		PatientID:       m.PatientID,
		RecordType:      m.RecordType,
		RecordDate:      m.RecordDate,
		Provider:        m.Provider,
		Notes:           m.Notes,
		Data:            data,
		DateTimeCreated: m.DateTimeCreated,
	}, nil
}

// FromDomain converts domain entity to GORM model
func (m *MedicalRecordModel) FromDomain(r *ehr.MedicalRecord) error {
	data, err := toJSON(r.Data)
	if err != nil {
		return err
	}

	m.ID = r.ID
	m.PatientID = r.PatientID
	m.RecordType = r.RecordType
	m.RecordDate = r.RecordDate
	m.Provider = r.Provider
	m.Notes = r.Notes
	m.Data = data
	m.DateTimeCreated = r.DateTimeCreated
	return nil
}

// PrescriptionModel is the GORM database model for prescriptions
type PrescriptionModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	PatientID       string `gorm:"not null;index;type:uuid"`
	MedicationName  string `gorm:"not null;type:varchar(200)"`
	Dosage          string `gorm:"type:varchar(100)"`
	Frequency       string `gorm:"type:varchar(100)"`
	StartDate       *time.Time
	EndDate         *time.Time
	Prescriber      string    `gorm:"type:varchar(100)"`
	Status          string    `gorm:"not null;type:varchar(50)"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (PrescriptionModel) TableName() string {
	return "medications"
}

// ToDomain converts GORM model to domain entity
func (m *PrescriptionModel) ToDomain() *ehr.Prescription {
	return &ehr.Prescription{
		ID:              m.ID,
		PatientID:       m.PatientID,
		MedicationName:  m.MedicationName,
		Dosage:          m.Dosage,
		Frequency:       m.Frequency,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		Prescriber:      m.Prescriber,
		Status:          m.Status,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PrescriptionModel) FromDomain(p *ehr.Prescription) {
	m.ID = p.ID
	m.PatientID = p.PatientID
	m.MedicationName = p.MedicationName
	m.Dosage = p.Dosage
	m.Frequency = p.Frequency
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
	m.Prescriber = p.Prescriber
	m.Status = p.Status
	m.DateTimeCreated = p.DateTimeCreated
}
