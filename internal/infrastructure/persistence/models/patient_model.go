package models

import (
	"time"

	"clinical_voice_service/internal/domain/ehr"

	"gorm.io/datatypes"
)

// PatientModel is the GORM database model for patients (infrastructure concern)
type PatientModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	MRN             string    `gorm:"not null;uniqueIndex;type:varchar(50)"`
	Name            string    `gorm:"not null;type:varchar(255)"`
	DateOfBirth     *time.Time
	Gender          string         `gorm:"type:varchar(20)"`
	ContactInfo     datatypes.JSON `gorm:"type:jsonb"`
	MedicalHistory  datatypes.JSON `gorm:"type:jsonb"`
	Medications     datatypes.JSON `gorm:"type:jsonb"`
	Allergies       datatypes.JSON `gorm:"type:jsonb"`
	DateTimeCreated time.Time      `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (PatientModel) TableName() string {
	return "patients"
}

// ToDomain converts GORM model to domain entity
func (m *PatientModel) ToDomain() (*ehr.Patient, error) {
	contact, err := fromJSONMap(m.ContactInfo)
	if err != nil {
		return nil, err
	}
	history, err := fromJSONStrings(m.MedicalHistory)
	if err != nil {
		return nil, err
	}
	medications, err := fromJSONStrings(m.Medications)
	if err != nil {
		return nil, err
	}
	allergies, err := fromJSONStrings(m.Allergies)
	if err != nil {
		return nil, err
	}

	return &ehr.Patient{
		ID:              m.ID,
		MRN:             m.MRN,
		Name:            m.Name,
		DateOfBirth:     m.DateOfBirth,
		Gender:          m.Gender,
		ContactInfo:     contact,
		MedicalHistory:  history,
		Medications:     medications,
		Allergies:       allergies,
		DateTimeCreated: m.DateTimeCreated,
	}, nil
}

// FromDomain converts domain entity to GORM model
func (m *PatientModel) FromDomain(p *ehr.Patient) error {
	contact, err := toJSON(p.ContactInfo)
	if err != nil {
		return err
	}
	history, err := toJSON(p.MedicalHistory)
	if err != nil {
		return err
	}
	medications, err := toJSON(p.Medications)
	if err != nil {
		return err
	}
	allergies, err := toJSON(p.Allergies)
	if err != nil {
		return err
	}

	m.ID = p.ID
	m.MRN = p.MRN
	m.Name = p.Name
	m.DateOfBirth = p.DateOfBirth
	m.Gender = p.Gender
	m.ContactInfo = contact
	m.MedicalHistory = history
	m.Medications = medications
	m.Allergies = allergies
	m.DateTimeCreated = p.DateTimeCreated
	return nil
}
