package models

import (
	"time"

	"clinical_voice_service/internal/domain/scheduling"
)

// AppointmentModel is the GORM database model for appointments
type AppointmentModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	Code            string    `gorm:"not null;uniqueIndex;type:varchar(20)"`
	PatientID       *string   `gorm:"index;type:uuid"`
	Type            string    `gorm:"not null;type:varchar(100)"`
	ScheduledAt     time.Time `gorm:"not null;index"`
	DurationMinutes int       `gorm:"not null"`
	Provider        string    `gorm:"not null;type:varchar(100)"`
	Status          string    `gorm:"not null;index;type:varchar(50)"`
	Notes           string    `gorm:"type:text"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (AppointmentModel) TableName() string {
	return "appointments"
}

// ToDomain converts GORM model to domain entity
func (m *AppointmentModel) ToDomain() *scheduling.Appointment {
	patientID := ""
	if m.PatientID != nil {
		patientID = *m.PatientID
	}

	return &scheduling.Appointment{
		ID:              m.ID,
		Code:            m.Code,
		PatientID:       patientID,
		Type:            m.Type,
		ScheduledAt:     m.ScheduledAt,
		DurationMinutes: m.DurationMinutes,
		Provider:        m.Provider,
		Status:          m.Status,
		Notes:           m.Notes,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AppointmentModel) FromDomain(a *scheduling.Appointment) {
	m.ID = a.ID
	m.Code = a.Code
	if a.PatientID != "" {
		patientID := a.PatientID
		m.PatientID = &patientID
	} else {
		m.PatientID = nil
	}
	m.Type = a.Type
	m.ScheduledAt = a.ScheduledAt
	m.DurationMinutes = a.DurationMinutes
	m.Provider = a.Provider
	m.Status = a.Status
	m.Notes = a.Notes
	m.DateTimeCreated = a.DateTimeCreated
}
