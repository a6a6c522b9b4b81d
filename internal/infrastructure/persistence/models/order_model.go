package models

import (
	"time"

	"clinical_voice_service/internal/domain/orders"

	"gorm.io/datatypes"
)

// OrderModel is the GORM database model for clinical orders
type OrderModel struct {
	ID              string         `gorm:"primaryKey;type:uuid"`
	Code            string         `gorm:"not null;uniqueIndex;type:varchar(40)"`
	PatientID       *string        `gorm:"index;type:uuid"`
	OrderType       string         `gorm:"not null;type:varchar(50)"`
	Details         datatypes.JSON `gorm:"type:jsonb"`
	Status          string         `gorm:"not null;index;type:varchar(50)"`
	Warnings        datatypes.JSON `gorm:"type:jsonb"`
	DateTimeCreated time.Time      `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (OrderModel) TableName() string {
	return "clinical_orders"
}

// ToDomain converts GORM model to domain entity
func (m *OrderModel) ToDomain() (*orders.ClinicalOrder, error) {
	details, err := fromJSONMap(m.Details)
	if err != nil {
		return nil, err
	}
	warnings, err := fromJSONStrings(m.Warnings)
	if err != nil {
		return nil, err
	}

	patientID := ""
	if m.PatientID != nil {
		patientID = *m.PatientID
	}

	return &orders.ClinicalOrder{
		ID:              m.ID,
		Code:            m.Code,
		PatientID:       patientID,
		OrderType:       m.OrderType,
		Details:         details,
		Status:          m.Status,
		Warnings:        warnings,
		DateTimeCreated: m.DateTimeCreated,
	}, nil
}

// FromDomain converts domain entity to GORM model
func (m *OrderModel) FromDomain(o *orders.ClinicalOrder) error {
	details, err := toJSON(o.Details)
	if err != nil {
		return err
	}
	warnings, err := toJSON(o.Warnings)
	if err != nil {
		return err
	}

	m.ID = o.ID
	m.Code = o.Code
	if o.PatientID != "" {
		patientID := o.PatientID
		m.PatientID = &patientID
	} else {
		m.PatientID = nil
	}
	m.OrderType = o.OrderType
	m.Details = details
	m.Status = o.Status
	m.Warnings = warnings
	m.DateTimeCreated = o.DateTimeCreated
	return nil
}
