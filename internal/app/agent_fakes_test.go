//go:build unit
// +build unit

package app

import (
	"context"
	"fmt"
	"sync"

	"clinical_voice_service/internal/domain/ehr"
	"clinical_voice_service/internal/domain/events"
	"clinical_voice_service/internal/domain/guidelines"
	"clinical_voice_service/internal/domain/orders"
	"clinical_voice_service/internal/domain/scheduling"
	"clinical_voice_service/internal/domain/transcripts"
)

// stubChat replies with a canned completion and records the prompts it saw.
type stubChat struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
}

func (c *stubChat) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	c.lastSystem = systemPrompt
	c.lastUser = userPrompt
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

// memPatientRepo is an in-memory ehr.PatientRepository.
type memPatientRepo struct {
	mu       sync.Mutex
	patients []*ehr.Patient
}

func (r *memPatientRepo) Create(_ context.Context, patient *ehr.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.patients {
		if existing.MRN == patient.MRN {
			return fmt.Errorf("duplicate MRN %s", patient.MRN)
		}
	}
	r.patients = append(r.patients, patient)
	return nil
}

func (r *memPatientRepo) List(_ context.Context, query *ehr.PatientQuery) ([]*ehr.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*ehr.Patient
	for _, patient := range r.patients {
		if query != nil && query.Name != "" && patient.Name != query.Name {
			continue
		}
		out = append(out, patient)
	}
	return out, nil
}

func (r *memPatientRepo) GetByID(_ context.Context, patientID string) (*ehr.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, patient := range r.patients {
		if patient.ID == patientID {
			return patient, nil
		}
	}
	return nil, fmt.Errorf("patient %s not found", patientID)
}

func (r *memPatientRepo) GetByMRN(_ context.Context, mrn string) (*ehr.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, patient := range r.patients {
		if patient.MRN == mrn {
			return patient, nil
		}
	}
	return nil, fmt.Errorf("patient %s not found", mrn)
}

func (r *memPatientRepo) UpdateByID(_ context.Context, patient *ehr.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.patients {
		if existing.ID == patient.ID {
			r.patients[i] = patient
			return nil
		}
	}
	return fmt.Errorf("patient %s not found", patient.ID)
}

func (r *memPatientRepo) DeleteByID(_ context.Context, patientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.patients {
		if existing.ID == patientID {
			r.patients = append(r.patients[:i], r.patients[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("patient %s not found", patientID)
}

// memAppointmentRepo is an in-memory scheduling.AppointmentRepository.
type memAppointmentRepo struct {
	mu           sync.Mutex
	appointments []*scheduling.Appointment
}

func (r *memAppointmentRepo) Create(_ context.Context, appointment *scheduling.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments = append(r.appointments, appointment)
	return nil
}

func (r *memAppointmentRepo) List(_ context.Context, query *scheduling.AppointmentQuery) ([]*scheduling.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*scheduling.Appointment
	for _, appointment := range r.appointments {
		if query != nil && query.Status != "" && appointment.Status != query.Status {
			continue
		}
		out = append(out, appointment)
	}
	return out, nil
}

func (r *memAppointmentRepo) GetByCode(_ context.Context, code string) (*scheduling.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, appointment := range r.appointments {
		if appointment.Code == code {
			return appointment, nil
		}
	}
	return nil, fmt.Errorf("appointment %s not found", code)
}

func (r *memAppointmentRepo) UpdateByID(_ context.Context, appointment *scheduling.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.appointments {
		if existing.ID == appointment.ID {
			r.appointments[i] = appointment
			return nil
		}
	}
	return fmt.Errorf("appointment %s not found", appointment.ID)
}

func (r *memAppointmentRepo) NextCode(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("A%03d", len(r.appointments)+1), nil
}

// memOrderRepo is an in-memory orders.OrderRepository.
type memOrderRepo struct {
	mu     sync.Mutex
	orders []*orders.ClinicalOrder
}

func (r *memOrderRepo) Create(_ context.Context, order *orders.ClinicalOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, order)
	return nil
}

func (r *memOrderRepo) List(_ context.Context, query *orders.OrderQuery) ([]*orders.ClinicalOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*orders.ClinicalOrder
	for _, order := range r.orders {
		if query != nil && query.Status != "" && order.Status != query.Status {
			continue
		}
		out = append(out, order)
	}
	return out, nil
}

func (r *memOrderRepo) GetByCode(_ context.Context, code string) (*orders.ClinicalOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.Code == code {
			return order, nil
		}
	}
	return nil, fmt.Errorf("order %s not found", code)
}

func (r *memOrderRepo) UpdateByID(_ context.Context, order *orders.ClinicalOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.orders {
		if existing.ID == order.ID {
			r.orders[i] = order
			return nil
		}
	}
	return fmt.Errorf("order %s not found", order.ID)
}

// stubRetriever returns canned scored chunks.
type stubRetriever struct {
	chunks []*guidelines.ScoredChunk
	err    error
}

func (r *stubRetriever) Query(_ context.Context, _ string, _ int) ([]*guidelines.ScoredChunk, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.chunks, nil
}

// memTranscriptStore collects saved transcripts.
type memTranscriptStore struct {
	mu    sync.Mutex
	saved []*transcripts.Transcript
	err   error
}

func (s *memTranscriptStore) Save(_ context.Context, transcript *transcripts.Transcript) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, transcript)
	return nil
}

func (s *memTranscriptStore) List(_ context.Context, _ int) ([]*transcripts.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*transcripts.Transcript, len(s.saved))
	copy(out, s.saved)
	return out, nil
}

func (s *memTranscriptStore) Close(_ context.Context) error { return nil }

// capturePublisher collects published events.
type capturePublisher struct {
	mu     sync.Mutex
	events []*events.EncounterEvent
}

func (p *capturePublisher) Publish(_ context.Context, event *events.EncounterEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) byType(eventType string) []*events.EncounterEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*events.EncounterEvent
	for _, event := range p.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}
