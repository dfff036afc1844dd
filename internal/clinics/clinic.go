// Package clinics serves the clinic and assistant reference data used as
// call filter options.
package clinics

import "github.com/google/uuid"

// Clinic is a site whose calls are handled by one or more assistants.
type Clinic struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Assistant is an AI voice agent that belongs to exactly one clinic.
type Assistant struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ClinicID uuid.UUID `json:"clinic_id"`
}

// Options lists every clinic and the assistants available for the selected clinic.
type Options struct {
	Clinics    []Clinic    `json:"clinics"`
	Assistants []Assistant `json:"assistants"`
}
