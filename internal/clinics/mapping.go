package clinics

import (
	"github.com/JaimeStill/callqa/pkg/query"
	"github.com/JaimeStill/callqa/pkg/repository"
)

var clinicProjection = query.
	NewProjectionMap("public", "clinics", "cl").
	Project("id", "ID").
	Project("name", "Name")

var assistantProjection = query.
	NewProjectionMap("public", "assistants", "a").
	Project("id", "ID").
	Project("name", "Name").
	Project("clinic_id", "ClinicID")

var byName = query.SortField{Field: "Name"}

func scanClinic(s repository.Scanner) (Clinic, error) {
	var c Clinic
	err := s.Scan(&c.ID, &c.Name)
	return c, err
}

func scanAssistant(s repository.Scanner) (Assistant, error) {
	var a Assistant
	err := s.Scan(&a.ID, &a.Name, &a.ClinicID)
	return a, err
}
