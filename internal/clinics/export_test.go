package clinics

// AssistantsSQL exposes the assistants option query for tests.
var AssistantsSQL = assistantsQuery

// ClinicsSQL exposes the clinics option query for tests.
var ClinicsSQL = clinicsQuery
