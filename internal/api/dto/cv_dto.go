package dto

// PersonalInfoPayload is the identity block of a CV payload.
type PersonalInfoPayload struct {
	FirstName   string  `json:"firstName" validate:"required,min=3,max=50"`
	LastName    string  `json:"lastName" validate:"required,min=3,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=5"`
}

// EducationPayload is one education entry of a CV payload.
type EducationPayload struct {
	Degree      string `json:"degree" validate:"required,min=2"`
	Institution string `json:"institution" validate:"required,min=2"`
	Year        *int   `json:"year" validate:"required,eduyear"`
}

// ExperiencePayload is one experience entry of a CV payload.
type ExperiencePayload struct {
	JobTitle string `json:"jobTitle" validate:"required,min=2"`
	Company  string `json:"company" validate:"required,min=2"`
	Years    *int   `json:"years" validate:"required,min=0,max=50"`
}

// CVPayload is the full CV document payload used for create and update.
// Unknown fields at any level are rejected by strict decoding.
type CVPayload struct {
	PersonalInfo *PersonalInfoPayload `json:"personalInfo" validate:"required"`
	Education    []EducationPayload   `json:"education" validate:"required,dive"`
	Experience   []ExperiencePayload  `json:"experience" validate:"required,dive"`
	IsVisible    *bool                `json:"isVisible,omitempty"`
}

// SetVisibilityRequest toggles the per-CV visibility flag.
type SetVisibilityRequest struct {
	IsVisible *bool `json:"isVisible" validate:"required"`
}
