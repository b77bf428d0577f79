package validation

import "github.com/cvforge/cv-service/internal/api/dto"

// ValidateCV checks a full CV payload for create and update operations.
func ValidateCV(payload *dto.CVPayload) error {
	return checkStruct(payload)
}

// ValidateVisibility checks the visibility toggle payload.
func ValidateVisibility(payload *dto.SetVisibilityRequest) error {
	return checkStruct(payload)
}
