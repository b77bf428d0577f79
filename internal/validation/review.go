package validation

import "github.com/cvforge/cv-service/internal/api/dto"

// ValidateReviewCreate checks a new recommendation payload.
func ValidateReviewCreate(payload *dto.CreateReviewRequest) error {
	return checkStruct(payload)
}

// ValidateReviewUpdate checks an edited recommendation comment.
func ValidateReviewUpdate(payload *dto.UpdateReviewRequest) error {
	return checkStruct(payload)
}
