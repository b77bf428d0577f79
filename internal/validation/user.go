package validation

import "github.com/cvforge/cv-service/internal/api/dto"

// ValidateRegistration checks a new account payload. Name, email and
// password are all mandatory.
func ValidateRegistration(payload *dto.RegisterRequest) error {
	return checkStruct(payload)
}

// ValidateUserUpdate checks a partial profile update. Only provided fields
// are validated.
func ValidateUserUpdate(payload *dto.UpdateUserRequest) error {
	return checkStruct(payload)
}
