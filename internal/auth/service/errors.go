package service

import (
	commonerrors "sitehost/internal/common/errors"
)

var (
	ErrMissingFields = commonerrors.NewDomainError(
		"MISSING_FIELDS",
		commonerrors.CategoryValidation,
		400,
		"email and password are required",
	)

	ErrInvalidEmail = commonerrors.NewDomainError(
		"INVALID_EMAIL",
		commonerrors.CategoryValidation,
		400,
		"email is not valid",
	)

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two cases stay indistinguishable to the caller.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		401,
		"invalid email or password",
	)

	ErrUserExists = commonerrors.NewDomainError(
		"USER_EXISTS",
		commonerrors.CategoryConflict,
		409,
		"user already exists",
	)

	ErrInvalidToken = commonerrors.ErrInvalidToken

	ErrUserNotFound = commonerrors.ErrUserNotFound

	ErrStorage = commonerrors.ErrStorageIO
)
