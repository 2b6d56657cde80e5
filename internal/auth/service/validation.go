package service

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func validateCredentials(email, password string) error {
	creds := credentials{Email: email, Password: password}

	err := validate.Struct(creds)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ErrMissingFields
	}

	for _, fe := range errs {
		if fe.Tag() == "required" {
			return ErrMissingFields
		}
	}

	return ErrInvalidEmail
}
