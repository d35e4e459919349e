package console

import (
	"errors"

	"finance/internal/core"
	applog "finance/internal/log"
)

// Describe turns err into the message shown to the user.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, core.ErrStorageUnavailable):
		return "Error: the database is unavailable. Please try again later."
	case errors.Is(err, core.ErrNoBudget):
		return "No budget set for that month."
	case errors.Is(err, core.ErrNotFound):
		return "Not found."
	case errors.Is(err, core.ErrNoData):
		return "No data available to generate a report."
	case errors.Is(err, core.ErrInvalidAmount):
		return "Invalid amount. Enter a non-negative number such as 12.34."
	case errors.Is(err, core.ErrInvalidMonth):
		return "Invalid month. Use YYYY-MM or a month name such as January."
	case errors.Is(err, core.ErrInvalidKind):
		return "Invalid transaction type."
	case errors.Is(err, core.ErrEmptyUsername):
		return "Username cannot be empty."
	case errors.Is(err, core.ErrInvalidPassword):
		return "Password does not meet the criteria."
	case errors.Is(err, core.ErrAlreadyExists):
		return "Username already exists."
	case errors.Is(err, core.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, ErrInvalidNumber):
		return "Invalid input. Please enter a number."
	default:
		return "Unexpected error: " + err.Error()
	}
}

// errorType classifies err for the error_type log field.
func errorType(err error) string {
	switch {
	case errors.Is(err, core.ErrStorageUnavailable):
		return applog.ErrorTypeStorage
	case errors.Is(err, core.ErrNotFound):
		return applog.ErrorTypeNotFound
	case errors.Is(err, core.ErrNoData):
		return applog.ErrorTypeNoData
	case errors.Is(err, core.ErrInvalidCredentials):
		return applog.ErrorTypeAuth
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidMonth),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrEmptyUsername),
		errors.Is(err, core.ErrInvalidPassword),
		errors.Is(err, core.ErrAlreadyExists),
		errors.Is(err, ErrInvalidNumber):
		return applog.ErrorTypeValidation
	default:
		return applog.ErrorTypeInternal
	}
}
