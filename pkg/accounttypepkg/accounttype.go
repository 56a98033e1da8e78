// Package accounttypepkg provides common account type related functionality for apps.
package accounttypepkg

import "github.com/go-playground/validator/v10"

// Constants for all supported account types.
const (
	Personal = "PERSONAL"
	Business = "BUSINESS"
)

// SupportedAccountTypes holds all the supported account types.
var SupportedAccountTypes = []string{
	Personal,
	Business,
}

// IsSupportedAccountType returns true if the account type is supported.
func IsSupportedAccountType(accountType string) bool {
	for _, t := range SupportedAccountTypes {
		if t == accountType {
			return true
		}
	}

	return false
}

// ValidAccountType validates whether the account type is supported.
var ValidAccountType validator.Func = func(fl validator.FieldLevel) bool {
	if t, ok := fl.Field().Interface().(string); ok {
		return IsSupportedAccountType(t)
	}
	return false
}
