package utils

import (
	"regexp"
	"strings"
)

var (
	streetRegex = regexp.MustCompile(`^[\p{L}0-9\s,.'#\-/ºª]+$`)
	cityRegex   = regexp.MustCompile(`^[\p{L}\s\-]+$`)
	phoneRegex  = regexp.MustCompile(`^\+?[0-9\s\-]{6,20}$`)
)

// ValidateAddressFields validates address fields according to business rules.
// street, number, city, province and postal_code are required; apartment,
// country and phone are optional.
func ValidateAddressFields(street, number, apartment, city, province, postalCode, country, phone string) []FieldValidationError {
	errs := []FieldValidationError{}

	street = strings.TrimSpace(street)
	if street == "" {
		errs = append(errs, FieldValidationError{"street", "Street is required"})
	} else {
		if len(street) > 255 {
			errs = append(errs, FieldValidationError{"street", "Street must not exceed 255 characters"})
		}
		if !streetRegex.MatchString(street) {
			errs = append(errs, FieldValidationError{"street", "Street contains invalid characters"})
		}
	}

	number = strings.TrimSpace(number)
	if number == "" {
		errs = append(errs, FieldValidationError{"number", "Number is required"})
	} else if len(number) > 20 {
		errs = append(errs, FieldValidationError{"number", "Number must not exceed 20 characters"})
	}

	apartment = strings.TrimSpace(apartment)
	if len(apartment) > 50 {
		errs = append(errs, FieldValidationError{"apartment", "Apartment must not exceed 50 characters"})
	}

	city = strings.TrimSpace(city)
	if city == "" {
		errs = append(errs, FieldValidationError{"city", "City is required"})
	} else {
		if len(city) > 100 {
			errs = append(errs, FieldValidationError{"city", "City must not exceed 100 characters"})
		}
		if !cityRegex.MatchString(city) {
			errs = append(errs, FieldValidationError{"city", "City must only contain letters, spaces and hyphens"})
		}
	}

	province = strings.TrimSpace(province)
	if province == "" {
		errs = append(errs, FieldValidationError{"province", "Province is required"})
	} else if len(province) > 100 {
		errs = append(errs, FieldValidationError{"province", "Province must not exceed 100 characters"})
	}

	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		errs = append(errs, FieldValidationError{"postal_code", "Postal code is required"})
	} else if len(postalCode) > 20 {
		errs = append(errs, FieldValidationError{"postal_code", "Postal code must not exceed 20 characters"})
	}

	country = strings.TrimSpace(country)
	if len(country) > 100 {
		errs = append(errs, FieldValidationError{"country", "Country must not exceed 100 characters"})
	}

	phone = strings.TrimSpace(phone)
	if phone != "" && !phoneRegex.MatchString(phone) {
		errs = append(errs, FieldValidationError{"phone", "Phone number format is invalid"})
	}

	return errs
}
