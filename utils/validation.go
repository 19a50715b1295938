package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// Password policy patterns
	hasLower  = regexp.MustCompile(`[a-z]`)
	hasUpper  = regexp.MustCompile(`[A-Z]`)
	hasNumber = regexp.MustCompile(`[0-9]`)
)

// SanitizeString removes potentially dangerous characters and HTML tags
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)

	htmlTagRegex := regexp.MustCompile(`<[^>]*>`)
	sanitized = htmlTagRegex.ReplaceAllString(sanitized, "")

	jsEventRegex := regexp.MustCompile(`on\w+="[^"]*"`)
	sanitized = jsEventRegex.ReplaceAllString(sanitized, "")

	return sanitized
}

// ValidateEmail checks if the email has a valid format
func ValidateEmail(email string) (bool, string) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, "Email is required"
	}
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// ValidateUsername checks if the username meets the requirements
func ValidateUsername(username string) (bool, string) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, "Username is required"
	}
	if !usernameRegex.MatchString(username) {
		return false, "Username must be 3-20 characters and contain only letters, numbers and underscores"
	}
	return true, ""
}

// ValidatePassword enforces the password policy: at least 8 characters
// with one uppercase letter, one lowercase letter and one digit.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters long"
	}
	if !hasUpper.MatchString(password) {
		return false, "Password must contain at least one uppercase letter"
	}
	if !hasLower.MatchString(password) {
		return false, "Password must contain at least one lowercase letter"
	}
	if !hasNumber.MatchString(password) {
		return false, "Password must contain at least one number"
	}
	return true, ""
}

// ValidateProductFields validates the product fields shared by the
// create and update paths. imageLimit bounds the image set size.
func ValidateProductFields(name, description string, price float64, images []string, imageLimit int) FieldValidationErrors {
	errs := FieldValidationErrors{}

	if strings.TrimSpace(name) == "" {
		errs = append(errs, FieldValidationError{"name", "Name is required"})
	} else if len(name) > 120 {
		errs = append(errs, FieldValidationError{"name", "Name must not exceed 120 characters"})
	}

	if strings.TrimSpace(description) == "" {
		errs = append(errs, FieldValidationError{"description", "Description is required"})
	}

	if price <= 0 {
		errs = append(errs, FieldValidationError{"price", "Price must be greater than 0"})
	}

	if len(images) == 0 {
		errs = append(errs, FieldValidationError{"images", "At least one image is required"})
	} else if len(images) > imageLimit {
		errs = append(errs, FieldValidationError{"images", fmt.Sprintf("A product can have at most %d images", imageLimit)})
	}
	for i, entry := range images {
		if strings.TrimSpace(entry) == "" {
			errs = append(errs, FieldValidationError{"images", fmt.Sprintf("Image entry %d is empty", i+1)})
			break
		}
	}

	return errs
}
