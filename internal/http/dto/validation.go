package dto

import (
	"fmt"
	"net/url"
	"strings"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ToResponse(errs []ValidationError) string {
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// validateURL only rejects values that cannot be parsed at all; the download
// tool decides which sites it supports.
func validateURL(urlVal *string) []ValidationError {
	var errs []ValidationError
	if urlVal != nil && strings.TrimSpace(*urlVal) != "" {
		if _, err := url.Parse(strings.TrimSpace(*urlVal)); err != nil {
			errs = append(errs, ValidationError{Field: "url", Message: "invalid URL format"})
		}
	}
	return errs
}
