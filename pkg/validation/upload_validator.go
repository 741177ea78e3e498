package validation

import (
	"fmt"
	"strings"
)

// UploadLimits defines configurable limits for upload validation
type UploadLimits struct {
	MaxBytes            int64
	AllowedContentTypes []string
}

// DefaultUploadLimits returns the default upload limits
func DefaultUploadLimits() UploadLimits {
	return UploadLimits{
		MaxBytes: 10 * 1024 * 1024,
		AllowedContentTypes: []string{
			"image/jpeg",
			"image/jpg",
			"image/png",
			"image/gif",
			"image/bmp",
			"image/webp",
		},
	}
}

// ValidationIssue describes one failed upload check
type ValidationIssue struct {
	Code    string
	Message string
}

// UploadValidator handles upload validation logic
type UploadValidator struct {
	limits UploadLimits
}

// NewUploadValidator creates a validator with default limits
func NewUploadValidator() *UploadValidator {
	return &UploadValidator{limits: DefaultUploadLimits()}
}

// NewUploadValidatorWithLimits creates a validator with custom limits
func NewUploadValidatorWithLimits(limits UploadLimits) *UploadValidator {
	return &UploadValidator{limits: limits}
}

// Validate checks the declared content type and payload size
func (v *UploadValidator) Validate(contentType string, size int64) []ValidationIssue {
	var issues []ValidationIssue

	if size <= 0 {
		issues = append(issues, ValidationIssue{
			Code:    "empty_payload",
			Message: "uploaded image is empty",
		})
	}
	if v.limits.MaxBytes > 0 && size > v.limits.MaxBytes {
		issues = append(issues, ValidationIssue{
			Code: "payload_too_large",
			Message: fmt.Sprintf("image exceeds the maximum upload size of %d bytes (got %d)",
				v.limits.MaxBytes, size),
		})
	}
	if !v.isAllowedContentType(contentType) {
		issues = append(issues, ValidationIssue{
			Code: "unsupported_content_type",
			Message: fmt.Sprintf("content type %q is not supported, expected one of: %s",
				contentType, strings.Join(v.limits.AllowedContentTypes, ", ")),
		})
	}

	return issues
}

func (v *UploadValidator) isAllowedContentType(contentType string) bool {
	// Strip media type parameters, e.g. "image/png; charset=binary"
	normalized, _, _ := strings.Cut(contentType, ";")
	normalized = strings.ToLower(strings.TrimSpace(normalized))

	for _, allowed := range v.limits.AllowedContentTypes {
		if normalized == allowed {
			return true
		}
	}
	return false
}

// ConvertIssuesToMessages flattens issues into human-readable messages
func (v *UploadValidator) ConvertIssuesToMessages(issues []ValidationIssue) []string {
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		messages = append(messages, issue.Message)
	}
	return messages
}
