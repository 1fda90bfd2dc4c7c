// Package domain holds the ad board entities and the errors shared between layers
package domain

import "errors"

// ErrNotFound is returned when a referenced file or record does not exist
var ErrNotFound = errors.New("not found")

// ValidationError reports bad client input. Message is shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// User-facing messages
const (
	MsgSocialIDRequired = "آیدی تلگرام یا اینستاگرام اجباری است"
	MsgAdCreated        = "آگهی با موفقیت ثبت شد"
	MsgFileNotAllowed   = "فرمت فایل مجاز نیست"
	MsgNoFileSelected   = "فایلی انتخاب نشده است"
	MsgLikeRecorded     = "لایک ثبت شد"
	MsgMessageDeleted   = "پیام حذف شد"
	MsgNothingToDelete  = "فایلی وجود ندارد"
	MsgFileNotFound     = "فایل پیدا نشد"
	MsgAdNotFound       = "آگهی پیدا نشد"
	SampleGlobalMessage = "پیام همگانی نمونه"
)
