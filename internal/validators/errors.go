package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID    = errors.New("invalid user ID")
	ErrInvalidRecordID  = errors.New("invalid vault item ID")
	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyUsername    = errors.New("username is required")
	ErrEmptyPassword    = errors.New("password is required")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
	ErrTooManyTags      = errors.New("too many tags")
	ErrEmptyTag         = errors.New("tags cannot contain empty values")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
	ErrTooManyItems     = errors.New("too many items to import")

	ErrInvalidEmail     = errors.New("invalid email")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
)
