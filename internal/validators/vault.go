package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/secure-vault/models"
)

const (
	FieldID       = "id"
	FieldUserID   = "user_id"
	FieldTitle    = models.FieldTitle
	FieldUsername = models.FieldUsername
	FieldPassword = models.FieldPassword
	FieldURL      = models.FieldURL
	FieldNotes    = models.FieldNotes
	FieldTags     = models.FieldTags
)

const (
	// MaxTags is the largest tag list accepted for one record.
	MaxTags = 64

	// MaxFieldLength bounds a single cipher string.
	MaxFieldLength = 1 << 20

	// MaxImportItems bounds one import request.
	MaxImportItems = 10000
)

// VaultRecordValidator validates vault records, partial updates and import
// batches.
type VaultRecordValidator struct{}

// NewVaultRecordValidator returns a [Validator] for vault payloads.
func NewVaultRecordValidator() Validator {
	return &VaultRecordValidator{}
}

func (v *VaultRecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VaultRecord:
		return v.validateRecord(value, fields...)
	case *models.VaultRecord:
		return v.validateRecord(*value, fields...)

	case models.VaultRecordUpdate:
		return v.validateUpdate(value)
	case *models.VaultRecordUpdate:
		return v.validateUpdate(*value)

	case []models.VaultRecord:
		return v.validateImport(value)

	default:
		return ErrUnsupportedType
	}
}

func (v *VaultRecordValidator) validateRecord(rec models.VaultRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldTitle, FieldUsername, FieldPassword, FieldURL, FieldNotes, FieldTags}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if rec.ID <= 0 {
				return ErrInvalidRecordID
			}
		case FieldUserID:
			if rec.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldTitle:
			if err := requiredField(rec.Title, ErrEmptyTitle, FieldTitle); err != nil {
				return err
			}
		case FieldUsername:
			if err := requiredField(rec.Username, ErrEmptyUsername, FieldUsername); err != nil {
				return err
			}
		case FieldPassword:
			if err := requiredField(rec.Password, ErrEmptyPassword, FieldPassword); err != nil {
				return err
			}
		case FieldURL:
			if err := maxLength(rec.URL, FieldURL); err != nil {
				return err
			}
		case FieldNotes:
			if err := maxLength(rec.Notes, FieldNotes); err != nil {
				return err
			}
		case FieldTags:
			if err := validateTags(rec.Tags); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

// validateUpdate applies the record rules to the fields present in u.
// Absent fields are left untouched by the update, so they are not checked.
func (v *VaultRecordValidator) validateUpdate(u models.VaultRecordUpdate) error {
	if u.ID <= 0 {
		return ErrInvalidRecordID
	}
	if u.UserID <= 0 {
		return ErrInvalidUserID
	}
	if u.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	checks := []struct {
		value *models.CipherString
		err   error
		field string
	}{
		{u.Title, ErrEmptyTitle, FieldTitle},
		{u.Username, ErrEmptyUsername, FieldUsername},
		{u.Password, ErrEmptyPassword, FieldPassword},
	}
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		if err := requiredField(*c.value, c.err, c.field); err != nil {
			return err
		}
	}
	for field, value := range map[string]*models.CipherString{FieldURL: u.URL, FieldNotes: u.Notes} {
		if value == nil {
			continue
		}
		if err := maxLength(*value, field); err != nil {
			return err
		}
	}
	if u.Tags != nil {
		return validateTags(*u.Tags)
	}

	return nil
}

// validateImport checks every record of an import batch. Ownership is
// assigned by the server, so user_id is not checked.
func (v *VaultRecordValidator) validateImport(records []models.VaultRecord) error {
	if len(records) > MaxImportItems {
		return fmt.Errorf("%w: %d > %d", ErrTooManyItems, len(records), MaxImportItems)
	}

	for i, rec := range records {
		err := v.validateRecord(rec, FieldTitle, FieldUsername, FieldPassword, FieldURL, FieldNotes, FieldTags)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

func requiredField(value models.CipherString, emptyErr error, field string) error {
	if value.IsEmpty() {
		return emptyErr
	}
	return maxLength(value, field)
}

func maxLength(value models.CipherString, field string) error {
	if len(value) > MaxFieldLength {
		return fmt.Errorf("%w: %s", ErrFieldTooLong, field)
	}
	return nil
}

func validateTags(tags []models.CipherString) error {
	if len(tags) > MaxTags {
		return fmt.Errorf("%w: %d > %d", ErrTooManyTags, len(tags), MaxTags)
	}
	for i, tag := range tags {
		if tag.IsEmpty() {
			return fmt.Errorf("%w: tag %d", ErrEmptyTag, i)
		}
		if err := maxLength(tag, FieldTags); err != nil {
			return err
		}
	}
	return nil
}
