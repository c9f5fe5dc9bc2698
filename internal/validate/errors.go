package validate

import "errors"

// 字段校验的哨兵错误；消息直接面向最终用户
var (
	ErrTitleRequired = errors.New("Title is required and must be a non-empty string.")
	ErrTitleLength   = errors.New("Title must be between 2 and 64 characters.")

	ErrStakeholdersRequired  = errors.New("At least one stakeholder is required, and all must be non-empty strings.")
	ErrStakeholdersDuplicate = errors.New("Stakeholders must not contain duplicates.")
	ErrStakeholderOther      = errors.New("Stakeholders cannot be named 'other'.")
	ErrStakeholderLength     = errors.New("Each stakeholder must be between 2 and 64 characters.")

	ErrScaleRequired = errors.New("Scale is required.")
	ErrScaleFormat   = errors.New("Scale must match the pattern '1:x' where x is a positive integer, or be a textual scale.")
	ErrScaleLength   = errors.New("Scale must be between 2 and 64 characters.")
	ErrScaleOrder    = errors.New("The first number of the scale must be smaller than the second one.")

	ErrIssuanceDate = errors.New("Issuance date is required and must be in the format DD/MM/YYYY, MM/YYYY or YYYY.")

	ErrTypeRequired = errors.New("Type is required.")
	ErrTypeOther    = errors.New("Type cannot be 'Other'.")
	ErrTypeLength   = errors.New("Type must be between 2 and 64 characters.")

	ErrLanguageLength    = errors.New("Language must be between 2 and 64 characters.")
	ErrNrPagesNegative   = errors.New("Number of pages must be a non-negative integer.")
	ErrDescriptionLength = errors.New("Description must not exceed 1000 characters.")

	ErrOutsideBoundary     = errors.New("Geolocation must be within the Kiruna boundary.")
	ErrGeolocationConflict = errors.New("Geolocation must be either entire-municipality or a valid coordinate, not both.")
	ErrCoordinateMissing   = errors.New("Latitude and longitude must both be provided.")
	ErrMunicipalityUnknown = errors.New("Municipality must be 'Entire municipality' when set.")

	ErrLinkType      = errors.New("Each link must have a valid link type.")
	ErrLinkTarget    = errors.New("Each link must reference another existing document.")
	ErrLinkDuplicate = errors.New("Links must not contain duplicates.")
)

// Errors：字段名 → 错误消息；空表示合法
type Errors map[string]string

func (e Errors) Valid() bool { return len(e) == 0 }

func (e Errors) add(field string, err error) {
	if err != nil {
		e[field] = err.Error()
	}
}
