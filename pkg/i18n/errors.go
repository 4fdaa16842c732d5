package i18n

import "errors"

var (
	ErrNilAdapter            = errors.New("i18n: adapter is nil")
	ErrEmptyLanguage         = errors.New("i18n: empty language code")
	ErrInvalidTranslations   = errors.New("i18n: invalid translations structure")
	ErrFailedToParseJSON     = errors.New("i18n: failed to parse JSON content")
	ErrFailedToParseYAML     = errors.New("i18n: failed to parse YAML content")
	ErrParsingCancelled      = errors.New("i18n: parsing cancelled")
	ErrLoadingCancelled      = errors.New("i18n: loading translations cancelled")
	ErrFailedToReadDirectory = errors.New("i18n: failed to read translations directory")
	ErrFailedToReadFile      = errors.New("i18n: failed to read translation file")
	ErrFailedToParseFile     = errors.New("i18n: failed to parse translation file")
)
