package settings

import "errors"

var (
	ErrSettingNotFound = errors.New("settings: setting not found")
	ErrEmptyKey        = errors.New("settings: empty key")
	ErrLoadFailed      = errors.New("settings: failed to load setting")
)
