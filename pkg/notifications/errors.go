package notifications

import "errors"

var (
	ErrInvalidHandler          = errors.New("notifications: invalid handler")
	ErrDuplicateHandler        = errors.New("notifications: handler already registered for category and event")
	ErrRegistryAttached        = errors.New("notifications: registry is already attached")
	ErrNilSource               = errors.New("notifications: nil event source")
	ErrOrganizationNameMissing = errors.New("notifications: organization name is not configured")
	ErrSettingsLookupFailed    = errors.New("notifications: settings lookup failed")
	ErrTokenIssueFailed        = errors.New("notifications: failed to issue unsubscribe token")
	ErrHydrateFailed           = errors.New("notifications: failed to hydrate notification body")
	ErrTransportFailed         = errors.New("notifications: transport failed")
	ErrMissingRecipient        = errors.New("notifications: notification has no recipient")
)
