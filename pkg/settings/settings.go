package settings

import "context"

// KeyOrganizationName is the setting holding the organization display name.
const KeyOrganizationName = "organizationName"

// Store loads named settings.
type Store interface {
	// Load returns the value for key or ErrSettingNotFound.
	Load(ctx context.Context, key string) (string, error)
}
