package secrets

import "errors"

var (
	ErrEmptyMasterKey      = errors.New("secrets: empty master key")
	ErrEmptyPurpose        = errors.New("secrets: empty key purpose")
	ErrKeyDerivationFailed = errors.New("secrets: key derivation failed")
	ErrKeyGenerationFailed = errors.New("secrets: key generation failed")
)
