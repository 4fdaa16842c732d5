// Package secrets derives purpose-bound keys from a single application
// secret with HKDF-SHA256, so one APP_SECRET can feed several signers
// (for example unsubscribe tokens) without reusing key material.
package secrets
