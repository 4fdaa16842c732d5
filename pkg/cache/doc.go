// Package cache provides an in-process LRU cache with per-entry expiry.
//
//	c := cache.NewLRU[string, string](128, 30*time.Second)
//	c.Put("organizationName", "Daily News")
//	name, ok := c.Get("organizationName")
//
// The notifier puts it in front of remote settings stores (settings.Cached),
// so composing a burst of notifications does not hit Redis or Postgres once
// per message.
package cache
