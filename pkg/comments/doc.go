// Package comments is the read model the notification handlers query:
// comments, their authors with per-user notification settings, and the
// assets (articles) comments are posted on.
//
// Store has two implementations. MemoryStore backs tests and the local
// single-binary setup; MongoStore reads the "comments", "users" and
// "assets" collections with the official MongoDB driver.
//
// Notification settings default to off: User.Enabled returns false for any
// setting that was never stored.
package comments
