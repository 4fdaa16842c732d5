// Package notifications turns domain events into per-user email notifications.
//
// Handlers are plugins. Each one subscribes to one event name, decides for a
// single event occurrence whether some user should be notified (returning a
// Notification or nil), and later supplies the values that fill the body
// template (Hydrate). A handler may also implement Superseder to suppress
// other categories produced for the same occurrence, e.g. a "staffReply"
// handler hiding the generic "reply" one.
//
// # Dispatch
//
// Manager.Attach subscribes one listener per event name found in the
// Registry. For each occurrence the manager:
//
//  1. derives a system context detached from the caller's cancellation
//  2. runs every subscribed handler concurrently; errors and panics are
//     logged and count as "no notification"
//  3. waits for all of them, then drops superseded candidates
//     (FilterSuperseded)
//  4. delivers the survivors concurrently and waits for every attempt
//
// Handlers are responsible for checking the recipient's opt-in settings; the
// manager trusts their decision.
//
// # Delivery
//
// Manager.Send resolves the organization name from the settings store, issues
// an unsubscribe token, composes subject and body from the translations
// "<namespace>.categories.<category>.subject" and ".body" with positional
// placeholders, and hands a Message to the Transport. A failure ends only that
// attempt; it is logged and returned but never affects sibling deliveries.
//
// # Usage
//
//	reg := notifications.NewRegistry()
//	if err := reg.Register(featured.New(store), reply.New(store)); err != nil {
//		return err
//	}
//	mgr := notifications.NewManager(reg, settingsStore, issuer, translator, transport,
//		notifications.WithLogger(log),
//	)
//	if err := mgr.Attach(bus); err != nil {
//		return err
//	}
package notifications
