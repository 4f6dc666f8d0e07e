// Package session provides session management for the merge bakery game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - JSON file persistence of game saves
//   - Offline energy reconciliation on load
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// FilePersistence stores each session as a JSON file whose save payload lives
// under the "merge2-storage" key, the same shape the original web client wrote
// to browser storage.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. The manager ensures
// IDs are unique and provides collision-resistant generation using
// cryptographic randomness.
//
// Persistence:
//
// When persistence is configured, sessions are written after every state
// change and lazily reloaded on first access after a restart. Loading a save
// rebuilds the engine from its catalog, restores the snapshot, and applies
// offline energy recovery for the time the save spent on disk.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions", catalogMgr)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//
//	// Create a new session
//	sess, err := manager.Create("", cat, "default")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session (falls back to disk)
//	sess, err = manager.Get(sessionID)
package session
