// Package service provides the business logic layer for the merge bakery game.
//
// The service package implements:
//   - Multi-session game management
//   - Catalog loading and selection
//   - Board, order, task and energy operations with validation
//   - Deferred-commit and energy regeneration ticks
//   - Session lifecycle management
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, persistence and lifecycle.
// CatalogManager loads and lists item catalogs.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation, catalog management, and
// business logic orchestration. Each session maintains its own game engine
// instance with independent state. A single service-level mutex serializes
// engine operations; engines themselves are single-threaded state machines.
//
// Usage:
//
//	sessionMgr := session.NewManager(persistence)
//	catalogMgr := catalog.NewManager("catalogs")
//	gameService := service.NewGameService(sessionMgr, catalogMgr, nil)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "default")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Execute operations
//	result, err := gameService.SpawnItem(ctx, sessionInfo.ID, "3-3")
//
// Ticks:
//
// Callers are expected to pump Tick at a short interval (the main server uses
// 100ms) so that deferred spawn and merge commits land, and EnergyTick at the
// regeneration interval. Both return the sessions whose state changed so the
// transport layer can broadcast fresh snapshots.
package service
