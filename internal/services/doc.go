// Package services implements the business logic layer of PVPulse.
// It sits between HTTP handlers and the dataset store, ensuring that
// range filtering, product resolution, series shaping, and statistics
// are centralized and testable.
//
// # Architecture
//
// Services follow these architectural principles:
//
//  1. Interface-driven design for testability
//  2. Context propagation for cancellation and tracing
//  3. Dependency injection for loose coupling
//  4. Domain-focused methods that encapsulate business rules
//
// The single DataService orchestrates the lower-level packages: it loads
// the canonical dataset from the store, narrows it with the window
// package, resolves product identifiers through the catalog matcher, and
// delegates to series and stats for the derived views the transport
// layer serves.
//
// # Error Handling
//
// Services translate domain conditions into typed application errors:
// an unknown product becomes a not-found AppError, an empty dataset
// becomes ErrDataUnavailable, and a product with no surviving
// observations in the requested window becomes ErrNoData. The HTTP
// error handler maps these onto RFC 7807 responses.
package services
