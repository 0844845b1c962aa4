// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CredentialStore: Opaque (service, account) -> value persistence.
//     Backed by the file, sqlite, redis, or memory adapters.
//   - TokenMinter: Mints fresh Google Cloud access tokens from ambient
//     credentials when a cached one has gone stale.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
