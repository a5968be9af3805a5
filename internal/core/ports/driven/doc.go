// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentParser: Turns raw file content into a ContentNode
//   - ContentIndex: Stores, mutates and searches content chunks
//   - Connector: Streams raw files from a content source
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - UpdateListener: Observes index mutations; registrations are optional
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or parser package
package driven
