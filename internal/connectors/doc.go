// Package connectors groups implementations of the Connector interface.
// Each connector knows how to stream raw files from one source type; the
// filesystem connector is currently the only implementation.
package connectors
