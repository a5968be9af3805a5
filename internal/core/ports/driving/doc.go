// Package driving defines the driving ports of the hexagon: the interfaces
// through which the outside world (CLI, watchers) invokes the core services.
package driving
