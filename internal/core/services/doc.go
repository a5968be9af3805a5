// Package services contains the core application services of the hexagon.
// Services orchestrate the driven ports (parser, index, config) and expose
// the driving-port surface consumed by the CLI and the filesystem watcher.
package services
