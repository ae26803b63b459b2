// Package app wires the fuel price pipeline into a running HTTP server:
// configuration, logging, telemetry, the dataset store, the data service,
// the websocket hub, and the chi router.
package app
