// Package metrics exposes Prometheus instruments for the door server.
package metrics
