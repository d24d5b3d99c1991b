// Package metrics exposes prometheus counters for facade operations and
// transfers. Counters are usable before Init; Init only registers them with
// the default registry so the HTTP server can export them on /metrics.
package metrics
