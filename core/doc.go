// Package core contains the canonical contracts shared by the outbound client
// and the inbound webhook receiver: configuration, message and event models,
// the error taxonomy, and telemetry. Transport and HTTP server adapters depend
// on this package; core must not depend on them.
package core
