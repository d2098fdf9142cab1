// Package webhooks normalizes gateway webhook payloads and verifies their
// shared secret.
//
// Normalization is table driven: each InboundMessage field lists the raw keys
// it accepts, tried in order. New payload dialects are supported by extending
// the table, not the dispatch code.
package webhooks
