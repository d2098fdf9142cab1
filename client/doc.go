// Package client sends outbound messages through the Fonnte HTTP gateway.
//
// Every variant (text, media, document, buttons, list) is a precondition check
// over one canonical send path, so request and result shaping are identical
// regardless of entry point. Send operations never return Go errors; failures
// are encoded in core.OutboundResult.
package client
