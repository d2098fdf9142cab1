// Package inbound runs the webhook receiver: one POST route guarded by an
// optional shared secret, a fixed health route, and concurrent fan-out of each
// normalized message to every registered handler.
package inbound
