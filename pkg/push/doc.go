// Package push is the mobile push channel client of the notification
// delivery engine. The direct path posts to FCM's legacy send endpoint with
// server-key auth; the relay path mirrors the same logical payload through
// the shared relay. Routing between the two follows the per-call transport
// decision, with one automatic in-attempt fallback to the relay when the
// direct call fails at the network level.
package push
