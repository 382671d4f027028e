// Package bridge lets the primary front-end delegate request handling to the
// secondary engine. The request adapter converts an inbound http.Request into
// the engine's normalized Call form; the response adapter translates the
// engine's simulated Result back onto the caller's http.ResponseWriter.
// Method, path, query string, headers (including multi-valued headers) and
// body bytes survive the round trip losslessly.
//
// No per-request failure escapes the bridge: every outcome is converted into
// a well-formed HTTP response.
package bridge
