// Package operation holds the error taxonomy and metrics shared by every
// Yourang API call.
//
// Vendor failures surface from the transport as *transport.TransportError
// and are converted by FromTransportError into *Error, which carries a
// user-facing suggestion. Every dispatched operation is counted and timed
// through RecordRequest; the resulting Prometheus series are served by the
// MCP server when a metrics address is configured.
//
// Subpackages:
//   - transport: the HTTP transport (auth headers, TLS, timeouts, client-side rate limiting)
//   - api: the JSON request client and operation metadata types
package operation
