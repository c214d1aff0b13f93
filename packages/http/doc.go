// Package http sends resolved xdiff requests.
//
// It wraps the standard library's http package with:
//   - Optional timeout, proxy and TLS verification settings
//   - Eager body reading so the connection is released before formatting
//   - Error codes separating build failures from network failures
//
// Redirects and retries are left to net/http defaults.
package http
