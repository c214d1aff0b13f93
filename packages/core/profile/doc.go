// Package profile holds the request templates xdiff sends and the merge
// step that applies command line overrides to them.
//
// A RequestProfile is never modified after it is built. Generate returns a
// new Resolved value with:
//   - headers from the profile, then header overrides (last write wins)
//   - Content-Type defaulted to application/json
//   - query and body overrides coerced to JSON values
//   - the body serialised as JSON or as a urlencoded form
//
// Any other content type is rejected before a request is sent.
package profile
