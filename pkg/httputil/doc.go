// Package httputil provides the JSON plumbing shared by the connline HTTP API.
//
// # Responses
//
// [WriteJSON] encodes a value with a status code. [WriteError] turns any
// error into a {code, message} body, choosing the status from the error code
// (see [StatusFor]):
//
//   - INVALID_* codes: 400 Bad Request
//   - NOT_FOUND: 404 Not Found
//   - TIMEOUT: 504 Gateway Timeout
//   - NETWORK_ERROR: 502 Bad Gateway
//   - UNSUPPORTED: 501 Not Implemented
//   - anything else: 500 Internal Server Error
//
// # Requests
//
// [DecodeJSON] reads a size-limited request body, rejecting unknown fields
// and trailing data. Target errors keep their INVALID_TARGET_SPEC code;
// other decoding failures are reported as INVALID_INPUT.
package httputil
