// Package request implements the request construction contract shared by every
// resource module of the SDK.
//
// A resource operation is described by an Endpoint (verb, path segments and
// whether it is session-scoped). The Builder turns an endpoint plus typed query
// and body values into a lazy Call bound to a Transport. Nothing touches the
// network until Call.Do is invoked.
//
// # Query parameters
//
// Query values are typed structs encoded with go-querystring. Optional fields are
// pointers tagged omitempty, so an absent value never reaches the query string:
//
//	type listQuery struct {
//		Limit  *int    `url:"limit,omitempty"`
//		FromID *string `url:"fromId,omitempty"`
//	}
//
// # Authorization
//
// Session-scoped endpoints read the active Session from a SessionSource at the
// moment the operation is invoked. When no session is active the Builder returns
// ErrNoActiveSession and the transport is never called.
//
// # Errors
//
// Configuration and session errors are returned synchronously by Builder.Build.
// Transport errors are returned by Call.Do exactly as the Transport produced them.
package request
