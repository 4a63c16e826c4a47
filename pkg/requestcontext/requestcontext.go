// Package requestcontext provides typed accessors for request-scoped values.
// Handlers and services read identity and correlation data through these
// helpers instead of reaching into ambient process state.
package requestcontext

import "context"

type requestIDKey struct{}
type clientIPKey struct{}
type deviceKey struct{}
type adminKey struct{}

// AdminIdentity is the authenticated admin attached to a request after the
// session gate has validated it.
type AdminIdentity struct {
	SessionID string
	Username  string
}

// WithRequestID returns a context carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID retrieves the request ID from the context, or "" if absent.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithClientIP returns a context carrying the client IP address.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP retrieves the client IP from the context, or "" if absent.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

// WithDevice returns a context carrying the client device display name.
func WithDevice(ctx context.Context, device string) context.Context {
	return context.WithValue(ctx, deviceKey{}, device)
}

// Device retrieves the client device display name, or "" if absent.
func Device(ctx context.Context) string {
	if device, ok := ctx.Value(deviceKey{}).(string); ok {
		return device
	}
	return ""
}

// WithAdmin returns a context carrying the authenticated admin identity.
func WithAdmin(ctx context.Context, identity AdminIdentity) context.Context {
	return context.WithValue(ctx, adminKey{}, identity)
}

// Admin retrieves the authenticated admin identity from the context.
// The second return value reports whether an identity was present.
func Admin(ctx context.Context) (AdminIdentity, bool) {
	identity, ok := ctx.Value(adminKey{}).(AdminIdentity)
	return identity, ok
}
