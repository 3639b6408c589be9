// Package requestcontext carries request-scoped values from HTTP middleware
// to services and auditors without those layers importing net/http.
//
// Tests inject values directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithPrincipal(ctx, userID, "nurse@example.com", "nurse")
package requestcontext

import (
	"context"
	"time"

	id "intake/pkg/domain"
)

type key int

const (
	principalKey key = iota
	clientKey
	requestIDKey
	requestTimeKey
)

type principal struct {
	userID id.UserID
	email  string
	role   string
}

type client struct {
	ip        string
	userAgent string
}

func value[T any](ctx context.Context, k key) T {
	v, _ := ctx.Value(k).(T)
	return v
}

// WithPrincipal records the authenticated caller.
func WithPrincipal(ctx context.Context, userID id.UserID, email, role string) context.Context {
	return context.WithValue(ctx, principalKey, principal{userID: userID, email: email, role: role})
}

// UserID is the authenticated caller, or the nil ID outside authenticated
// requests.
func UserID(ctx context.Context) id.UserID { return value[principal](ctx, principalKey).userID }

func Email(ctx context.Context) string { return value[principal](ctx, principalKey).email }

func Role(ctx context.Context) string { return value[principal](ctx, principalKey).role }

// WithClientMetadata records the caller's address and User-Agent.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	return context.WithValue(ctx, clientKey, client{ip: clientIP, userAgent: userAgent})
}

func ClientIP(ctx context.Context) string { return value[client](ctx, clientKey).ip }

func UserAgent(ctx context.Context) string { return value[client](ctx, clientKey).userAgent }

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestID(ctx context.Context) string { return value[string](ctx, requestIDKey) }

// WithTime pins the request clock.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey, t)
}

// Now is the pinned request time, or the wall clock when none is set.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey).(time.Time); ok {
		return t
	}
	return time.Now()
}
