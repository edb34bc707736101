package types

import "context"

type ContextKey string

const (
	CtxTenantID      ContextKey = "ctx_tenant_id"
	CtxEnvironmentID ContextKey = "ctx_environment_id"
	CtxUserID        ContextKey = "ctx_user_id"
	CtxRequestID     ContextKey = "ctx_request_id"

	DefaultTenantID = "default"
	DefaultUserID   = "system"
)

func GetTenantID(ctx context.Context) string {
	if id, ok := ctx.Value(CtxTenantID).(string); ok {
		return id
	}
	return ""
}

func SetTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, CtxTenantID, tenantID)
}

func GetEnvironmentID(ctx context.Context) string {
	if id, ok := ctx.Value(CtxEnvironmentID).(string); ok {
		return id
	}
	return ""
}

func SetEnvironmentID(ctx context.Context, environmentID string) context.Context {
	return context.WithValue(ctx, CtxEnvironmentID, environmentID)
}

func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(CtxUserID).(string); ok {
		return id
	}
	return DefaultUserID
}

func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(CtxRequestID).(string); ok {
		return id
	}
	return ""
}
