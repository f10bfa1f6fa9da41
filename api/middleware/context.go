package middleware

import "context"

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxProjectID contextKey = "project_id"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func ProjectIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxProjectID).(string); ok {
		return v
	}
	return ""
}

// WithUserID injects the resolved user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithProjectID injects the project identifier into the context for
// downstream handlers.
func WithProjectID(ctx context.Context, projectID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxProjectID, projectID)
}
