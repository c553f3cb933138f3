package middleware

import "context"

type ctxKey string

const (
	ctxAdminID    ctxKey = "admin_id"
	ctxAdminEmail ctxKey = "admin_email"
)

// AdminIDFromContext returns the authenticated admin's ID, if present.
func AdminIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxAdminID).(string)
	return id, ok && id != ""
}

// AdminEmailFromContext returns the authenticated admin's email, if present.
func AdminEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(ctxAdminEmail).(string)
	return email, ok && email != ""
}
