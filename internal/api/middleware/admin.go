package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
)

// ContextKeyIsAdmin is set by RequireAdmin and by LoadRole for handlers that
// branch on the caller's role.
const ContextKeyIsAdmin = "isAdmin"

type AdminUserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// RequireAdmin gates a route group to admin users. It must run after
// VerifyJWT.
func RequireAdmin(svc AdminUserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := GetUserID(ctx)
		if !ok {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		user, err := svc.GetUser(ctx.Request.Context(), userID)
		if err != nil {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !user.IsAdmin {
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}

		ctx.Set(ContextKeyIsAdmin, true)
		ctx.Next()
	}
}

// LoadRole resolves the caller's role without gating the route, so handlers
// on user-facing routes can honor admin overrides. A failed lookup leaves the
// caller a regular user. It must run after VerifyJWT.
func LoadRole(svc AdminUserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := GetUserID(ctx)
		if !ok {
			ctx.Next()
			return
		}

		user, err := svc.GetUser(ctx.Request.Context(), userID)
		if err == nil && user.IsAdmin {
			ctx.Set(ContextKeyIsAdmin, true)
		}

		ctx.Next()
	}
}

// IsAdmin reports whether RequireAdmin or LoadRole identified the caller as
// an admin.
func IsAdmin(ctx *gin.Context) bool {
	return ctx.GetBool(ContextKeyIsAdmin)
}
