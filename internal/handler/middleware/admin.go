package middleware

import (
	"log/slog"
	"net/http"

	"slot-booking-manager/internal/handler/httperr"
	"slot-booking-manager/internal/pkg/adminauth"
	"slot-booking-manager/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	AdminPasswordHeader = "x-admin-password"

	ctxAdminKey = "admin_authorized"
)

var (
	errMissingCredentials = errs.Mark(errs.New("admin credential missing"), errs.ErrUnauthorized)
	errBadCredentials     = errs.Mark(errs.New("admin credential rejected"), errs.ErrUnauthorized)
)

type AdminMiddleware struct {
	gate adminauth.Gate
}

func NewAdminMiddleware(gate adminauth.Gate) *AdminMiddleware {
	return &AdminMiddleware{
		gate: gate,
	}
}

// RequireAdmin rejects the request before the handler runs unless the
// x-admin-password header carries the shared admin secret.
func (m *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := c.GetHeader(AdminPasswordHeader)
		if credential == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingCredentials, "Missing credentials", nil)
			return
		}
		if !m.gate.Authorize(credential) {
			slog.Warn("admin credential rejected", "path", c.Request.URL.Path, "client_ip", c.ClientIP())
			httperr.AbortWithError(c, http.StatusUnauthorized, errBadCredentials, "Unauthorized", nil)
			return
		}

		c.Set(ctxAdminKey, true)
		c.Next()
	}
}

func IsAdmin(c *gin.Context) bool {
	return c.GetBool(ctxAdminKey)
}
