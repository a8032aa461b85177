package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hdnotes/hdnotes/internal/model"
	appErr "github.com/hdnotes/hdnotes/internal/pkg/errors"
	"github.com/hdnotes/hdnotes/internal/pkg/jwt"
	"github.com/hdnotes/hdnotes/internal/pkg/response"
)

const ContextUserIDKey = "user_id"

// UserDirectory confirms a user id still resolves to a live record.
// A token can outlive its user, so a valid signature alone is not
// enough to authenticate a request.
type UserDirectory interface {
	GetByID(ctx context.Context, userID string) (*model.User, error)
}

func JWTAuth(secret []byte, users UserDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "unauthorized", "access token required")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, http.StatusUnauthorized, "unauthorized", "access token required")
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(parts[1], secret)
		if err != nil {
			message := "invalid token"
			if errors.Is(err, jwt.ErrExpired) {
				message = "token expired"
			}
			response.Error(c, http.StatusForbidden, "forbidden", message)
			c.Abort()
			return
		}
		if _, err := users.GetByID(c.Request.Context(), claims.UserID); err != nil {
			if appErr.IsNotFound(err) {
				response.Error(c, http.StatusUnauthorized, "unauthorized", "user not found")
			} else {
				response.Error(c, http.StatusInternalServerError, "internal", "internal error")
			}
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}
