package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/hdnotes/hdnotes/internal/pkg/errors"
	"github.com/hdnotes/hdnotes/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get("user_id")
	userID, _ := value.(string)
	return userID
}

// bindJSON decodes and validates the request body. Binding-tag
// failures become a 400 with one entry per offending field.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errs := make([]response.FieldError, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			errs = append(errs, response.FieldError{
				Field:   jsonFieldName(fieldError.Field()),
				Message: formatFieldError(fieldError),
			})
		}
		response.FieldErrors(c, errs)
		return false
	}
	response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
	return false
}

func jsonFieldName(field string) string {
	var out strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		out.WriteRune(r)
	}
	return out.String()
}

func formatFieldError(fe validator.FieldError) string {
	field := jsonFieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "len":
		return fmt.Sprintf("%s must be %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func handleError(c *gin.Context, err error) {
	if err != nil {
		requestID, _ := c.Get("request_id")
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.Any("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("user_id", getUserID(c)),
			zap.Error(err),
		)
	}
	switch {
	case err == nil:
		return
	case appErr.IsNotFound(err):
		response.Error(c, http.StatusNotFound, "not_found", "not found")
	case appErr.IsConflict(err):
		response.Error(c, http.StatusConflict, "conflict", "user already exists with this email")
	case err == appErr.ErrInvalidCode:
		response.Error(c, http.StatusBadRequest, "invalid_code", "invalid code")
	case err == appErr.ErrCodeExpired:
		response.Error(c, http.StatusBadRequest, "code_expired", "code expired")
	case err == appErr.ErrNotVerified:
		response.Error(c, http.StatusForbidden, "not_verified", "email not verified")
	case err == appErr.ErrUnauthorized:
		response.Error(c, http.StatusUnauthorized, "unauthorized", "unauthorized")
	case err == appErr.ErrForbidden:
		response.Error(c, http.StatusForbidden, "forbidden", "forbidden")
	case err == appErr.ErrInvalid:
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
	case err == appErr.ErrMailDelivery:
		response.Error(c, http.StatusInternalServerError, "mail_failed", "failed to send email")
	default:
		response.Error(c, http.StatusInternalServerError, "internal", "internal error")
	}
}
