package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hdnotes/hdnotes/internal/pkg/response"
	"github.com/hdnotes/hdnotes/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type sendOTPRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	DateOfBirth string `json:"date_of_birth"`
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.auth.SendOTP(c.Request.Context(), req.Email, req.Name, req.DateOfBirth); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "OTP sent successfully"})
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required"`
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	user, token, err := h.auth.VerifyOTP(c.Request.Context(), req.Email, req.Otp)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"user": user, "token": token})
}

type signInRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.auth.SignIn(c.Request.Context(), req.Email); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "OTP sent successfully"})
}

func (h *AuthHandler) VerifySignIn(c *gin.Context) {
	var req verifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	user, token, err := h.auth.VerifySignIn(c.Request.Context(), req.Email, req.Otp)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"user": user, "token": token})
}

type resendOTPRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req resendOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.auth.ResendOTP(c.Request.Context(), req.Email, req.Name, req.DateOfBirth); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "OTP sent successfully"})
}
