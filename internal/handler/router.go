package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hdnotes/hdnotes/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Notes     *NoteHandler
	Users     middleware.UserDirectory
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/send-otp", deps.Auth.SendOTP)
	api.POST("/auth/verify-otp", deps.Auth.VerifyOTP)
	api.POST("/auth/signin", deps.Auth.SignIn)
	api.POST("/auth/verify-signin", deps.Auth.VerifySignIn)
	api.POST("/auth/resend-otp", deps.Auth.ResendOTP)

	notes := api.Group("/notes")
	notes.Use(middleware.JWTAuth(deps.JWTSecret, deps.Users))
	notes.GET("", deps.Notes.List)
	notes.POST("", deps.Notes.Create)
	notes.DELETE("/:id", deps.Notes.Delete)
	notes.GET("/export", deps.Notes.Export)
}
