package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/hdnotes/hdnotes/internal/handler"
	"github.com/hdnotes/hdnotes/internal/service"
	"github.com/hdnotes/hdnotes/internal/testutil"
)

var testSecret = []byte("handler-test-secret")

type fixture struct {
	router *gin.Engine
	users  *testutil.MemUserStore
	notes  *testutil.MemNoteStore
	sender *testutil.RecorderSender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := testutil.NewMemUserStore()
	notes := testutil.NewMemNoteStore()
	sender := &testutil.RecorderSender{}

	otpService := service.NewOTPService(users, sender)
	authService := service.NewAuthService(users, otpService, testSecret, 7*24*time.Hour)
	noteService := service.NewNoteService(notes)
	exportService := service.NewExportService(notes)

	router := gin.New()
	api := router.Group("/api")
	handler.RegisterRoutes(api, handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Notes:     handler.NewNoteHandler(noteService, exportService),
		Users:     users,
		JWTSecret: testSecret,
	})
	return &fixture{router: router, users: users, notes: notes, sender: sender}
}

func (f *fixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)
	return resp
}

func (f *fixture) pendingCode(t *testing.T, email string) string {
	t.Helper()
	user, err := f.users.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotEmpty(t, user.OtpCode)
	return user.OtpCode
}

// register walks the whole OTP registration and returns a session token.
func (f *fixture) register(t *testing.T, email, name string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/auth/send-otp", "", map[string]string{"name": name, "email": email})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = f.do(t, http.MethodPost, "/api/auth/verify-otp", "", map[string]string{"email": email, "otp": f.pendingCode(t, email)})
	require.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}
