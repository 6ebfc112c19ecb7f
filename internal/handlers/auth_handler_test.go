package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"formiverse/internal/middleware"
	"formiverse/internal/models"
)

func authTestRouter(auth *stubAuthSvc, users *stubUserLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(nil, auth, nil, users, false)
	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/refresh-token", h.RefreshToken)
	return r
}

func postJSON(r *gin.Engine, path, body string, decorate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if decorate != nil {
		decorate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginHandler(t *testing.T) {
	auth := &stubAuthSvc{}
	users := &stubUserLookup{user: &models.User{
		ID:           1,
		Email:        "jamie@example.com",
		Username:     "jamie",
		PasswordHash: "hashed:hunter42",
	}}
	r := authTestRouter(auth, users)

	w := postJSON(r, "/login", `{"email":"jamie@example.com","password":"hunter42"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		Data struct {
			AccessToken string       `json:"accessToken"`
			User        *models.User `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Data.AccessToken == "" {
		t.Error("no access token in response")
	}
	if body.Data.User == nil || body.Data.User.Email != "jamie@example.com" {
		t.Errorf("user payload = %+v", body.Data.User)
	}

	cookies := w.Result().Cookies()
	var gotAccess, gotRefresh bool
	for _, ck := range cookies {
		switch ck.Name {
		case middleware.AccessTokenCookie:
			gotAccess = ck.HttpOnly && ck.Value != ""
		case middleware.RefreshTokenCookie:
			gotRefresh = ck.HttpOnly && ck.Value != ""
		}
	}
	if !gotAccess || !gotRefresh {
		t.Errorf("auth cookies missing or not httpOnly: %+v", cookies)
	}
}

func TestLoginHandlerByUsername(t *testing.T) {
	auth := &stubAuthSvc{}
	users := &stubUserLookup{user: &models.User{
		ID: 1, Email: "jamie@example.com", Username: "jamie", PasswordHash: "hashed:hunter42",
	}}
	r := authTestRouter(auth, users)

	w := postJSON(r, "/login", `{"username":"jamie","password":"hunter42"}`, nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestLoginHandlerRejections(t *testing.T) {
	auth := &stubAuthSvc{}
	users := &stubUserLookup{user: &models.User{
		ID: 1, Email: "jamie@example.com", Username: "jamie", PasswordHash: "hashed:hunter42",
	}}
	r := authTestRouter(auth, users)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"no identifier", `{"password":"hunter42"}`, http.StatusBadRequest},
		{"no password", `{"email":"jamie@example.com"}`, http.StatusBadRequest},
		{"unknown user", `{"email":"ghost@example.com","password":"hunter42"}`, http.StatusNotFound},
		{"wrong password", `{"email":"jamie@example.com","password":"nope"}`, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(r, "/login", tc.body, nil)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
	if auth.issued != 0 {
		t.Errorf("tokens issued on failed logins: %d", auth.issued)
	}
}

func TestRefreshTokenFromCookie(t *testing.T) {
	r := authTestRouter(&stubAuthSvc{}, &stubUserLookup{})

	w := postJSON(r, "/refresh-token", "", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: "refresh-jwt"})
	})
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRefreshTokenFromBody(t *testing.T) {
	r := authTestRouter(&stubAuthSvc{}, &stubUserLookup{})

	w := postJSON(r, "/refresh-token", `{"refreshToken":"refresh-jwt"}`, nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRefreshTokenMissing(t *testing.T) {
	r := authTestRouter(&stubAuthSvc{}, &stubUserLookup{})

	w := postJSON(r, "/refresh-token", `{}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRefreshTokenRotated(t *testing.T) {
	r := authTestRouter(&stubAuthSvc{}, &stubUserLookup{})

	w := postJSON(r, "/refresh-token", `{"refreshToken":"stale-jwt"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
