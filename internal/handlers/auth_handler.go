package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"formiverse/internal/middleware"
	"formiverse/internal/models"
	"formiverse/internal/repositories"
	"formiverse/internal/services"
)

type AuthHandler struct {
	registration services.RegistrationService
	auth         services.AuthService
	resets       services.PasswordResetService
	users        repositories.UserRepository
	production   bool
}

func NewAuthHandler(
	registration services.RegistrationService,
	auth services.AuthService,
	resets services.PasswordResetService,
	users repositories.UserRepository,
	production bool,
) *AuthHandler {
	return &AuthHandler{
		registration: registration,
		auth:         auth,
		resets:       resets,
		users:        users,
		production:   production,
	}
}

// setAuthCookies mirrors the token pair into httpOnly cookies. SameSite=None
// requires Secure, so the relaxed Lax mode is kept outside production.
func (h *AuthHandler) setAuthCookies(c *gin.Context, pair *services.TokenPair, accessTTL time.Duration) {
	if h.production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken,
		int(accessTTL.Seconds()), "/", "", h.production, true)
	c.SetCookie(middleware.RefreshTokenCookie, pair.RefreshToken,
		int(h.auth.RefreshTTL().Seconds()), "/", "", h.production, true)
}

// @Summary      Start registration
// @Description  Stages the account and emails a one-time code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        registration  body      object  true  "username, fullName, email, password"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.registration.Register(req.Username, req.FullName, req.Email, req.Password); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"email": strings.ToLower(strings.TrimSpace(req.Email))},
		"OTP sent to your email. Please verify to complete registration.")
}

// @Summary      Verify registration OTP
// @Description  Promotes the pending registration and logs the new user in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        verification  body      object  true  "email, otp"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.registration.VerifyOTP(req.Email, req.OTP)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pair, err := h.auth.IssueTokens(user, h.auth.AccessTTL())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.setAuthCookies(c, pair, h.auth.AccessTTL())

	user.PasswordHash = ""
	user.RefreshTokenHash = nil
	respond(c, http.StatusOK, gin.H{
		"user":        user,
		"accessToken": pair.AccessToken,
	}, "User registered successfully")
}

// @Summary      Log in
// @Description  Authenticates by email or username and returns tokens
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	username := strings.TrimSpace(strings.ToLower(req.Username))
	if email == "" && username == "" {
		respondError(c, http.StatusBadRequest, "email or username is required")
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		respondError(c, http.StatusBadRequest, "password is required")
		return
	}

	user, err := h.users.GetByEmailOrUsername(email, username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "User does not exist")
		return
	}
	if !h.auth.CheckPassword(user.PasswordHash, req.Password) {
		log.Printf("[auth][login] password mismatch user_id=%d", user.ID)
		respondError(c, http.StatusUnauthorized, "Invalid user credentials")
		return
	}

	// the login path hands out a longer access token than a refresh does
	pair, err := h.auth.IssueTokens(user, h.auth.LoginAccessTTL())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.setAuthCookies(c, pair, h.auth.LoginAccessTTL())
	log.Printf("[auth][login] success user_id=%d", user.ID)

	user.PasswordHash = ""
	user.RefreshTokenHash = nil
	respond(c, http.StatusOK, gin.H{
		"user":        user,
		"accessToken": pair.AccessToken,
	}, "User logged in successfully")
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	// cookie first, body as fallback
	incoming, _ := c.Cookie(middleware.RefreshTokenCookie)
	if incoming == "" {
		_ = c.ShouldBindJSON(&req)
		incoming = strings.TrimSpace(req.RefreshToken)
	}
	if incoming == "" {
		respondError(c, http.StatusUnauthorized, "Unauthorized request")
		return
	}

	_, pair, err := h.auth.Refresh(incoming)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.setAuthCookies(c, pair, h.auth.AccessTTL())
	respond(c, http.StatusOK, gin.H{}, "Access token refreshed successfully")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email"`
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.auth.ChangePassword(req.Email, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

func (h *AuthHandler) SendPasswordResetOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.resets.RequestReset(req.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "If the account exists, a reset code has been sent")
}

func (h *AuthHandler) VerifyOTPAndChangePassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.resets.VerifyOTPAndChangePassword(req.Email, req.OTP, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

// CheckAuth exists for the frontend to probe whether its token still works.
func (h *AuthHandler) CheckAuth(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized request")
		return
	}
	respond(c, http.StatusOK, gin.H{"user": user}, "Authenticated")
}

func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized request")
		return
	}
	respond(c, http.StatusOK, user, "Current user fetched successfully")
}
