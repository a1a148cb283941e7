package sandbox

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rentbooks/rentbooks/internal/dto"
)

// authHandler serves the auth and profile endpoints. Activation and reset
// tokens are logged instead of mailed; the sandbox has no mailer.
type authHandler struct {
	store     *store
	jwtSecret string
	jwtExpiry time.Duration
}

func newAuthHandler(st *store, jwtSecret string, jwtExpiry time.Duration) *authHandler {
	return &authHandler{store: st, jwtSecret: jwtSecret, jwtExpiry: jwtExpiry}
}

func (h *authHandler) signToken(userID int64, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
}

func (h *authHandler) login(c *gin.Context) {
	logger := loggerFrom(c)
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	u, err := h.store.authenticate(req.Email, req.Password)
	if err != nil {
		logger.Warn("Login rejected", slog.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active account found with the given credentials"})
		return
	}
	access, err := h.signToken(u.ID, h.jwtExpiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign token"})
		return
	}
	refresh, err := h.signToken(u.ID, 7*24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign token"})
		return
	}
	c.JSON(http.StatusOK, dto.TokenPair{Access: access, Refresh: refresh})
}

func (h *authHandler) register(c *gin.Context) {
	logger := loggerFrom(c)
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := dto.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, uid, token, err := h.store.createUser(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A user with that email already exists"})
		return
	}
	logger.Info("User registered, activation pending",
		slog.Int64("user_id", u.ID),
		slog.String("activation_uid", uid),
		slog.String("activation_token", token),
	)
	c.JSON(http.StatusCreated, u)
}

func (h *authHandler) activate(c *gin.Context) {
	var req dto.ActivationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := h.store.activateUser(req.UID, req.Token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activation uid or token"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *authHandler) resetPassword(c *gin.Context) {
	logger := loggerFrom(c)
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if uid, token, ok := h.store.issueResetToken(req.Email); ok {
		logger.Info("Password reset issued",
			slog.String("email", req.Email),
			slog.String("reset_uid", uid),
			slog.String("reset_token", token),
		)
	}
	// Same response whether or not the email exists.
	c.Status(http.StatusNoContent)
}

func (h *authHandler) resetPasswordConfirm(c *gin.Context) {
	var req dto.ResetPasswordConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := dto.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.confirmReset(req.UID, req.Token, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reset uid or token"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *authHandler) setPassword(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req dto.SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := dto.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.setPassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *authHandler) getProfile(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	u, err := h.store.getUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *authHandler) updateProfile(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req dto.ProfilePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := dto.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.store.updateUser(userID, req.Email, req.FirstName, req.LastName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}
