package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskflow-be/internal/jwt"
	"taskflow-be/internal/middleware"
)

// DebugController exposes token-introspection endpoints. It is only routed
// when diagnostics are enabled in config; the claims and partial raw tokens
// it echoes back have no place in a production surface.
type DebugController struct {
	jwtService *jwt.JWTService
}

func NewDebugController(jwtService *jwt.JWTService) *DebugController {
	return &DebugController{jwtService: jwtService}
}

func truncateToken(token string) string {
	if len(token) <= 50 {
		return token
	}
	return token[:50] + "..."
}

// TokenInfo handles GET /debug/token-info. It runs behind the auth
// middleware, so the presented token is already verified.
func (dc *DebugController) TokenInfo(c *gin.Context) {
	raw := middleware.RawToken(c)
	claims, err := dc.jwtService.ValidateToken(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"token_payload": claims,
		"current_user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
		},
		"token_expires_at": claims.ExpiresAt.Time.Format(time.RFC3339),
		"token_is_valid":   true,
		"raw_token":        truncateToken(raw),
	})
}

type decodeTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// DecodeToken handles POST /debug/decode-token. The unverified payload is
// decoded regardless of signature; verification status is reported alongside.
func (dc *DebugController) DecodeToken(c *gin.Context) {
	var req decodeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	unverified, err := dc.jwtService.DecodeUnverified(req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token format"})
		return
	}

	verified, verifyErr := dc.jwtService.ValidateToken(req.Token)

	var expiresAt string
	var expired bool
	if unverified.ExpiresAt != nil {
		expiresAt = unverified.ExpiresAt.Time.Format(time.RFC3339)
		expired = time.Now().After(unverified.ExpiresAt.Time)
	}

	resp := gin.H{
		"unverified_payload": unverified,
		"verified_payload":   verified,
		"is_valid":           verifyErr == nil,
		"is_expired":         expired,
		"expires_at":         expiresAt,
		"raw_token":          truncateToken(req.Token),
	}
	if verifyErr != nil {
		resp["verification_error"] = verifyErr.Error()
	}

	c.JSON(http.StatusOK, resp)
}
