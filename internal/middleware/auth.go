package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"taskflow-be/internal/cache"
	"taskflow-be/internal/entities"
	"taskflow-be/internal/jwt"
	"taskflow-be/internal/repository"
)

// Context keys set by AuthMiddleware
const (
	CurrentUserKey = "currentUser"
	RawTokenKey    = "rawToken"
)

// userCacheTTL bounds how stale a cached subject lookup can be. Tokens carry
// no revocation anyway, so a short window here changes nothing observable.
const userCacheTTL = 60 * time.Second

// unauthorized aborts with the one generic body used for every authentication
// failure. Clients must not be able to tell a bad signature from an expired
// token or an unknown subject.
func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "could not validate credentials",
	})
}

// AuthMiddleware resolves the bearer token on each request into an
// authenticated user and attaches it to the gin context. userCache may be nil.
func AuthMiddleware(jwtService *jwt.JWTService, users repository.UserRepository, userCache cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			unauthorized(c)
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			unauthorized(c)
			return
		}

		ctx := c.Request.Context()

		if userCache != nil {
			var cached entities.User
			if err := userCache.GetJSON(ctx, cache.UserCacheKey(claims.Subject), &cached); err == nil {
				c.Set(CurrentUserKey, &cached)
				c.Set(RawTokenKey, tokenString)
				c.Next()
				return
			}
		}

		user, err := users.FindByEmail(ctx, claims.Subject)
		if errors.Is(err, repository.ErrNotFound) {
			// Subject no longer resolves to an account; same response as a
			// bad token.
			unauthorized(c)
			return
		}
		if err != nil {
			log.Printf("auth: user lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal server error",
			})
			return
		}

		if userCache != nil {
			if err := userCache.SetJSON(ctx, cache.UserCacheKey(user.Email), user, userCacheTTL); err != nil {
				log.Printf("auth: failed to cache user lookup: %v", err)
			}
		}

		c.Set(CurrentUserKey, user)
		c.Set(RawTokenKey, tokenString)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthMiddleware
func CurrentUser(c *gin.Context) *entities.User {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*entities.User)
	return user
}

// RawToken returns the bearer token string set by AuthMiddleware
func RawToken(c *gin.Context) string {
	value, exists := c.Get(RawTokenKey)
	if !exists {
		return ""
	}
	token, _ := value.(string)
	return token
}
