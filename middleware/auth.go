package middleware

import (
	"strings"

	"blog-engagement/helper"
	"blog-engagement/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const IdentityKey = "identity"

var HTTPHelper = &helper.HTTPHelper{}

// Claims is the token payload issued by the external auth service.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Authenticate resolves an optional bearer token into an identity. Requests
// without an Authorization header continue anonymously; a malformed or
// invalid token is rejected.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			HTTPHelper.SendUnauthorizedError(c, "Bearer token required", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil {
			HTTPHelper.SendUnauthorizedError(c, "Invalid token: "+err.Error(), HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}
		if !token.Valid || claims.UserID == 0 {
			HTTPHelper.SendUnauthorizedError(c, "Token is not valid", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set(IdentityKey, &models.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
		})

		c.Next()
	}
}

// RequireIdentity rejects anonymous requests. It must run after Authenticate.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetIdentity(c) == nil {
			HTTPHelper.SendUnauthorizedError(c, "Authorization header required", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetIdentity returns the resolved identity, or nil for anonymous requests.
func GetIdentity(c *gin.Context) *models.Identity {
	if value, exists := c.Get(IdentityKey); exists {
		if identity, ok := value.(*models.Identity); ok {
			return identity
		}
	}
	return nil
}
