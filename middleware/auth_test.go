package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blog-engagement/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("middleware-secret")

func signToken(t *testing.T, claims *Claims, key []byte) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Authenticate(secret))
	router.GET("/whoami", func(c *gin.Context) {
		identity := GetIdentity(c)
		if identity == nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, identity)
	})
	router.GET("/private", RequireIdentity(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func serve(router *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticateAnonymous(t *testing.T) {
	w := serve(newAuthRouter(), "/whoami", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())
}

func TestAuthenticateValidToken(t *testing.T) {
	token := signToken(t, &Claims{
		UserID:   5,
		Username: "erin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, secret)

	w := serve(newAuthRouter(), "/whoami", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":5,"username":"erin"}`, w.Body.String())
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	expired := signToken(t, &Claims{
		UserID: 5,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}, secret)
	wrongKey := signToken(t, &Claims{UserID: 5}, []byte("other"))
	noUser := signToken(t, &Claims{Username: "ghost"}, secret)

	for name, header := range map[string]string{
		"missing bearer prefix": "Token abc",
		"garbage":               "Bearer abc.def.ghi",
		"expired":               "Bearer " + expired,
		"wrong key":             "Bearer " + wrongKey,
		"no user id":            "Bearer " + noUser,
	} {
		t.Run(name, func(t *testing.T) {
			w := serve(newAuthRouter(), "/whoami", header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireIdentity(t *testing.T) {
	router := newAuthRouter()

	w := serve(router, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := signToken(t, &Claims{UserID: 5}, secret)
	w = serve(router, "/private", "Bearer "+token)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetIdentityIgnoresForeignValues(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetIdentity(c))

	c.Set(IdentityKey, "not an identity")
	assert.Nil(t, GetIdentity(c))

	c.Set(IdentityKey, &models.Identity{UserID: 1})
	assert.Equal(t, uint(1), GetIdentity(c).UserID)
}
