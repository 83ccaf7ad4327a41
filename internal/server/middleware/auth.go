package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SignSessionToken mints the bearer token handed out at login. The token
// only carries the session id; everything else lives server-side.
func SignSessionToken(secret []byte, sessionID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"iat": time.Now().Unix(),
	})
	return token.SignedString(secret)
}

// AuthMiddleware resolves the bearer token to a live session. Requests
// without a valid token, or whose session has been dropped, get 401.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		token := strings.Split(authHeader, " ")[1]
		app := c.(*AppContext).App

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return app.TokenSecret, nil
		})
		if err != nil || !parsed.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}
		sid, ok := claims["sid"].(string)
		if !ok || sid == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid session ID"})
		}

		sess, ok := app.Sessions.Get(sid)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Session expired"})
		}

		c.(*AppContext).Session = sess
		return next(c)
	}
}
