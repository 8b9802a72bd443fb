package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-scheduler/internal/actor"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const ContextActor = "actor"

// AuthMiddleware verifies an HS256 bearer token issued elsewhere and stores the
// caller as an actor.Actor. Claims: sub (user id), role, shopId (owners only).
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "expected a bearer token")
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "token is invalid or expired")
			c.Abort()
			return
		}

		a, ok := actorFromClaims(claims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_payload", "token claims are incomplete")
			c.Abort()
			return
		}

		c.Set(ContextActor, a)
		c.Next()
	}
}

func actorFromClaims(claims jwt.MapClaims) (actor.Actor, bool) {
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return actor.Actor{}, false
	}

	a := actor.Actor{UserID: uint(sub), Role: actor.RoleUser}
	if role, _ := claims["role"].(string); role != "" {
		a.Role = role
	}
	if shopID, ok := claims["shopId"].(float64); ok && shopID > 0 {
		id := uint(shopID)
		a.ShopID = &id
	}
	return a, true
}

// ActorFrom returns the caller set by AuthMiddleware.
func ActorFrom(c *gin.Context) actor.Actor {
	v, _ := c.Get(ContextActor)
	a, _ := v.(actor.Actor)
	return a
}

// RequireRole lets only the listed roles through.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := ActorFrom(c).Role
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Write(c, http.StatusForbidden, "forbidden", "insufficient role")
		c.Abort()
	}
}
