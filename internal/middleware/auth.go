package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/laramoda/storefront-api/internal/model"
)

const identityKey = "identity"

// AuthMiddleware verifies HMAC bearer tokens issued by the identity provider
// and stores the caller's identity on the context. issuer is checked only
// when non-empty.
func AuthMiddleware(secret, issuer string) gin.HandlerFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abort(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}

		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(header[7:], claims, func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abort(c, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}

		identity, ok := identityFromClaims(claims)
		if !ok {
			abort(c, http.StatusUnauthorized, "unauthorized", "invalid user id")
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

func identityFromClaims(claims jwt.MapClaims) (model.User, bool) {
	sub, _ := claims.GetSubject()
	id, err := uuid.Parse(sub)
	if err != nil {
		return model.User{}, false
	}
	str := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := claims[k].(string); ok && v != "" {
				return v
			}
		}
		return ""
	}
	return model.User{
		ID:              id,
		Email:           str("email"),
		FirstName:       str("given_name", "first_name"),
		LastName:        str("family_name", "last_name"),
		ProfileImageURL: str("picture", "profile_image_url"),
		Role:            str("role"),
	}, true
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRole(c) != model.RoleAdmin {
			abort(c, http.StatusForbidden, "forbidden", "admin only")
			return
		}
		c.Next()
	}
}

func GetIdentity(c *gin.Context) model.User {
	v, _ := c.Get(identityKey)
	u, _ := v.(model.User)
	return u
}

func GetUserID(c *gin.Context) uuid.UUID {
	return GetIdentity(c).ID
}

func GetUserRole(c *gin.Context) string {
	return GetIdentity(c).Role
}

func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == model.RoleAdmin
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": code, "message": message})
}
