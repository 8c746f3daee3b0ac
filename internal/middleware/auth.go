package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/vecindia/condominio-api/internal/models"
	"github.com/vecindia/condominio-api/internal/repository"
)

// Claims is the JWT payload the API issues and accepts.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Auth validates the bearer token and stores the caller's identity on the
// context. Download links may carry the token as a ?token= query param,
// since browsers cannot set headers on plain anchor navigation.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := validateToken(tokenString, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Set("userRole", claims.Role)
		c.Set("claims", claims)

		c.Next()
	}
}

func extractToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if token := c.Query("token"); token != "" {
			return token, nil
		}
		return "", errors.New("se requiere autenticación")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("encabezado de autorización inválido")
	}
	return parts[1], nil
}

func validateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de firma inválido")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("el token ha expirado")
		}
		return nil, errors.New("token inválido")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("token inválido")
	}
	return claims, nil
}

// GetUserID returns the authenticated user's ID, 0 when unauthenticated.
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get("userID"); ok {
		return v.(uint)
	}
	return 0
}

// GetUserRole returns the authenticated user's role, "" when unauthenticated.
func GetUserRole(c *gin.Context) string {
	if v, ok := c.Get("userRole"); ok {
		return v.(string)
	}
	return ""
}

// IsAdmin reports whether the caller administers the portal.
func IsAdmin(c *gin.Context) bool {
	role := GetUserRole(c)
	return role == models.RoleAdmin || role == models.RoleSuperAdmin
}

// RequireAdmin gates a route group to administrators.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "No tienes acceso a esta sección",
			})
			return
		}
		c.Next()
	}
}

// RequireRole gates a route group to the given roles.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetUserRole(c)
		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "No tienes acceso a esta sección",
		})
	}
}

// RequireAdminOrOwner allows administrators, or the user whose ID matches
// the user_id (or id) path param.
func RequireAdminOrOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAdmin(c) {
			c.Next()
			return
		}

		idParam := c.Param("user_id")
		if idParam == "" {
			idParam = c.Param("id")
		}
		if idParam != "" {
			targetID, err := strconv.ParseUint(idParam, 10, 32)
			if err == nil && uint(targetID) == GetUserID(c) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "No tienes acceso a esta información",
		})
	}
}

// RequireAdminOrResidentOwner guards routes keyed by a resident id:
// administrators pass, and so does the user whose account backs that
// resident. Residents without a portal account are reachable only by
// administrators.
func RequireAdminOrResidentOwner(residentRepo repository.ResidentRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAdmin(c) {
			c.Next()
			return
		}

		residentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "identificador inválido",
			})
			return
		}

		resident, err := residentRepo.FindByID(c.Request.Context(), uint(residentID))
		if err != nil || resident.UserID == 0 || resident.UserID != GetUserID(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "No tienes acceso a esta información",
			})
			return
		}

		c.Next()
	}
}
