package middelware

import (
	"net/http"
	"strings"
	"time"

	"github.com/emanuelpaduret/alex-backend/models"
	"github.com/emanuelpaduret/alex-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues and validates the bearer tokens protecting the staff
// endpoints. Intake endpoints stay public; only pipeline management needs a
// token.
type JWTManager struct {
	config *models.Config
	logger logger.Logger
}

// StaffClaims is the token payload for a logged-in staff member
type StaffClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(cfg *models.Config, log logger.Logger) *JWTManager {
	return &JWTManager{
		config: cfg,
		logger: log,
	}
}

// LoginRequest is the request body for staff login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GenerateToken signs a token for the given staff username
func (m *JWTManager) GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := StaffClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.JWTExpiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.JWTSecret))
}

// HandleLogin checks the configured staff credentials and returns a token
func (m *JWTManager) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	if req.Username != m.config.StaffUsername || req.Password != m.config.StaffPassword || m.config.StaffPassword == "" {
		m.logger.Warnf("Failed staff login attempt for %q from %s", req.Username, c.ClientIP())
		c.JSON(http.StatusUnauthorized, models.APIResponse{
			Status:  "error",
			Code:    http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
		return
	}

	token, err := m.GenerateToken(req.Username)
	if err != nil {
		m.logger.Errorf("Failed to sign token: %v", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token":      token,
			"expires_in": m.config.JWTExpiresIn.Seconds(),
		},
	})
}

// AuthMiddleware validates the Authorization bearer token
func (m *JWTManager) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.APIResponse{
				Status:  "error",
				Code:    http.StatusUnauthorized,
				Message: "Authentication required",
			})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &StaffClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(m.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.APIResponse{
				Status:  "error",
				Code:    http.StatusUnauthorized,
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set("staff_username", claims.Username)
		c.Next()
	}
}
