package users

import (
	"errors"
	"log/slog"
	"net/http"

	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	httperr "github.com/bodega-labs/bodega/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RoleHeader carries the operator role on subsequent requests. The desktop
// client sets it from the login response; there are no server-side sessions.
const RoleHeader = "X-Bodega-Role"

// RegisterRoutes registers the login endpoint.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/login", s.LoginHandler)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler handles POST /v1/login.
func (s *Service) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return
	}

	user, err := s.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, httperr.ErrorResponse{
				ErrorType: httperr.HttpUnauthorizedError,
				Message:   "Invalid username or password",
			})
			return
		}

		slog.Error("Login failed", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Login failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": user.Username, "role": user.Role})
}

// RequireAdmin rejects requests whose role header is not admin. The register
// UI mirrors this by disabling the analysis button for vendedores.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(RoleHeader) != v1.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, httperr.ErrorResponse{
				ErrorType: httperr.HttpForbiddenError,
				Message:   "Admin role required",
			})
			return
		}
		c.Next()
	}
}
