package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"examportal/config"
	"examportal/internal/dto"
	"examportal/internal/model"
	"examportal/internal/repository"
	"examportal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const currentUserKey = "currentUser"

// Auth parses the bearer token, loads the user behind it and stores it in
// the gin context. The user is reloaded per request so deleted accounts and
// role changes take effect immediately.
func Auth(cfg *config.Config, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing bearer token"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		var claims service.Claims
		token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 32)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid token subject"})
			return
		}

		user, err := userRepo.FindByID(uint(userID))
		if err != nil {
			log.Warn().Err(err).Uint64("userID", userID).Msg("Auth: token user no longer exists")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unknown user"})
			return
		}

		ctx.Set(currentUserKey, user)
		ctx.Next()
	}
}

// RequireRoles rejects the request unless the current user has one of the
// given roles. Listing visibility is handled separately by the visibility
// strategies; this guards writes and group access.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user := CurrentUser(ctx)
		if user == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
			return
		}
		for _, role := range roles {
			if user.Role == role {
				ctx.Next()
				return
			}
		}
		ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Insufficient permissions"})
	}
}

// CurrentUser returns the authenticated user stored by Auth, or nil.
func CurrentUser(ctx *gin.Context) *model.User {
	value, exists := ctx.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}
