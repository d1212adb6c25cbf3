package controller

import (
	"errors"
	"net/http"
	"path/filepath"

	"examportal/config"
	"examportal/internal/dto"
	"examportal/internal/middleware"
	"examportal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ProfileController struct {
	userService service.UserService
	cfg         *config.Config
}

func NewProfileController(userService service.UserService, cfg *config.Config) *ProfileController {
	return &ProfileController{userService: userService, cfg: cfg}
}

// GetProfile godoc
// @Summary Get the current user's profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	profile, err := c.userService.GetProfile(user.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load profile"})
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Description Updates name, surname and username; sets a new password when one is provided.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body dto.ProfileUpdateDTO true "Profile fields"
// @Success 200 {object} dto.UserDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Router /profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.ProfileUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	updated, err := c.userService.UpdateProfile(user.ID, req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("userID", user.ID).Msg("UpdateProfile: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update profile"})
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// UploadProfileImage godoc
// @Summary Upload a profile image
// @Description Stores the uploaded file under the configured upload directory and records its path.
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {object} dto.UserDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /profile/image [post]
func (c *ProfileController) UploadProfileImage(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing file upload", Details: []string{err.Error()}})
		return
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	dest := filepath.Join(c.cfg.Upload.Dir, name)
	if err := ctx.SaveUploadedFile(file, dest); err != nil {
		log.Error().Err(err).Str("dest", dest).Msg("UploadProfileImage: failed to store file")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to store file"})
		return
	}

	updated, err := c.userService.SetProfileImage(user.ID, "/"+dest)
	if err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("UploadProfileImage: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update profile image"})
		return
	}
	ctx.JSON(http.StatusOK, updated)
}
