package api

import (
	"fmt"
	"net/http"
	"time"

	"endurafit/workout-service/internal/domain"
	"endurafit/workout-service/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler exposes profile reads, updates, and avatar uploads.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type ProfileResponse struct {
	UserResponse
	AvatarURL   string              `json:"avatarUrl,omitempty"`
	Preferences *domain.Preferences `json:"preferences,omitempty"`
}

type UpdateProfileRequest struct {
	Name        string              `json:"name" binding:"required"`
	BirthDate   *time.Time          `json:"birthDate"`
	Gender      string              `json:"gender"`
	Preferences *domain.Preferences `json:"preferences"`
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type AvatarUploadResponse struct {
	UploadURL   string `json:"uploadUrl"`
	ContentType string `json:"contentType"`
	ExpiresIn   int    `json:"expiresInSeconds"`
}

// GetProfile returns the authenticated user's profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	user, avatarURL, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		UserResponse: MapUserToResponse(user),
		AvatarURL:    avatarURL,
		Preferences:  user.Defaults,
	})
}

// UpdateProfile replaces the mutable profile fields.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.profileService.Update(c.Request.Context(), userID, service.ProfileUpdate{
		Name:      req.Name,
		BirthDate: req.BirthDate,
		Gender:    domain.Gender(req.Gender),
		Defaults:  req.Preferences,
	})
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		UserResponse: MapUserToResponse(user),
		Preferences:  user.Defaults,
	})
}

// RequestAvatarUpload hands back a presigned PUT URL for the avatar image.
func (h *ProfileHandler) RequestAvatarUpload(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	upload, err := h.profileService.RequestAvatarUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, AvatarUploadResponse{
		UploadURL:   upload.UploadURL,
		ContentType: upload.ContentType,
		ExpiresIn:   int(upload.ExpiresIn.Seconds()),
	})
}
