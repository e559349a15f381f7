package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hoho/internal/models/request_models"
	"hoho/internal/services"
	"hoho/pkg/utils"
)

type ProfileController struct {
	profileService services.ProfileServiceInterface
	accountService services.AccountServiceInterface
}

func NewProfileController(
	profileService services.ProfileServiceInterface,
	accountService services.AccountServiceInterface,
) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		accountService: accountService,
	}
}

func (p *ProfileController) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := p.accountService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Fetched profile successfully")
}

// UpdateProfile starts a profile change. Contact-field changes come back
// with pending flags and must be confirmed with the dispatched codes.
func (p *ProfileController) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	pending, err := p.profileService.RequestChange(c.Request.Context(), flowToken(c), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if pending.PendingEmail || pending.PendingPhone {
		utils.RespondSuccess(c, pending, "Verification required to complete the change")
		return
	}
	utils.RespondSuccess(c, pending, "Profile updated successfully")
}

func (p *ProfileController) ConfirmProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.ConfirmProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := p.profileService.ConfirmChange(c.Request.Context(), flowToken(c), userID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Profile change confirmed")
}

func (p *ProfileController) InitiatePasswordChange(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := p.profileService.InitiatePasswordChange(c.Request.Context(), flowToken(c), userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password change code sent")
}

func (p *ProfileController) ConfirmPasswordChange(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.ConfirmPasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := p.profileService.ConfirmPasswordChange(c.Request.Context(), flowToken(c), userID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password changed successfully")
}

func (p *ProfileController) DeleteAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := p.accountService.DeleteAccount(c.Request.Context(), userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Account deleted")
}
