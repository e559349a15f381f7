package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hoho/internal/models/request_models"
	"hoho/internal/services"
	"hoho/pkg/utils"
)

type AuthController struct {
	registrationService services.RegistrationServiceInterface
	accountService      services.AccountServiceInterface
}

func NewAuthController(
	registrationService services.RegistrationServiceInterface,
	accountService services.AccountServiceInterface,
) *AuthController {
	return &AuthController{
		registrationService: registrationService,
		accountService:      accountService,
	}
}

// flowToken returns the opaque token minted by the flow session middleware.
func flowToken(c *gin.Context) string {
	return c.GetString("flow_session")
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid or missing identity")
		return uuid.Nil, false
	}
	return id, true
}

// StartRegistration godoc
// @Summary Enter the registration flow
// @Description Discards any abandoned half-finished registration tied to this session
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /auth/register [get]
func (a *AuthController) StartRegistration(c *gin.Context) {
	if err := a.registrationService.ResumeOrDiscard(c.Request.Context(), flowToken(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Ready to register")
}

// SubmitIdentity godoc
// @Summary Registration step 1
// @Description Creates an inactive account and dispatches verification codes
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RegisterRequest true "Identity payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/register [post]
func (a *AuthController) SubmitIdentity(c *gin.Context) {
	var req request_models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	step, err := a.registrationService.SubmitIdentity(c.Request.Context(), flowToken(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, step, "Verification codes sent")
}

// SubmitOwnerIdentity godoc
// @Summary Owner registration step 1
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.OwnerRegisterRequest true "Owner identity payload"
// @Success 200 {object} utils.APIResponse
// @Router /auth/register/owner [post]
func (a *AuthController) SubmitOwnerIdentity(c *gin.Context) {
	var req request_models.OwnerRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	step, err := a.registrationService.SubmitOwnerIdentity(c.Request.Context(), flowToken(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, step, "Owner details accepted")
}

// SubmitHotelDetails godoc
// @Summary Owner registration step 2
// @Description Creates the inactive owner with their hotel and dispatches both codes
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.HotelDetailsRequest true "Hotel payload"
// @Success 200 {object} utils.APIResponse
// @Router /auth/register/owner/hotel [post]
func (a *AuthController) SubmitHotelDetails(c *gin.Context) {
	var req request_models.HotelDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	step, err := a.registrationService.SubmitHotelDetails(c.Request.Context(), flowToken(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, step, "Verification codes sent")
}

// VerifyCodes godoc
// @Summary Final registration step
// @Description Activates the pending account when every issued code matches
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.VerifyCodesRequest true "Codes payload"
// @Success 200 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /auth/register/verify [post]
func (a *AuthController) VerifyCodes(c *gin.Context) {
	var req request_models.VerifyCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.registrationService.SubmitCodes(c.Request.Context(), flowToken(c), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Account activated successfully")
}

// Login godoc
// @Summary Login to an account
// @Description Authenticate a user and return a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AuthController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Login successful")
}
