package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/shop/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

type ProfileHandler struct {
	ProfileService *service.ProfileService
}

// ServeHTTP handles PUT /api/users/profile
//
//	@Summary		Update own profile
//	@Description	Empty fields keep their current value. A new password must be repeated in confirmPassword.
//	@Description	enable2FA=true starts TOTP enrolment and returns twoFactorSetup; 2FA stays off until /api/users/2fa/confirm. enable2FA=false turns 2FA off and drops backup codes.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		shopsdk.ProfileUpdateRequest	true	"Profile changes"
//	@Success		200		{object}	shopsdk.ProfileUpdateResponse	"Refreshed session"
//	@Failure		400		{object}	shopsdk.ErrorResponse			"Passwords do not match"
//	@Failure		401		{object}	shopsdk.ErrorResponse			"Invalid or missing session token"
//	@Failure		409		{object}	shopsdk.ErrorResponse			"Email already registered"
//	@Router			/api/users/profile [put].
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req shopsdk.ProfileUpdateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		slogx.FromContext(ctx).Warn("failed to parse profile request", "err", err)
		shopsdk.ErrInvalidBody.WriteError(w)
		return
	}

	var amr []string
	if claims, ok := httpx.ClaimsFromContext(ctx); ok {
		amr = claims.AMR
	}

	res, err := h.ProfileService.UpdateProfile(ctx, httpx.UserIDFromContext(ctx), service.ProfileUpdate{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		EnableTwoFactor: req.Enable2FA,
	}, amr)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := shopsdk.ProfileUpdateResponse{Session: toSession(res.Session)}
	if res.TwoFactorSetup != nil {
		resp.TwoFactorSetup = toTwoFactorSetup(*res.TwoFactorSetup)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
