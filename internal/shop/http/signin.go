package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/shop/domain"
	"github.com/aussiebroadwan/storefront/internal/shop/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// SignInHandler serves the sign-in exchange. Every rejection, whatever the
// cause, gets the same 401 body.
type SignInHandler struct {
	SignInService *service.SignInService
}

// HandleSignIn handles POST /api/users/signin
//
//	@Summary		Sign in
//	@Description	Checks email and password. Accounts with two-factor authentication get {"require2FA": true} on the first round and must repeat the request with twoFactorToken set to a TOTP or backup code.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		shopsdk.SignInRequest	true	"Credentials"
//	@Success		200		{object}	shopsdk.SignInResponse	"Session, or require2FA"
//	@Failure		400		{object}	shopsdk.ErrorResponse	"Invalid request body"
//	@Failure		401		{object}	shopsdk.ErrorResponse	"Invalid email, password or code"
//	@Failure		429		{object}	shopsdk.ErrorResponse	"Too many attempts"
//	@Router			/api/users/signin [post].
func (h *SignInHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req shopsdk.SignInRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to parse sign-in request", "err", err)
		shopsdk.ErrInvalidBody.WriteError(w)
		return
	}

	var (
		res domain.SignInResult
		err error
	)
	if req.TwoFactorToken == "" {
		res, err = h.SignInService.AuthenticatePrimary(r.Context(), req.Email, req.Password)
	} else {
		res, err = h.SignInService.AuthenticateWithSecondFactor(r.Context(), req.Email, req.Password, req.TwoFactorToken)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSignInResult(w, res)
}

// HandleVerifyTwoFactor handles POST /api/users/verify-2fa
//
//	@Summary		Answer a pending two-factor challenge
//	@Description	Completes a sign-in whose first round returned require2FA. Only works while that challenge is open; five wrong codes close it.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		shopsdk.VerifyTwoFactorRequest	true	"Email and code"
//	@Success		200		{object}	shopsdk.Session					"Session"
//	@Failure		400		{object}	shopsdk.ErrorResponse			"Invalid request body"
//	@Failure		401		{object}	shopsdk.ErrorResponse			"Invalid email, password or code"
//	@Failure		429		{object}	shopsdk.ErrorResponse			"Too many attempts"
//	@Router			/api/users/verify-2fa [post].
func (h *SignInHandler) HandleVerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req shopsdk.VerifyTwoFactorRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to parse verify request", "err", err)
		shopsdk.ErrInvalidBody.WriteError(w)
		return
	}

	res, err := h.SignInService.VerifyChallenge(r.Context(), req.Email, req.TwoFactorToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeSignInResult(w, res)
}

func writeSignInResult(w http.ResponseWriter, res domain.SignInResult) {
	if res.ChallengeRequired {
		httpx.WriteJSON(w, http.StatusOK, shopsdk.SignInResponse{Require2FA: true})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSession(*res.Session))
}
