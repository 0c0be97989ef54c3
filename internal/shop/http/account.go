package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/shop/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

type AccountHandler struct {
	AccountService *service.AccountService
}

// HandleSignUp handles POST /api/users/signup
//
//	@Summary		Create an account
//	@Description	Creates a regular (non-admin) account and signs it in.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		shopsdk.SignUpRequest	true	"New account"
//	@Success		201		{object}	shopsdk.Session			"Session"
//	@Failure		400		{object}	shopsdk.ErrorResponse	"Validation failed"
//	@Failure		409		{object}	shopsdk.ErrorResponse	"Email already registered"
//	@Router			/api/users/signup [post].
func (h *AccountHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var req shopsdk.SignUpRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to parse sign-up request", "err", err)
		shopsdk.ErrInvalidBody.WriteError(w)
		return
	}

	sess, err := h.AccountService.SignUp(r.Context(), service.NewAccount{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toSession(sess))
}

// HandleMe handles GET /api/users/me
//
//	@Summary		Current user
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	shopsdk.UserResponse
//	@Failure		401	{object}	shopsdk.ErrorResponse	"Invalid or missing session token"
//	@Failure		404	{object}	shopsdk.ErrorResponse	"User Not Found"
//	@Router			/api/users/me [get].
func (h *AccountHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.AccountService.Me(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, shopsdk.UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		IsAdmin:          u.IsAdmin,
		TwoFactorEnabled: u.TwoFactorEnabled,
		CreatedAt:        u.CreatedAt,
	})
}
