package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/shop/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// BootstrapHeader carries the one-time bootstrap token.
const BootstrapHeader = "X-Bootstrap-Token"

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP creates the first admin account.
//
//	@Summary		Bootstrap the storefront
//	@Description	Creates the first admin account. Only available while BOOTSTRAP_TOKEN is configured and no user exists yet.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string					true	"Bootstrap token"
//	@Param			request				body		shopsdk.SignUpRequest	true	"Admin account"
//	@Success		201					{object}	shopsdk.Session			"Admin session"
//	@Failure		400					{object}	shopsdk.ErrorResponse	"Validation failed"
//	@Failure		401					{object}	shopsdk.ErrorResponse	"Missing or invalid bootstrap token"
//	@Failure		404					{object}	shopsdk.ErrorResponse	"Bootstrap not enabled"
//	@Failure		409					{object}	shopsdk.ErrorResponse	"Already bootstrapped"
//	@Router			/api/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	if !h.BootstrapService.Enabled() {
		shopsdk.ErrBootstrapDisabled.WriteError(w)
		return
	}

	token := r.Header.Get(BootstrapHeader)
	if token == "" {
		shopsdk.ErrBootstrapUnauthorized.WriteError(w)
		return
	}

	var req shopsdk.SignUpRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		l.Warn("failed to parse bootstrap request", "err", err)
		shopsdk.ErrInvalidBody.WriteError(w)
		return
	}

	sess, err := h.BootstrapService.Bootstrap(r.Context(), token, service.NewAccount{
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
