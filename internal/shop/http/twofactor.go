package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/shop/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// TwoFactorHandler handles TOTP enrolment and backup codes for the signed-in
// user.
type TwoFactorHandler struct {
	TwoFactorService *service.TwoFactorService
}

// HandleEnroll handles POST /api/users/2fa/enroll
//
//	@Summary		Start TOTP enrolment
//	@Description	Issues a pending TOTP secret. It replaces any earlier pending secret and only takes effect once confirmed.
//	@Tags			Two-factor
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	shopsdk.TwoFactorSetup	"Secret and otpauth URL"
//	@Failure		401	{object}	shopsdk.ErrorResponse	"Invalid or missing session token"
//	@Failure		409	{object}	shopsdk.ErrorResponse	"Already enabled"
//	@Router			/api/users/2fa/enroll [post].
func (h *TwoFactorHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	enrollment, err := h.TwoFactorService.Enroll(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTwoFactorSetup(enrollment))
}

// HandleConfirm handles POST /api/users/2fa/confirm
//
//	@Summary		Confirm TOTP enrolment
//	@Description	Enables two-factor authentication once a code from the pending secret checks out. Returns backup codes, shown once.
//	@Tags			Two-factor
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		shopsdk.TwoFactorCodeRequest	true	"TOTP code"
//	@Success		200		{object}	shopsdk.BackupCodesResponse		"Backup codes"
//	@Failure		400		{object}	shopsdk.ErrorResponse			"Invalid code or enrolment not started"
//	@Failure		409		{object}	shopsdk.ErrorResponse			"Already enabled"
//	@Router			/api/users/2fa/confirm [post].
func (h *TwoFactorHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	code, ok := decodeCode(w, r)
	if !ok {
		return
	}

	codes, err := h.TwoFactorService.Confirm(r.Context(), httpx.UserIDFromContext(r.Context()), code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, shopsdk.BackupCodesResponse{BackupCodes: codes})
}

// HandleRegenerateBackupCodes handles POST /api/users/2fa/backup-codes
//
//	@Summary		Regenerate backup codes
//	@Description	Replaces every backup code. Requires a current TOTP code.
//	@Tags			Two-factor
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		shopsdk.TwoFactorCodeRequest	true	"TOTP code"
//	@Success		200		{object}	shopsdk.BackupCodesResponse		"Backup codes"
//	@Failure		400		{object}	shopsdk.ErrorResponse			"Invalid code or 2FA not enabled"
//	@Router			/api/users/2fa/backup-codes [post].
func (h *TwoFactorHandler) HandleRegenerateBackupCodes(w http.ResponseWriter, r *http.Request) {
	code, ok := decodeCode(w, r)
	if !ok {
		return
	}

	codes, err := h.TwoFactorService.RegenerateBackupCodes(r.Context(), httpx.UserIDFromContext(r.Context()), code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, shopsdk.BackupCodesResponse{BackupCodes: codes})
}

// HandleDisable handles DELETE /api/users/2fa
//
//	@Summary		Disable two-factor authentication
//	@Tags			Two-factor
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	shopsdk.TwoFactorCodeRequest	true	"TOTP code"
//	@Success		204
//	@Failure		400	{object}	shopsdk.ErrorResponse	"Invalid code or 2FA not enabled"
//	@Router			/api/users/2fa [delete].
func (h *TwoFactorHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	code, ok := decodeCode(w, r)
	if !ok {
		return
	}

	if err := h.TwoFactorService.Disable(r.Context(), httpx.UserIDFromContext(r.Context()), code); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeCode(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req shopsdk.TwoFactorCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to parse code request", "err", err)
		shopsdk.ErrInvalidBody.WriteError(w)
		return "", false
	}
	if req.Code == "" {
		shopsdk.ErrInvalidCode.WriteError(w)
		return "", false
	}
	return req.Code, true
}
