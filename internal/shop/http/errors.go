package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/shop/domain"
	"github.com/aussiebroadwan/storefront/internal/shop/service"
	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// apiErrors maps service sentinels to their response. Anything not listed is
// a 500.
var apiErrors = []struct {
	err error
	api *shopsdk.APIError
}{
	{service.ErrInvalidCredentials, shopsdk.ErrSignInFailed},
	{service.ErrUserNotFound, shopsdk.ErrUserNotFound},
	{service.ErrEmailTaken, shopsdk.ErrEmailTaken},
	{service.ErrPasswordsDoNotMatch, shopsdk.ErrPasswordsDoNotMatch},
	{service.ErrNameRequired, shopsdk.NewAPIError(http.StatusBadRequest, "Name is required")},
	{service.ErrWeakPassword, shopsdk.NewAPIError(http.StatusBadRequest, service.ErrWeakPassword.Error())},
	{domain.ErrInvalidEmail, shopsdk.NewAPIError(http.StatusBadRequest, "Invalid email address")},

	{service.ErrCategoryNotFound, shopsdk.ErrCategoryNotFound},
	{service.ErrCategoryExists, shopsdk.ErrCategoryExists},
	{service.ErrCategoryNameRequired, shopsdk.ErrCategoryName},

	{service.ErrNoFile, shopsdk.ErrNoFileUploaded},
	{service.ErrInvalidFilename, shopsdk.ErrInvalidFile},
	{service.ErrUploadTooLarge, shopsdk.ErrUploadTooLarge},

	{service.ErrTwoFactorAlreadyEnabled, shopsdk.ErrTwoFactorAlreadyEnabled},
	{service.ErrTwoFactorNotEnabled, shopsdk.ErrTwoFactorNotEnabled},
	{service.ErrTwoFactorNotEnrolled, shopsdk.ErrTwoFactorNotEnrolled},
	{service.ErrInvalidTOTPCode, shopsdk.ErrInvalidCode},

	{service.ErrBootstrapDisabled, shopsdk.ErrBootstrapDisabled},
	{service.ErrBootstrapUnauthorized, shopsdk.ErrBootstrapUnauthorized},
	{service.ErrBootstrapAlready, shopsdk.ErrBootstrapAlready},
}

// writeServiceError answers with the APIError matching err. Unmapped errors
// are logged and hidden behind a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range apiErrors {
		if errors.Is(err, m.err) {
			m.api.WriteError(w)
			return
		}
	}
	slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
	shopsdk.ErrServerError.WriteError(w)
}
