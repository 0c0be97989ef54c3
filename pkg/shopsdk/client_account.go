package shopsdk

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Me returns the signed-in user.
func (a *AuthClient) Me(ctx context.Context) (UserResponse, error) {
	resp, err := a.doAuthRequest(ctx, http.MethodGet, "/api/users/me", nil, nil)
	if err != nil {
		return UserResponse{}, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return UserResponse{}, err
	}
	return out, nil
}

// UpdateProfile applies req and returns the refreshed session. Callers
// should replace their stored session with it.
func (a *AuthClient) UpdateProfile(ctx context.Context, req ProfileUpdateRequest) (ProfileUpdateResponse, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return ProfileUpdateResponse{}, err
	}

	resp, err := a.doAuthRequest(ctx, http.MethodPut, "/api/users/profile", body, headers)
	if err != nil {
		return ProfileUpdateResponse{}, err
	}

	var out ProfileUpdateResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return ProfileUpdateResponse{}, err
	}
	return out, nil
}

// EnrollTwoFactor starts TOTP enrolment.
func (a *AuthClient) EnrollTwoFactor(ctx context.Context) (TwoFactorSetup, error) {
	resp, err := a.doAuthRequest(ctx, http.MethodPost, "/api/users/2fa/enroll", nil, nil)
	if err != nil {
		return TwoFactorSetup{}, err
	}

	var out TwoFactorSetup
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return TwoFactorSetup{}, err
	}
	return out, nil
}

// ConfirmTwoFactor enables 2FA and returns the backup codes.
func (a *AuthClient) ConfirmTwoFactor(ctx context.Context, code string) ([]string, error) {
	return a.backupCodes(ctx, "/api/users/2fa/confirm", code)
}

// RegenerateBackupCodes replaces every backup code.
func (a *AuthClient) RegenerateBackupCodes(ctx context.Context, code string) ([]string, error) {
	return a.backupCodes(ctx, "/api/users/2fa/backup-codes", code)
}

func (a *AuthClient) backupCodes(ctx context.Context, path, code string) ([]string, error) {
	body, headers, err := jsonBody(TwoFactorCodeRequest{Code: code})
	if err != nil {
		return nil, err
	}

	resp, err := a.doAuthRequest(ctx, http.MethodPost, path, body, headers)
	if err != nil {
		return nil, err
	}

	var out BackupCodesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.BackupCodes, nil
}

// DisableTwoFactor turns 2FA off. code must be a current TOTP code.
func (a *AuthClient) DisableTwoFactor(ctx context.Context, code string) error {
	body, headers, err := jsonBody(TwoFactorCodeRequest{Code: code})
	if err != nil {
		return err
	}

	resp, err := a.doAuthRequest(ctx, http.MethodDelete, "/api/users/2fa", body, headers)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Upload streams r to /api/upload as multipart field "file" and returns the
// path the image is served from.
func (a *AuthClient) Upload(ctx context.Context, filename string, r io.Reader) (UploadResponse, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			_ = pw.CloseWithError(fmt.Errorf("failed to read upload: %w", err))
			return
		}
		_ = pw.CloseWithError(mw.Close())
	}()

	resp, err := a.doAuthRequest(ctx, http.MethodPost, "/api/upload", pr, map[string]string{
		"Content-Type": mw.FormDataContentType(),
	})
	if err != nil {
		_ = pr.CloseWithError(err)
		return UploadResponse{}, err
	}
	// Unblock the writer if the server answered before reading everything.
	defer pr.Close()

	var out UploadResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return UploadResponse{}, err
	}
	return out, nil
}
