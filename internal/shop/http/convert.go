package http

import (
	"github.com/aussiebroadwan/storefront/internal/shop/domain"
	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
)

func toSession(s domain.Session) shopsdk.Session {
	return shopsdk.Session{
		ID:               s.UserID,
		Name:             s.Name,
		Email:            s.Email,
		IsAdmin:          s.IsAdmin,
		TwoFactorEnabled: s.TwoFactorEnabled,
		Token:            s.Token,
		ExpiresAt:        s.ExpiresAt,
	}
}

func toCategory(c domain.Category) shopsdk.Category {
	return shopsdk.Category{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toTwoFactorSetup(e domain.TwoFactorEnrollment) *shopsdk.TwoFactorSetup {
	return &shopsdk.TwoFactorSetup{
		Secret:     e.Secret,
		OTPAuthURL: e.OTPAuthURL,
		Issuer:     e.Issuer,
		Account:    e.Account,
	}
}
