package service

import (
	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	"github.com/txpay/txpay-admin/internal/domain/model"
)

// ProfileView is the API profile plus the console role it maps to.
type ProfileView struct {
	model.Profile
	Role domainauth.Role
}
