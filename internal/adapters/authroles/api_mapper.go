package authroles

import (
	"strings"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	"github.com/txpay/txpay-admin/internal/domain/model"
)

// APIRoleMapper maps TX Pay API roles onto console roles.
// Staff roles (SUPERADMIN, ADMIN, SUPPORT) become admin and PARTNER becomes partner.
// Anything else is a guest.
type APIRoleMapper struct{}

const apiRolePartner = "PARTNER"

func (APIRoleMapper) Map(apiRole string) domainauth.Role {
	switch model.AdminRole(strings.ToUpper(strings.TrimSpace(apiRole))) {
	case model.AdminRoleSuperAdmin, model.AdminRoleAdmin, model.AdminRoleSupport:
		return domainauth.RoleAdmin
	case apiRolePartner:
		return domainauth.RolePartner
	default:
		return domainauth.RoleGuest
	}
}
