package authroles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/txpay/txpay-admin/internal/domain/auth"
	"github.com/txpay/txpay-admin/internal/ports"
)

var _ ports.RoleMapper = APIRoleMapper{}

func TestAPIRoleMapper(t *testing.T) {
	tests := map[string]domainauth.Role{
		"SUPERADMIN": domainauth.RoleAdmin,
		"admin":      domainauth.RoleAdmin,
		" SUPPORT ":  domainauth.RoleAdmin,
		"PARTNER":    domainauth.RolePartner,
		"partner":    domainauth.RolePartner,
		"MERCHANT":   domainauth.RoleGuest,
		"":           domainauth.RoleGuest,
	}
	for in, want := range tests {
		assert.Equal(t, want, APIRoleMapper{}.Map(in), in)
	}
}
