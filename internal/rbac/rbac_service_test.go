package rbac_test

import (
	"testing"

	"go-payroll/internal/domain"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	svc, err := rbac.NewService(enforcer, rbac.DefaultPolicies)
	assert.NoError(t, err)
	return svc
}

func TestService_Enforce(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		want     bool
	}{
		{"admin wildcard", domain.RoleAdmin, "payroll", "generate", true},
		{"admin any resource", domain.RoleAdmin, "attendance", "import", true},
		{"employee views payslip", domain.RoleEmployee, "payroll", "view", true},
		{"employee cannot generate", domain.RoleEmployee, "payroll", "generate", false},
		{"employee cannot list payslips", domain.RoleEmployee, "payroll", "list", false},
		{"employee reads own profile", domain.RoleEmployee, "employee", "read", true},
		{"employee cannot delete", domain.RoleEmployee, "employee", "delete", false},
		{"unknown role", "contractor", "payroll", "view", false},
		{"empty role", "", "payroll", "view", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Enforce(domain.EnforceRequest{Role: tt.role, Resource: tt.resource, Action: tt.action})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Permissions(t *testing.T) {
	svc := newService(t)

	perms, err := svc.Permissions(domain.RoleEmployee)

	assert.NoError(t, err)
	assert.Contains(t, perms, rbac.Permission{Resource: "payroll", Action: "view"})
	assert.NotContains(t, perms, rbac.Permission{Resource: "payroll", Action: "generate"})
}

func TestNewService_RejectsMalformedPolicy(t *testing.T) {
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	_, err = rbac.NewService(enforcer, [][]string{{"admin", "*"}})

	assert.Error(t, err)
}
