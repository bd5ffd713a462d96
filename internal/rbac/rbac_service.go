package rbac

import (
	"fmt"

	"go-payroll/internal/domain"

	"github.com/casbin/casbin/v2"
)

// DefaultPolicies grants admins everything and employees the self-service
// routes. Ownership of the target record is checked by the services.
var DefaultPolicies = [][]string{
	{domain.RoleAdmin, "*", "*"},
	{domain.RoleEmployee, "employee", "read"},
	{domain.RoleEmployee, "employee", "update"},
	{domain.RoleEmployee, "attendance", "list"},
	{domain.RoleEmployee, "attendance", "upsert"},
	{domain.RoleEmployee, "payroll", "view"},
	{domain.RoleEmployee, "payroll", "html"},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions(role string) ([]Permission, error)
}

type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type service struct {
	enforcer *casbin.SyncedEnforcer
}

func NewService(enforcer *casbin.SyncedEnforcer, policies [][]string) (Service, error) {
	for _, p := range policies {
		if len(p) != 3 {
			return nil, fmt.Errorf("rbac: policy %v must be (role, resource, action)", p)
		}
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("rbac: add policy %v: %w", p, err)
		}
	}
	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if req.Role == "" {
		return false, nil
	}
	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}

func (s *service) Permissions(role string) ([]Permission, error) {
	rows, err := s.enforcer.GetFilteredPolicy(0, role)
	if err != nil {
		return nil, err
	}
	perms := make([]Permission, 0, len(rows))
	for _, r := range rows {
		perms = append(perms, Permission{Resource: r[1], Action: r[2]})
	}
	return perms, nil
}
