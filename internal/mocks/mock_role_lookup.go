package mocks

import (
	"context"

	"github.com/cinetick/cinetick/internal/domain"
)

// MockRoleLookup serves a fixed role set; Reload is a no-op unless overridden.
type MockRoleLookup struct {
	Roles      []domain.Role
	ReloadFunc func(ctx context.Context) error
}

func DefaultRoles() []domain.Role {
	return []domain.Role{
		{ID: 1, Name: domain.RoleMember},
		{ID: 2, Name: domain.RoleAdmin},
	}
}

func (m *MockRoleLookup) ById(id int) (domain.Role, bool) {
	for _, role := range m.Roles {
		if role.ID == id {
			return role, true
		}
	}

	return domain.Role{}, false
}

func (m *MockRoleLookup) ByName(name string) (domain.Role, bool) {
	for _, role := range m.Roles {
		if role.Name == name {
			return role, true
		}
	}

	return domain.Role{}, false
}

func (m *MockRoleLookup) Reload(ctx context.Context) error {
	if m.ReloadFunc != nil {
		return m.ReloadFunc(ctx)
	}

	return nil
}
