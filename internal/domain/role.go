package domain

import "context"

const (
	RoleMember = "MEMBER"
	RoleAdmin  = "ADMIN"
)

type Role struct {
	ID   int
	Name string
}

type RoleRepository interface {
	GetAll(ctx context.Context) ([]Role, error)
}

// RoleLookup is the read path for the role reference table. Implementations
// load the table once at startup and refresh only on explicit Reload.
type RoleLookup interface {
	ById(id int) (Role, bool)
	ByName(name string) (Role, bool)
	Reload(ctx context.Context) error
}
