package app

import (
	"net/http"
	"time"

	"github.com/cinetick/cinetick/internal/domain"
)

type UserResponse struct {
	ID        int       `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Activated bool      `json:"activated"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(user *domain.User, roleName string) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      roleName,
		Activated: user.Activated,
		CreatedAt: user.CreatedAt,
	}
}

func (app *Application) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := app.userRepo.GetById(r.Context(), app.contextGetUserId(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	role, ok := app.roles.ById(user.RoleID)
	if !ok {
		app.serverErrorResponse(w, r, domain.ErrUnknownRole)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toUserResponse(user, role.Name), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
