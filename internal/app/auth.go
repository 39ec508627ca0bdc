package app

import (
	"crypto/sha256"
	"errors"
	"net/http"
	"time"

	"github.com/cinetick/cinetick/internal/auth"
	"github.com/cinetick/cinetick/internal/domain"
)

const (
	activationTokenTTL    = 3 * 24 * time.Hour
	passwordResetTokenTTL = 45 * time.Minute
)

type RegisterUserRequest struct {
	FirstName string `json:"firstName" validate:"required,alpha,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,alpha,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,e164_phone"`
	Password  string `json:"password" validate:"required,password"`
}

func (app *Application) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	memberRole, ok := app.roles.ByName(domain.RoleMember)
	if !ok {
		app.serverErrorResponse(w, r, domain.ErrUnknownRole)
		return
	}

	user := &domain.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		RoleID:    memberRole.ID,
	}

	err = user.Password.Set(req.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	token, err := app.userRepo.CreateWithToken(r.Context(), user, func(u *domain.User) (*domain.Token, error) {
		return domain.GenerateToken(int64(u.ID), activationTokenTTL, domain.UserActivationScope)
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			app.conflictResponse(w, r, "A user with this phone number or email address already exists")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.background(func() {
		data := map[string]any{
			"firstName":       user.FirstName,
			"activationToken": token.Plaintext,
		}

		err := app.mailer.Send(user.Email, "user_welcome.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send welcome email", "error", err, "user_id", user.ID)
		}
	})

	err = app.writeJSON(w, http.StatusCreated, toUserResponse(user, memberRole.Name), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type ActivateUserRequest struct {
	Token string `json:"token" validate:"required,len=43"`
}

func (app *Application) ActivateUser(w http.ResponseWriter, r *http.Request) {
	var req ActivateUserRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	tokenHash := sha256.Sum256([]byte(req.Token))

	user, err := app.userRepo.GetByToken(r.Context(), tokenHash[:], domain.UserActivationScope)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.badRequestResponse(w, r, errors.New("invalid or expired activation token"))
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	user.Activated = true

	err = app.userRepo.ActivateUser(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	role, _ := app.roles.ById(user.RoleID)

	err = app.writeJSON(w, http.StatusOK, toUserResponse(user, role.Name), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type LoginRequest struct {
	Phone    string `json:"phone" validate:"required,e164_phone"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (app *Application) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	user, err := app.userRepo.GetByPhone(r.Context(), req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.invalidCredentialsResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	match, err := user.Password.Matches(req.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !match {
		app.invalidCredentialsResponse(w, r)
		return
	}

	if !user.Activated {
		app.inactiveAccountResponse(w, r)
		return
	}

	role, ok := app.roles.ById(user.RoleID)
	if !ok {
		app.serverErrorResponse(w, r, domain.ErrUnknownRole)
		return
	}

	token, expiry, err := auth.NewAccessToken([]byte(app.config.JWT.Secret), user.ID, role.Name, app.config.JWT.TTL)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, LoginResponse{Token: token, ExpiresAt: expiry}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type InitiatePasswordResetRequest struct {
	Phone string `json:"phone" validate:"required,e164_phone"`
}

// InitiatePasswordReset always answers 202 with the same message, so the
// endpoint cannot be used to probe which phone numbers have accounts.
func (app *Application) InitiatePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req InitiatePasswordResetRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	accepted := map[string]string{
		"message": "If a matching account exists, an email with password reset instructions will be sent",
	}

	user, err := app.userRepo.GetByPhone(r.Context(), req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.writeJSON(w, http.StatusAccepted, accepted, nil)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if !user.Activated {
		app.writeJSON(w, http.StatusAccepted, accepted, nil)
		return
	}

	token, err := domain.GenerateToken(int64(user.ID), passwordResetTokenTTL, domain.PasswordResetScope)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.tokenRepo.Create(r.Context(), token)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.background(func() {
		data := map[string]any{
			"firstName":          user.FirstName,
			"passwordResetToken": token.Plaintext,
		}

		err := app.mailer.Send(user.Email, "password_reset.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send password reset email", "error", err, "user_id", user.ID)
		}
	})

	err = app.writeJSON(w, http.StatusAccepted, accepted, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type CompletePasswordResetRequest struct {
	Token    string `json:"token" validate:"required,len=43"`
	Password string `json:"password" validate:"required,password"`
}

func (app *Application) CompletePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req CompletePasswordResetRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	tokenHash := sha256.Sum256([]byte(req.Token))

	user, err := app.userRepo.GetByToken(r.Context(), tokenHash[:], domain.PasswordResetScope)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.badRequestResponse(w, r, errors.New("invalid or expired password reset token"))
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = user.Password.Set(req.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.userRepo.UpdatePassword(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, map[string]string{"message": "Your password was successfully reset"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
