package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthSuite struct {
	BaseSuite
}

func TestAuthSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) TestRegistrationAndLoginFlow() {
	t := s.T()

	phone := uniquePhone(1001)
	email := "flow@example.com"
	password := "Sup3rSecret!"

	// Register.
	Scenario{
		Name:   "register a new user",
		Method: http.MethodPost,
		URL:    "/v1/users",
		Body: jsonBody(t, map[string]string{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"email":     email,
			"phone":     phone,
			"password":  password,
		}),
		ExpectedStatus: http.StatusCreated,
	}.Run(t, s.app)

	// Registering the same phone again conflicts.
	Scenario{
		Name:   "reject duplicate registration",
		Method: http.MethodPost,
		URL:    "/v1/users",
		Body: jsonBody(t, map[string]string{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"email":     "other@example.com",
			"phone":     phone,
			"password":  password,
		}),
		ExpectedStatus: http.StatusConflict,
	}.Run(t, s.app)

	// The welcome mail carries the activation token.
	var activationToken string
	require.Eventually(t, func() bool {
		for _, mail := range s.app.Mailer.Sent() {
			if mail.TemplateFile != "user_welcome.tmpl" || mail.Recipient != email {
				continue
			}
			data := mail.Data.(map[string]any)
			activationToken, _ = data["activationToken"].(string)
			return activationToken != ""
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)

	// Login before activation is refused.
	Scenario{
		Name:           "refuse login before activation",
		Method:         http.MethodPost,
		URL:            "/v1/tokens/authentication",
		Body:           jsonBody(t, map[string]string{"phone": phone, "password": password}),
		ExpectedStatus: http.StatusForbidden,
	}.Run(t, s.app)

	// Activate.
	Scenario{
		Name:           "activate with the mailed token",
		Method:         http.MethodPut,
		URL:            "/v1/users/activated",
		Body:           jsonBody(t, map[string]string{"token": activationToken}),
		ExpectedStatus: http.StatusOK,
	}.Run(t, s.app)

	// Activation tokens are single use.
	Scenario{
		Name:           "reject a reused activation token",
		Method:         http.MethodPut,
		URL:            "/v1/users/activated",
		Body:           jsonBody(t, map[string]string{"token": activationToken}),
		ExpectedStatus: http.StatusBadRequest,
	}.Run(t, s.app)

	// Login and read the profile.
	token := login(t, s.app, phone, password)

	Scenario{
		Name:           "fetch the current user",
		Method:         http.MethodGet,
		URL:            "/v1/users/me",
		Headers:        authHeader(token),
		ExpectedStatus: http.StatusOK,
		AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
			var got map[string]any
			require.NoError(t, json.NewDecoder(res.Body).Decode(&got))

			require.Equal(t, "Ada", got["firstName"])
			require.Equal(t, phone, got["phone"])
			require.Equal(t, "MEMBER", got["role"])
			require.Equal(t, true, got["activated"])
		},
	}.Run(t, s.app)

	Scenario{
		Name:           "reject a garbage bearer token",
		Method:         http.MethodGet,
		URL:            "/v1/users/me",
		Headers:        authHeader("not-a-jwt"),
		ExpectedStatus: http.StatusUnauthorized,
	}.Run(t, s.app)
}

func (s *AuthSuite) TestPasswordResetFlow() {
	t := s.T()

	phone := uniquePhone(1002)
	email := "reset@example.com"
	seedMember(t, s.app, "Grace", phone, email, "Sup3rSecret!")

	Scenario{
		Name:           "accept a reset request for a known phone",
		Method:         http.MethodPost,
		URL:            "/v1/tokens/password-reset",
		Body:           jsonBody(t, map[string]string{"phone": phone}),
		ExpectedStatus: http.StatusAccepted,
	}.Run(t, s.app)

	var resetToken string
	require.Eventually(t, func() bool {
		for _, mail := range s.app.Mailer.Sent() {
			if mail.TemplateFile != "password_reset.tmpl" || mail.Recipient != email {
				continue
			}
			data := mail.Data.(map[string]any)
			resetToken, _ = data["passwordResetToken"].(string)
			return resetToken != ""
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)

	Scenario{
		Name:           "set the new password with the mailed token",
		Method:         http.MethodPut,
		URL:            "/v1/users/password",
		Body:           jsonBody(t, map[string]string{"token": resetToken, "password": "N3wSecret!"}),
		ExpectedStatus: http.StatusOK,
	}.Run(t, s.app)

	Scenario{
		Name:           "refuse login with the old password",
		Method:         http.MethodPost,
		URL:            "/v1/tokens/authentication",
		Body:           jsonBody(t, map[string]string{"phone": phone, "password": "Sup3rSecret!"}),
		ExpectedStatus: http.StatusUnauthorized,
	}.Run(t, s.app)

	login(t, s.app, phone, "N3wSecret!")
}
