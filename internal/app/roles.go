package app

import "net/http"

// ReloadRoles refreshes the role reference cache from the database. The
// roles table changes through migrations, so a manual trigger is enough.
func (app *Application) ReloadRoles(w http.ResponseWriter, r *http.Request) {
	err := app.roles.Reload(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, map[string]string{"message": "Roles reloaded"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
