package web

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/csrf"

	"fittrack/internal/adapters/http/middleware"
	"fittrack/internal/application/authz"
	"fittrack/internal/application/orchestrators"
	"fittrack/internal/application/projections"
	"fittrack/internal/domain/user"
)

const (
	csrfFieldName  = "gorilla.csrf.Token"
	csrfHeaderName = "X-CSRF-Token"
)

// userView is the public shape of an account. It never carries the password hash.
type userView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

func viewOfUser(u user.User) userView {
	return userView{ID: u.ID, Email: u.Email, Role: u.Role, Name: u.Name}
}

func viewOfIdentity(id authz.Identity) userView {
	return userView{ID: id.ID, Email: id.Email, Role: id.Role, Name: id.Name}
}

// handleRegister handles POST /api/register
func handleRegister(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.RegisterInput
	if err := strictDecode(r, &input); err != nil {
		badJSON(w)
		return
	}
	u, err := orchestrators.ExecuteRegister(r.Context(), input, orchestrators.RegisterDeps{
		UserStore:  stores.UserStore,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered",
		"user":    viewOfUser(u),
	})
}

// handleLoginForm handles GET /login. It hands every caller the CSRF token that
// cookie-session mutations must echo in the X-CSRF-Token header or the form field.
// A signed-in caller also gets their account back.
func handleLoginForm(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"csrf_token":  csrf.Token(r),
		"csrf_field":  csrfFieldName,
		"csrf_header": csrfHeaderName,
	}
	if id, ok := authz.FromContext(r.Context()); ok {
		body["user"] = viewOfIdentity(id)
	}
	writeJSON(w, http.StatusOK, body)
}

// readLogin accepts either a JSON body or a form post.
func readLogin(r *http.Request) (orchestrators.LoginInput, error) {
	var input orchestrators.LoginInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return input, strictDecode(r, &input)
	}
	if err := r.ParseForm(); err != nil {
		return input, err
	}
	input.Email = r.FormValue("email")
	input.Password = r.FormValue("password")
	return input, nil
}

func login(w http.ResponseWriter, r *http.Request) (orchestrators.LoginResult, bool) {
	input, err := readLogin(r)
	if err != nil {
		badJSON(w)
		return orchestrators.LoginResult{}, false
	}
	result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{UserStore: stores.UserStore})
	if err != nil {
		writeError(w, r, err)
		return orchestrators.LoginResult{}, false
	}
	return result, true
}

// handleLogin handles POST /login and starts a cookie session.
// Form posts are redirected to the dashboard; JSON callers get the user back.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	result, ok := login(w, r)
	if !ok {
		return
	}
	sess := middleware.Session{AccountID: result.UserID, Email: result.Email, Role: result.Role, Name: result.Name}
	if err := sessions.Start(r.Context(), w, sess); err != nil {
		internalError(w, r, err)
		return
	}
	slog.Info("auth_event", "event", "session_started", "account_id", result.UserID)

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		http.Redirect(w, r, "/api/dashboard", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Logged in",
		"user":    viewOfIdentity(sess.Identity()),
	})
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := sessions.End(w, r); err != nil {
		slog.Warn("auth_event", "event", "session_end_failed", "error", err.Error())
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleIssueToken handles POST /api/auth/token. It authenticates like /login
// but answers with a bearer token instead of a cookie.
func handleIssueToken(w http.ResponseWriter, r *http.Request) {
	result, ok := login(w, r)
	if !ok {
		return
	}
	id := authz.Identity{ID: result.UserID, Email: result.Email, Role: result.Role, Name: result.Name}
	token, expires, err := tokens.Issue(id)
	if err != nil {
		internalError(w, r, err)
		return
	}
	slog.Info("auth_event", "event", "token_issued", "account_id", result.UserID)
	writeJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"token_type": "Bearer",
		"expires_at": expires.UTC().Format(time.RFC3339),
		"user":       viewOfIdentity(id),
	})
}

// handleMe handles GET /api/me
func handleMe(w http.ResponseWriter, r *http.Request) {
	u, err := projections.QueryAccount(r.Context(), projections.AccountDeps{UserStore: stores.UserStore})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOfUser(u))
}

// handleHealthz handles GET /healthz
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	if db != nil {
		if err := db.PingContext(r.Context()); err != nil {
			slog.Error("health_check_failed", "error", err.Error())
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
