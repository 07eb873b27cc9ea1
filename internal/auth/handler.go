package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/company-portal/internal"
	"github.com/frahmantamala/company-portal/internal/transport"
	"github.com/frahmantamala/company-portal/pkg/logger"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (token string, expiresAt time.Time, err error)
	ValidateSession(tokenString string) (*internal.Session, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// LoginForm answers GET /login. Rendering is external; the handler only
// describes the expected submission.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "POST username and password to /login",
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	dto := LoginDTO{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	token, expiresAt, err := h.Service.Authenticate(dto)
	if err != nil {
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Warn("login failed", "username", dto.Username)
		// same message for unknown user and wrong password
		h.WriteError(w, http.StatusUnauthorized, internal.ErrInvalidCredentials.Message)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.Logger.Info("login succeeded", "username", dto.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session cookie unconditionally.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, LoginPath, http.StatusFound)
}

// SessionGate authenticates the request from the session cookie. Requests
// without a valid session are redirected to the login entry point.
func (h *Handler) SessionGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}

		session, err := h.Service.ValidateSession(cookie.Value)
		if err != nil {
			h.Logger.Warn("session rejected", "error", err)
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}

		ctx := internal.ContextWithSession(r.Context(), session)
		ctx = logger.With(ctx, "user_id", session.UserID, "role", session.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authorize enforces the RolePolicy entry for a route pattern. It must run
// after SessionGate; a request that somehow reaches it without a session is
// treated as unauthenticated, not as forbidden.
func (h *Handler) Authorize(pattern string) func(http.Handler) http.Handler {
	required, gated := RolePolicy[pattern]
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := internal.SessionFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			if gated && required == RoleAdmin && session.Role != string(RoleAdmin) {
				// the session gate already tagged the logger with the identity
				logger.From(r.Context()).Warn("access denied: admin route", "pattern", pattern)
				http.Error(w, internal.ErrAdminOnly.Message, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
