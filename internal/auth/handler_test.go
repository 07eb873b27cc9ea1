package auth

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/company-portal/internal"
	"github.com/frahmantamala/company-portal/pkg/logger"
)

func loginRequest(username, password string) *http.Request {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

var _ = ginkgo.Describe("Auth Handler", func() {
	var (
		handler *Handler
		service *Service
	)

	ginkgo.BeforeEach(func() {
		tokens := NewJWTSessionTokens("test-session-secret", time.Hour)
		service = NewService(newMockCredentialRepository(), tokens)
		handler = NewHandler(service)
	})

	sessionCookieFor := func(username string) *http.Cookie {
		token, expiresAt, err := service.Authenticate(LoginDTO{Username: username, Password: "correct_password"})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		return &http.Cookie{Name: SessionCookieName, Value: token, Expires: expiresAt}
	}

	ginkgo.Describe("Login", func() {
		ginkgo.It("should establish a session and redirect to the default view", func() {
			w := httptest.NewRecorder()
			handler.Login(w, loginRequest("jsmith", "correct_password"))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusSeeOther))
			gomega.Expect(w.Header().Get("Location")).To(gomega.Equal("/"))

			cookies := w.Result().Cookies()
			gomega.Expect(cookies).To(gomega.HaveLen(1))
			gomega.Expect(cookies[0].Name).To(gomega.Equal(SessionCookieName))
			gomega.Expect(cookies[0].Value).ToNot(gomega.BeEmpty())
			gomega.Expect(cookies[0].HttpOnly).To(gomega.BeTrue())
		})

		ginkgo.It("should answer a wrong password with the generic notice", func() {
			w := httptest.NewRecorder()
			handler.Login(w, loginRequest("jsmith", "wrong_password"))

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("invalid username or password"))
		})

		ginkgo.It("should answer an unknown username with the exact same notice", func() {
			wrongPass := httptest.NewRecorder()
			handler.Login(wrongPass, loginRequest("jsmith", "wrong_password"))

			unknownUser := httptest.NewRecorder()
			handler.Login(unknownUser, loginRequest("nobody", "correct_password"))

			gomega.Expect(unknownUser.Code).To(gomega.Equal(wrongPass.Code))
			gomega.Expect(unknownUser.Body.String()).To(gomega.Equal(wrongPass.Body.String()))
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("should expire the session cookie and redirect to login", func() {
			req := httptest.NewRequest(http.MethodGet, "/logout", nil)
			req.AddCookie(sessionCookieFor("jsmith"))
			w := httptest.NewRecorder()

			handler.Logout(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusFound))
			gomega.Expect(w.Header().Get("Location")).To(gomega.Equal(LoginPath))

			cookies := w.Result().Cookies()
			gomega.Expect(cookies).To(gomega.HaveLen(1))
			gomega.Expect(cookies[0].MaxAge).To(gomega.BeNumerically("<", 0))
		})
	})

	ginkgo.Describe("SessionGate", func() {
		var next http.Handler
		var nextCalled bool

		ginkgo.BeforeEach(func() {
			nextCalled = false
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})
		})

		ginkgo.It("should redirect to login when no cookie is present", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()

			handler.SessionGate(next).ServeHTTP(w, req)

			gomega.Expect(nextCalled).To(gomega.BeFalse())
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusFound))
			gomega.Expect(w.Header().Get("Location")).To(gomega.Equal(LoginPath))
		})

		ginkgo.It("should redirect to login when the token is invalid", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tampered"})
			w := httptest.NewRecorder()

			handler.SessionGate(next).ServeHTTP(w, req)

			gomega.Expect(nextCalled).To(gomega.BeFalse())
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusFound))
		})

		ginkgo.It("should put the session in context and invoke the handler", func() {
			var gotSession *internal.Session
			inspect := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSession, _ = internal.SessionFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(sessionCookieFor("admin"))
			w := httptest.NewRecorder()

			handler.SessionGate(inspect).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(gotSession).ToNot(gomega.BeNil())
			gomega.Expect(gotSession.Role).To(gomega.Equal("admin"))
		})

		ginkgo.It("should tag the request logger with the session identity", func() {
			var buf bytes.Buffer
			base := slog.New(slog.NewTextHandler(&buf, nil))

			inspect := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.From(r.Context()).Info("viewed")
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(logger.Attach(req.Context(), base))
			req.AddCookie(sessionCookieFor("admin"))
			w := httptest.NewRecorder()

			handler.SessionGate(inspect).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(buf.String()).To(gomega.ContainSubstring("user_id=2"))
			gomega.Expect(buf.String()).To(gomega.ContainSubstring("role=admin"))
		})
	})

	ginkgo.Describe("Authorize", func() {
		var next http.Handler
		var nextCalled bool

		ginkgo.BeforeEach(func() {
			nextCalled = false
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})
		})

		serveThroughGates := func(pattern string, cookie *http.Cookie) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if cookie != nil {
				req.AddCookie(cookie)
			}
			w := httptest.NewRecorder()
			handler.SessionGate(handler.Authorize(pattern)(next)).ServeHTTP(w, req)
			return w
		}

		ginkgo.It("should deny a non-admin on an admin route with the fixed response", func() {
			w := serveThroughGates("/employee/{ssn}", sessionCookieFor("jsmith"))

			gomega.Expect(nextCalled).To(gomega.BeFalse())
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(strings.TrimSpace(w.Body.String())).To(gomega.Equal("Access denied (Admin only)"))
		})

		ginkgo.It("should let an admin through an admin route", func() {
			w := serveThroughGates("/project/{id}", sessionCookieFor("admin"))

			gomega.Expect(nextCalled).To(gomega.BeTrue())
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should let any session through a route absent from the policy", func() {
			w := serveThroughGates("/manager_overview", sessionCookieFor("jsmith"))

			gomega.Expect(nextCalled).To(gomega.BeTrue())
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should log the denial through the request logger", func() {
			var buf bytes.Buffer
			base := slog.New(slog.NewTextHandler(&buf, nil))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(logger.Attach(req.Context(), base))
			req.AddCookie(sessionCookieFor("jsmith"))
			w := httptest.NewRecorder()

			handler.SessionGate(handler.Authorize("/import_dependents")(next)).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(buf.String()).To(gomega.ContainSubstring("access denied"))
			gomega.Expect(buf.String()).To(gomega.ContainSubstring("user_id=1"))
		})

		ginkgo.It("should redirect, not deny, when no session reached the role gate", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()

			// role gate alone, no session gate in front
			handler.Authorize("/employee/{ssn}")(next).ServeHTTP(w, req)

			gomega.Expect(nextCalled).To(gomega.BeFalse())
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusFound))
			gomega.Expect(w.Header().Get("Location")).To(gomega.Equal(LoginPath))
		})
	})
})
