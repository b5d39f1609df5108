package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/backoffice/internal/infrastructure/config"
)

func TestCookieHelper_SetSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	helper := NewCookieHelper(config.CookieConfig{Domain: "example.com", Secure: true})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/login", nil)

	helper.SetSession(c, "token-value", "admin", 2*time.Hour)

	cookies := map[string]*http.Cookie{}
	for _, cookie := range w.Result().Cookies() {
		cookies[cookie.Name] = cookie
	}

	session, ok := cookies[SessionCookie]
	if !ok {
		t.Fatal("session cookie not set")
	}
	if session.Value != "token-value" || !session.HttpOnly || !session.Secure {
		t.Errorf("unexpected session cookie: %+v", session)
	}
	if session.MaxAge != 7200 || session.Path != "/" || session.Domain != "example.com" {
		t.Errorf("unexpected session cookie attributes: %+v", session)
	}
	if session.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", session.SameSite)
	}

	role, ok := cookies[RoleCookie]
	if !ok {
		t.Fatal("role cookie not set")
	}
	if role.Value != "admin" || role.HttpOnly {
		t.Errorf("role hint must be readable by scripts: %+v", role)
	}
}

func TestCookieHelper_ReadAndClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	helper := NewCookieHelper(config.CookieConfig{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if helper.SessionToken(c) != "" || helper.RoleHint(c) != "" {
		t.Fatal("expected empty values without cookies")
	}

	c.Request.AddCookie(&http.Cookie{Name: SessionCookie, Value: "abc"})
	c.Request.AddCookie(&http.Cookie{Name: RoleCookie, Value: "user"})
	if helper.SessionToken(c) != "abc" || helper.RoleHint(c) != "user" {
		t.Errorf("got %q/%q", helper.SessionToken(c), helper.RoleHint(c))
	}

	helper.ClearSession(c)
	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge >= 0 || cookie.Value != "" {
			t.Errorf("cookie %s not expired: %+v", cookie.Name, cookie)
		}
	}
}
