package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/backoffice/internal/infrastructure/i18n"
)

func setupTestI18n(t *testing.T) *i18n.Service {
	t.Helper()

	tmpDir := t.TempDir()
	catalogs := map[string]string{
		"en.json":    `{"error.unauthorized": "Not authenticated"}`,
		"pt-BR.json": `{"error.unauthorized": "Não autenticado"}`,
		"es.json":    `{"error.unauthorized": "No autenticado"}`,
	}
	for name, content := range catalogs {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0644); err != nil { //nolint:gosec
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	service, err := i18n.NewService(tmpDir, "en")
	if err != nil {
		t.Fatalf("failed to initialize i18n service: %v", err)
	}
	return service
}

func detect(m *I18nMiddleware, target, acceptLanguage string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	if acceptLanguage != "" {
		c.Request.Header.Set("Accept-Language", acceptLanguage)
	}
	m.DetectLanguage()(c)
	return c, w
}

func TestI18nMiddleware_DetectLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewI18nMiddleware(setupTestI18n(t))

	tests := []struct {
		name           string
		target         string
		acceptLanguage string
		expected       string
	}{
		{name: "query parameter explícito", target: "/?lang=pt-BR", expected: "pt-BR"},
		{name: "query tem prioridade sobre o header", target: "/?lang=pt-BR", acceptLanguage: "es", expected: "pt-BR"},
		{name: "query desconhecida cai no header", target: "/?lang=fr", acceptLanguage: "es", expected: "es"},
		{name: "header com pesos", target: "/", acceptLanguage: "fr,pt-BR;q=0.9,en;q=0.8", expected: "pt-BR"},
		{name: "idioma base casa com a variante regional", target: "/", acceptLanguage: "pt", expected: "pt-BR"},
		{name: "variante regional casa com o idioma base", target: "/", acceptLanguage: "en-US", expected: "en"},
		{name: "nenhum suportado usa o padrão", target: "/", acceptLanguage: "de,ja;q=0.5", expected: "en"},
		{name: "header malformado usa o padrão", target: "/", acceptLanguage: ";;;", expected: "en"},
		{name: "sem preferência usa o padrão", target: "/", expected: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := detect(m, tt.target, tt.acceptLanguage)

			if lang := c.GetString(LanguageContextKey); lang != tt.expected {
				t.Errorf("esperava '%s', obteve '%s'", tt.expected, lang)
			}
			if header := w.Header().Get("Content-Language"); header != tt.expected {
				t.Errorf("Content-Language = '%s', esperava '%s'", header, tt.expected)
			}
			if _, ok := c.Get(I18nServiceContextKey); !ok {
				t.Error("serviço i18n não foi definido no contexto")
			}
		})
	}
}

func TestI18nMiddleware_DefaultComesFirst(t *testing.T) {
	m := NewI18nMiddleware(setupTestI18n(t))

	if m.languages[0] != "en" {
		t.Fatalf("idioma padrão deveria ser o primeiro, obteve %v", m.languages)
	}
	if len(m.languages) != 3 {
		t.Errorf("esperava 3 idiomas, obteve %v", m.languages)
	}
}

func TestI18nMiddleware_RateLimitMessageIsTranslated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service, err := i18n.NewEmbeddedService("en")
	if err != nil {
		t.Fatalf("failed to load embedded catalog: %v", err)
	}
	m := NewI18nMiddleware(service)

	router := gin.New()
	router.Use(m.DetectLanguage())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, translate(c, "error.unauthorized", "fallback"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")
	router.ServeHTTP(w, req)

	if w.Body.String() != "Não autenticado" {
		t.Errorf("esperava 'Não autenticado', obteve '%s'", w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test?lang=en", nil))
	if w.Body.String() != "fallback" {
		t.Errorf("chave ausente em en deveria usar o fallback, obteve '%s'", w.Body.String())
	}
}
