package middleware

import (
	"sort"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/rafabene/backoffice/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"
)

// I18nMiddleware escolhe o idioma das mensagens de erro de cada requisição
type I18nMiddleware struct {
	i18nService *i18n.Service
	languages   []string
	matcher     language.Matcher
}

// NewI18nMiddleware cria um novo middleware de i18n.
// O idioma padrão fica na posição 0: é o que o matcher devolve quando nada casa.
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	fallback := i18nService.GetDefaultLanguage()
	languages := []string{fallback}
	others := i18nService.GetSupportedLanguages()
	sort.Strings(others)
	for _, lang := range others {
		if lang != fallback {
			languages = append(languages, lang)
		}
	}

	tags := make([]language.Tag, 0, len(languages))
	for _, lang := range languages {
		tags = append(tags, language.Make(lang))
	}

	return &I18nMiddleware{
		i18nService: i18nService,
		languages:   languages,
		matcher:     language.NewMatcher(tags),
	}
}

// DetectLanguage grava o idioma e o serviço no contexto.
// ?lang= só vale se for um catálogo existente; depois vem o Accept-Language.
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if lang == "" || !m.i18nService.IsLanguageSupported(lang) {
			lang = m.negotiate(c.GetHeader("Accept-Language"))
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)
		c.Header("Content-Language", lang)

		c.Next()
	}
}

// negotiate casa o header com os catálogos carregados ("pt" -> "pt-BR", "en-US" -> "en")
func (m *I18nMiddleware) negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return m.languages[0]
	}

	preferred, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(preferred) == 0 {
		return m.languages[0]
	}

	_, index, confidence := m.matcher.Match(preferred...)
	if confidence == language.No {
		return m.languages[0]
	}
	return m.languages[index]
}
