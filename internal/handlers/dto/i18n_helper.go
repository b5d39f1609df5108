package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/backoffice/internal/handlers/middleware"
	"github.com/rafabene/backoffice/internal/infrastructure/i18n"
)

// T traduz a chave no idioma da requisição; sem o middleware de i18n devolve a própria chave
func T(c *gin.Context, key string, params ...map[string]interface{}) string {
	service := catalog(c)
	if service == nil {
		return key
	}
	return service.T(GetLanguage(c), key, params...)
}

// GetLanguage retorna o idioma escolhido pelo DetectLanguage
func GetLanguage(c *gin.Context) string {
	if lang := c.GetString(middleware.LanguageContextKey); lang != "" {
		return lang
	}
	if service := catalog(c); service != nil {
		return service.GetDefaultLanguage()
	}
	return "en"
}

// translateOr traduz a chave ou devolve o texto padrão quando nenhum catálogo a conhece
func translateOr(c *gin.Context, key, fallback string) string {
	service := catalog(c)
	if service == nil || !service.Has(GetLanguage(c), key) {
		return fallback
	}
	return service.T(GetLanguage(c), key)
}

func catalog(c *gin.Context) *i18n.Service {
	value, ok := c.Get(middleware.I18nServiceContextKey)
	if !ok {
		return nil
	}
	service, _ := value.(*i18n.Service)
	return service
}
