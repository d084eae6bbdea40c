package http

import (
	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
	"github.com/dzmitrysafronau/shop-project/internal/logging"
	"github.com/gin-gonic/gin"
)

// writeError renders the uniform error envelope:
//
//	{"error": {"type", "status", "detail", "method", "path"}}
//
// detail is a message string or a field -> messages map.
func writeError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := kind.HTTPStatus()
	if kind == domain.KindInternal {
		logging.From(c).Error("request failed", "err", err)
	}
	c.JSON(status, gin.H{"error": gin.H{
		"type":   string(kind),
		"status": status,
		"detail": domain.DetailOf(err),
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}})
}

func writeErrorKind(c *gin.Context, kind domain.Kind, detail any) {
	status := kind.HTTPStatus()
	c.JSON(status, gin.H{"error": gin.H{
		"type":   string(kind),
		"status": status,
		"detail": detail,
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}})
}
