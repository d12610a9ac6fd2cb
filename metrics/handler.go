package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var Default Factory
var handler http.Handler

func init() {
	r := NewRegistry()
	Default = With(r)
	handler = promhttp.HandlerFor(r, promhttp.HandlerOpts{})
}

func RegisterMetricsHandler(eng *gin.Engine) {
	eng.GET("/metrics", func(c *gin.Context) { handler.ServeHTTP(c.Writer, c.Request) })
	Enable()
}
