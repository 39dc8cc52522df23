package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/you/localhub/internal/http/handlers"
	"github.com/you/localhub/internal/http/middleware"
)

func BuildRouter(bh *handlers.BackendHandlers, jwtmw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	api := r.Group("/api")
	api.GET("/twilio/config", bh.VerifyConfig)

	users := api.Group("/users").Use(jwtmw.WithJWT())
	users.POST("/push-token", bh.RegisterPushToken)

	return r
}
