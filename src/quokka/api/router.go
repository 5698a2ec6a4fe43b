package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quokka-chat/quokka-bot/src/quokka/components/sanctions"
	"github.com/quokka-chat/quokka-bot/src/quokka/components/submissions"
)

func attachRoutes(r *gin.Engine, secret []byte, ledger *sanctions.Ledger, registry *submissions.Registry) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	modH := NewModeration(ledger, registry)

	v1 := r.Group("/v1")
	{
		v1.GET("/health", modH.Health)

		secured := v1.Use(JWTMiddleware(secret))
		secured.GET("/sanctions/:userID", modH.Sanctions)
		secured.GET("/warnings/:userID", modH.Warnings)
		secured.GET("/submissions", modH.Submissions)
	}
}
