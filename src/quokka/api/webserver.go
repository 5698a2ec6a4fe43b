package api

import (
	"github.com/gin-gonic/gin"

	"github.com/quokka-chat/quokka-bot/src/quokka/components/sanctions"
	"github.com/quokka-chat/quokka-bot/src/quokka/components/submissions"
)

// New builds the read-only moderation API. It exposes the in-memory ledger
// and submission registry to external tooling; all mutation stays with the
// bot commands.
func New(secret []byte, ledger *sanctions.Ledger, registry *submissions.Registry) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, secret, ledger, registry)
	return g
}
