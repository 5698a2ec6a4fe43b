package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quokka-chat/quokka-bot/src/quokka/components/sanctions"
	"github.com/quokka-chat/quokka-bot/src/quokka/components/submissions"
)

type Moderation struct {
	ledger   *sanctions.Ledger
	registry *submissions.Registry
}

func NewModeration(ledger *sanctions.Ledger, registry *submissions.Registry) Moderation {
	return Moderation{ledger: ledger, registry: registry}
}

type sanctionView struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Kind      string `json:"kind"`
	Reason    string `json:"reason"`
	IssuedBy  string `json:"issuedBy"`
	IssuedAt  string `json:"issuedAt"`
	ExpiresAt string `json:"expiresAt,omitempty"`
	Permanent bool   `json:"permanent"`
}

type warningView struct {
	ID       string `json:"id"`
	Reason   string `json:"reason"`
	IssuedBy string `json:"issuedBy"`
	IssuedAt string `json:"issuedAt"`
}

type submissionView struct {
	ID         string `json:"id"`
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName"`
	Content    string `json:"content"`
}

func viewOf(s sanctions.Sanction) sanctionView {
	v := sanctionView{
		ID:        s.ID,
		UserID:    s.UserID,
		Kind:      string(s.Kind),
		Reason:    s.Reason,
		IssuedBy:  s.IssuedBy,
		IssuedAt:  s.IssuedAt.Format(time.RFC3339),
		Permanent: s.Permanent(),
	}
	if !s.Permanent() {
		v.ExpiresAt = s.ExpiresAt.Format(time.RFC3339)
	}
	return v
}

func (h Moderation) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h Moderation) Sanctions(c *gin.Context) {
	userID := c.Param("userID")

	active := make([]sanctionView, 0, 2)
	if ban, ok := h.ledger.ActiveBan(userID); ok {
		active = append(active, viewOf(ban))
	}
	if mute, ok := h.ledger.ActiveMute(userID); ok {
		active = append(active, viewOf(mute))
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID, "sanctions": active})
}

func (h Moderation) Warnings(c *gin.Context) {
	userID := c.Param("userID")

	warnings := h.ledger.Warnings(userID)
	views := make([]warningView, 0, len(warnings))
	for _, w := range warnings {
		views = append(views, warningView{
			ID:       w.ID,
			Reason:   w.Reason,
			IssuedBy: w.IssuedBy,
			IssuedAt: w.IssuedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID, "warnings": views})
}

func (h Moderation) Submissions(c *gin.Context) {
	pending := h.registry.Pending()
	views := make([]submissionView, 0, len(pending))
	for _, sub := range pending {
		views = append(views, submissionView{
			ID:         sub.ID,
			AuthorID:   sub.AuthorID,
			AuthorName: sub.AuthorName,
			Content:    sub.Content,
		})
	}
	c.JSON(http.StatusOK, gin.H{"submissions": views})
}
