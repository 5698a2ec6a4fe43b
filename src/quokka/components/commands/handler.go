package commands

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"

	"github.com/quokka-chat/quokka-bot/src/quokka/components/sanctions"
	"github.com/quokka-chat/quokka-bot/src/quokka/data"
)

type Session interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

type Capabilities interface {
	HasModerator(userID string) bool
	HasAdmin(userID string) bool
}

type Config struct {
	Ledger              *sanctions.Ledger
	Sweeper             *sanctions.Sweeper
	Perms               Capabilities
	Redis               *redis.Client
	Prefix              string
	SubmissionChannelID string
}

// Handler parses prefix commands and drives the sanction ledger. Sanction
// verbs require admin capability, clear requires moderator capability.
type Handler struct {
	config Config
}

func NewHandler(config Config) *Handler {
	if config.Prefix == "" {
		config.Prefix = "!"
	}
	return &Handler{config: config}
}

// HandleMessage dispatches m if it is a recognized command. Returns true
// when the message was consumed.
func (h *Handler) HandleMessage(s Session, m *discordgo.MessageCreate) bool {
	if !strings.HasPrefix(m.Content, h.config.Prefix) {
		return false
	}

	fields := strings.Fields(m.Content)
	verb := strings.TrimPrefix(fields[0], h.config.Prefix)

	switch verb {
	case "ping":
		h.send(s, m.ChannelID, "🏓 Pong! Le bot fonctionne!")
	case "aide", "help":
		h.send(s, m.ChannelID, helpText)
	case "moderation":
		h.send(s, m.ChannelID, fmt.Sprintf(moderationText, h.config.SubmissionChannelID))
	case "clear":
		h.handleClear(s, m, fields)
	case "ban":
		h.handleBan(s, m, fields)
	case "mute":
		h.handleMute(s, m, fields)
	case "unban":
		h.handleUnban(s, m, fields)
	case "warn":
		h.handleWarn(s, m, fields)
	case "warnings":
		h.handleWarnings(s, m, fields)
	default:
		return false
	}

	log.Printf("[CMD] !%s by %s", verb, m.Author.Username)
	return true
}

func (h *Handler) handleClear(s Session, m *discordgo.MessageCreate, fields []string) {
	if !h.config.Perms.HasModerator(m.Author.ID) {
		h.send(s, m.ChannelID, fmt.Sprintf("❌ <@%s> Tu n'as pas la permission d'utiliser cette commande.\nSeuls les modérateurs peuvent supprimer des messages.", m.Author.ID))
		return
	}

	if len(fields) < 2 {
		h.send(s, m.ChannelID, "📋 **Usage:** `!clear <nombre>`\nExemple: `!clear 10` pour supprimer 10 messages\nMaximum: 100 messages")
		return
	}

	count, err := strconv.Atoi(fields[1])
	if err != nil {
		h.send(s, m.ChannelID, "❌ Merci de fournir un nombre valide.")
		return
	}
	if count < 1 || count > 100 {
		h.send(s, m.ChannelID, "❌ Le nombre doit être entre 1 et 100.")
		return
	}

	// Drop the command message itself first so it does not count against
	// the requested amount.
	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.Printf("[CLEAR] delete command message: %v", err)
	}

	deleted := h.config.Sweeper.SweepChannel(m.ChannelID, count)
	h.send(s, m.ChannelID, fmt.Sprintf("🗑️ **%d message(s) supprimé(s)** par <@%s>", deleted, m.Author.ID))
}

func (h *Handler) handleBan(s Session, m *discordgo.MessageCreate, fields []string) {
	if !h.requireAdmin(s, m, "bannir des utilisateurs") {
		return
	}

	if len(fields) < 3 {
		h.send(s, m.ChannelID, "📋 **Usage:** `!ban <@utilisateur> <durée> <raison>`\n**Durées:** `perm` (permanent), `30m`, `1h`, `1d`, `1w`")
		return
	}

	userID, ok := parseMention(fields[1])
	if !ok {
		h.send(s, m.ChannelID, "❌ Merci de mentionner un utilisateur valide (@username).")
		return
	}

	duration, _, err := sanctions.ParseDuration(fields[2])
	if err != nil {
		h.send(s, m.ChannelID, "❌ Durée invalide. Utilise `perm`, `30m`, `1h`, `1d`, ou `1w`.")
		return
	}

	reason := reasonFrom(fields, 3)

	sanction, err := h.config.Ledger.Ban(userID, reason, m.Author.Username, duration)
	if err != nil {
		h.send(s, m.ChannelID, "❌ Cet utilisateur est déjà banni.")
		return
	}

	h.send(s, m.ChannelID, fmt.Sprintf(
		"✅ **Utilisateur banni**\n\n👤 **Utilisateur:** %s\n⏱️ **Durée:** %s\n📝 **Raison:** %s\n👮 **Banni par:** <@%s>",
		fields[1], durationText(sanction, fields[2]), reason, m.Author.ID))
	h.publishAudit(sanction, "ban")
}

func (h *Handler) handleMute(s Session, m *discordgo.MessageCreate, fields []string) {
	if !h.requireAdmin(s, m, "muter des utilisateurs") {
		return
	}

	if len(fields) < 3 {
		h.send(s, m.ChannelID, "📋 **Usage:** `!mute <@utilisateur> <durée> <raison>`\n**Durées:** `perm` (permanent), `30m`, `1h`, `1d`, `1w`")
		return
	}

	userID, ok := parseMention(fields[1])
	if !ok {
		h.send(s, m.ChannelID, "❌ Merci de mentionner un utilisateur valide (@username).")
		return
	}

	duration, _, err := sanctions.ParseDuration(fields[2])
	if err != nil {
		h.send(s, m.ChannelID, "❌ Durée invalide. Utilise `perm`, `30m`, `1h`, `1d`, ou `1w`.")
		return
	}

	reason := reasonFrom(fields, 3)

	sanction, err := h.config.Ledger.Mute(userID, reason, m.Author.Username, duration)
	if err != nil {
		h.send(s, m.ChannelID, "❌ Cet utilisateur est déjà muté.")
		return
	}

	// The mute is committed; the sweep is best-effort cleanup and can only
	// add color to the confirmation.
	deleted := h.config.Sweeper.SweepUser(m.ChannelID, userID)
	cleanup := ""
	if deleted > 0 {
		cleanup = fmt.Sprintf("🗑️ **Messages supprimés:** %d\n", deleted)
	}

	h.send(s, m.ChannelID, fmt.Sprintf(
		"🔇 **Utilisateur muté**\n\n👤 **Utilisateur:** %s\n⏱️ **Durée:** %s\n📝 **Raison:** %s\n%s👮 **Muté par:** <@%s>",
		fields[1], durationText(sanction, fields[2]), reason, cleanup, m.Author.ID))
	h.publishAudit(sanction, "mute")
}

func (h *Handler) handleUnban(s Session, m *discordgo.MessageCreate, fields []string) {
	if !h.requireAdmin(s, m, "débannir des utilisateurs") {
		return
	}

	if len(fields) < 2 {
		h.send(s, m.ChannelID, "📋 **Usage:** `!unban <@utilisateur>`")
		return
	}

	userID, ok := parseMention(fields[1])
	if !ok {
		h.send(s, m.ChannelID, "❌ Merci de mentionner un utilisateur valide (@username).")
		return
	}

	removed, err := h.config.Ledger.Unban(userID)
	if err != nil {
		h.send(s, m.ChannelID, "❌ Cet utilisateur n'est pas banni.")
		return
	}

	h.send(s, m.ChannelID, fmt.Sprintf(
		"✅ **Utilisateur débanni**\n\n👤 **Utilisateur:** %s\n📝 **Raison du ban:** %s\n👮 **Débanni par:** <@%s>",
		fields[1], removed.Reason, m.Author.ID))
	h.publishAudit(removed, "unban")
}

func (h *Handler) handleWarn(s Session, m *discordgo.MessageCreate, fields []string) {
	if !h.requireAdmin(s, m, "avertir des utilisateurs") {
		return
	}

	if len(fields) < 3 {
		h.send(s, m.ChannelID, "📋 **Usage:** `!warn <@utilisateur> <raison>`")
		return
	}

	userID, ok := parseMention(fields[1])
	if !ok {
		h.send(s, m.ChannelID, "❌ Merci de mentionner un utilisateur valide (@username).")
		return
	}

	reason := reasonFrom(fields, 2)
	count := h.config.Ledger.Warn(userID, reason, m.Author.Username)

	h.send(s, m.ChannelID, fmt.Sprintf(
		"⚠️ **Utilisateur averti**\n\n👤 **Utilisateur:** %s\n📝 **Raison:** %s\n📊 **Nombre total d'avertissements:** %d\n👮 **Averti par:** <@%s>",
		fields[1], reason, count, m.Author.ID))

	if err := data.PublishModerationEvent(context.Background(), h.config.Redis, map[string]interface{}{
		"action": "warn",
		"user":   userID,
		"reason": reason,
		"by":     m.Author.Username,
		"count":  count,
		"time":   time.Now().Unix(),
	}); err != nil {
		log.Printf("[AUDIT] publish warn: %v", err)
	}
}

func (h *Handler) handleWarnings(s Session, m *discordgo.MessageCreate, fields []string) {
	if !h.requireAdmin(s, m, "consulter les avertissements") {
		return
	}

	if len(fields) < 2 {
		h.send(s, m.ChannelID, "📋 **Usage:** `!warnings <@utilisateur>`")
		return
	}

	userID, ok := parseMention(fields[1])
	if !ok {
		h.send(s, m.ChannelID, "❌ Merci de mentionner un utilisateur valide (@username).")
		return
	}

	warnings := h.config.Ledger.Warnings(userID)
	if len(warnings) == 0 {
		h.send(s, m.ChannelID, fmt.Sprintf("📋 **Avertissements de %s**\n\n✅ Aucun avertissement pour cet utilisateur.", fields[1]))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 **Avertissements de %s**\n\n**Total:** %d avertissement(s)\n\n", fields[1], len(warnings))
	for i, w := range warnings {
		fmt.Fprintf(&b, "**Avertissement #%d**\n📅 **Date:** %s\n📝 **Raison:** %s\n👮 **Par:** %s\n\n",
			i+1, w.IssuedAt.Format("02/01/2006 15:04"), w.Reason, w.IssuedBy)
	}
	h.send(s, m.ChannelID, b.String())
}

func (h *Handler) requireAdmin(s Session, m *discordgo.MessageCreate, action string) bool {
	if h.config.Perms.HasAdmin(m.Author.ID) {
		return true
	}
	h.send(s, m.ChannelID, fmt.Sprintf("❌ <@%s> Tu n'as pas la permission d'utiliser cette commande.\nSeuls les administrateurs peuvent %s.", m.Author.ID, action))
	return false
}

func (h *Handler) publishAudit(s sanctions.Sanction, action string) {
	if err := data.PublishModerationEvent(context.Background(), h.config.Redis, map[string]interface{}{
		"action": action,
		"id":     s.ID,
		"user":   s.UserID,
		"reason": s.Reason,
		"by":     s.IssuedBy,
		"time":   time.Now().Unix(),
	}); err != nil {
		log.Printf("[AUDIT] publish %s: %v", action, err)
	}
}

func (h *Handler) send(s Session, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		log.Printf("[CMD] send to %s: %v", channelID, err)
	}
}

// parseMention extracts the user id from a <@id> or <@!id> mention token.
func parseMention(token string) (string, bool) {
	if !strings.HasPrefix(token, "<@") || !strings.HasSuffix(token, ">") {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(token, "<@"), ">")
	id = strings.TrimPrefix(id, "!")
	if id == "" {
		return "", false
	}
	return id, true
}

func reasonFrom(fields []string, start int) string {
	if len(fields) > start {
		return strings.Join(fields[start:], " ")
	}
	return "Aucune raison fournie"
}

func durationText(s sanctions.Sanction, raw string) string {
	if s.Permanent() {
		return "**permanent**"
	}
	return fmt.Sprintf("**%s**", strings.ToLower(raw))
}

const helpText = "📚 **Commandes disponibles:**\n\n" +
	"**Tout le monde:**\n" +
	"• `!ping` - Vérifier le statut du bot\n" +
	"• `!aide` / `!help` - Afficher cette aide\n" +
	"• `!moderation` - Informations sur la modération\n" +
	"• Mentionnez le bot pour une réponse IA\n\n" +
	"**Modérateurs uniquement:**\n" +
	"• `!clear <nombre>` - Supprimer des messages (max 100)\n\n" +
	"**Administrateurs uniquement:**\n" +
	"• `!ban <@user> <durée> <raison>` - Bannir un utilisateur\n" +
	"• `!mute <@user> <durée> <raison>` - Muter un utilisateur\n" +
	"• `!unban <@user>` - Débannir un utilisateur\n" +
	"• `!warn <@user> <raison>` - Avertir un utilisateur\n" +
	"• `!warnings <@user>` - Voir les avertissements\n" +
	"  Durées: `perm`, `30m`, `1h`, `1d`, `1w`"

const moderationText = "🛡️ **Système de modération**\n\n" +
	"**Canal de soumission:** <#%s>\n\n" +
	"**Comment ça marche:**\n" +
	"1. L'utilisateur soumet un serveur\n" +
	"2. Le bot ajoute les réactions ✅ ❌\n" +
	"3. Le modérateur approuve/refuse\n" +
	"4. Le message est traité\n\n" +
	"**Statut:** ✅ Actif"
