package bot

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"

	"github.com/quokka-chat/quokka-bot/src/quokka/components/assistant"
	"github.com/quokka-chat/quokka-bot/src/quokka/components/commands"
	"github.com/quokka-chat/quokka-bot/src/quokka/components/gradient"
	"github.com/quokka-chat/quokka-bot/src/quokka/components/permissions"
	"github.com/quokka-chat/quokka-bot/src/quokka/components/sanctions"
	"github.com/quokka-chat/quokka-bot/src/quokka/components/submissions"
	"github.com/quokka-chat/quokka-bot/src/quokka/components/welcome"
	"github.com/quokka-chat/quokka-bot/src/quokka/data"
	"github.com/quokka-chat/quokka-bot/src/shared/ai"
)

type Config struct {
	Token                 string
	GuildID               string
	SubmissionChannelID   string
	NotificationChannelID string
	ModeratorRoleIDs      []string
	AdminRoleID           string
	GradientRoleID        string
	GradientColors        []string
	GradientSteps         int
	Prefix                string
	MistralAPIKey         string
	Redis                 *redis.Client
}

type Bot struct {
	session   *discordgo.Session
	config    Config
	rdb       *redis.Client
	ledger    *sanctions.Ledger
	registry  *submissions.Registry
	perms     *permissions.Oracle
	planner   *gradient.Planner
	commands  *commands.Handler
	responder *assistant.Responder
	notifier  *welcome.Notifier
}

func New(config Config) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		session: dg,
		config:  config,
		rdb:     config.Redis,
	}
	b.initializeComponents()
	b.registerHandlers()

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	return b, nil
}

func (b *Bot) initializeComponents() {
	b.ledger = sanctions.NewLedger()
	b.perms = permissions.New(b.session, b.config.GuildID, b.config.ModeratorRoleIDs, b.config.AdminRoleID)
	b.registry = submissions.NewRegistry(b.session, b.perms)
	b.notifier = welcome.NewNotifier(b.config.GuildID, b.config.NotificationChannelID)

	colors, err := gradient.ParseColors(b.config.GradientColors)
	if err != nil {
		log.Printf("[GRADIENT] Couleurs invalides, dégradé désactivé: %v", err)
	} else {
		b.planner = gradient.NewPlanner(colors)
		b.planner.SetSteps(b.config.GradientSteps)
	}

	client := ai.NewClient(ai.FactoryConfig{
		Provider:   "mistral",
		MistralKey: b.config.MistralAPIKey,
	})
	b.responder = assistant.NewResponder(client)

	b.commands = commands.NewHandler(commands.Config{
		Ledger:              b.ledger,
		Sweeper:             sanctions.NewSweeper(b.session),
		Perms:               b.perms,
		Redis:               b.rdb,
		Prefix:              b.config.Prefix,
		SubmissionChannelID: b.config.SubmissionChannelID,
	})
}

func (b *Bot) registerHandlers() {
	b.session.AddHandler(b.handleReady)
	b.session.AddHandler(b.handleMessageCreate)
	b.session.AddHandler(b.handleReactionAdd)
	b.session.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
		b.notifier.HandleMemberAdd(s, m)
	})
	b.session.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
		b.notifier.HandleMemberRemove(s, m)
	})
}

func (b *Bot) Start() error {
	return b.session.Open()
}

func (b *Bot) Stop() {
	b.session.Close()
}

// Ledger exposes the sanction state to the read-only API.
func (b *Bot) Ledger() *sanctions.Ledger {
	return b.ledger
}

// Registry exposes pending submissions to the read-only API.
func (b *Bot) Registry() *submissions.Registry {
	return b.registry
}

func (b *Bot) handleReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("[OK] Bot connecté: %s", event.User.Username)
	log.Printf("[INFO] Serveur: %s", b.config.GuildID)
	log.Printf("[INFO] Canal notifications: %s", b.config.NotificationChannelID)
	log.Printf("[INFO] Canal soumission: %s", b.config.SubmissionChannelID)

	b.applyGradient(s)
}

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}
	if m.GuildID != "" && m.GuildID != b.config.GuildID {
		return
	}

	if b.ledger.IsBanned(m.Author.ID) {
		log.Printf("[BANNED] Message ignoré de %s", m.Author.Username)
		b.notify(s, m.ChannelID, "🚫 <@"+m.Author.ID+"> Tu es actuellement banni et tu ne peux pas envoyer de messages.")
		return
	}

	if b.ledger.IsMuted(m.Author.ID) {
		log.Printf("[MUTED] Message supprimé de %s", m.Author.Username)
		if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
			log.Printf("[ERREUR] Impossible de supprimer le message muted: %v", err)
		}
		b.notify(s, m.ChannelID, "🔇 <@"+m.Author.ID+"> Tu es actuellement mute. Ton message a été supprimé.")
		return
	}

	if b.config.SubmissionChannelID != "" && m.ChannelID == b.config.SubmissionChannelID {
		b.registry.Register(submissions.Submission{
			ID:         m.ID,
			AuthorID:   m.Author.ID,
			AuthorName: m.Author.Username,
			Content:    m.Content,
			ChannelID:  m.ChannelID,
		})
		return
	}

	if assistant.Mentioned(m, s.State.User.ID) {
		b.responder.HandleMention(s, m, s.State.User.ID)
		return
	}

	b.commands.HandleMessage(s, m)
}

func (b *Bot) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.UserID == s.State.User.ID {
		return
	}

	var outcome submissions.Outcome
	switch r.Emoji.Name {
	case submissions.EmojiApprove:
		outcome = submissions.Approve
	case submissions.EmojiReject:
		outcome = submissions.Reject
	default:
		return
	}

	actorName := r.UserID
	if member, err := s.GuildMember(b.config.GuildID, r.UserID); err == nil && member.User != nil {
		actorName = member.User.Username
	}

	err := b.registry.Resolve(r.MessageID, r.UserID, actorName, outcome)
	switch {
	case err == nil:
		action := "submission_approve"
		if outcome == submissions.Reject {
			action = "submission_reject"
		}
		if err := data.PublishModerationEvent(context.Background(), b.rdb, map[string]interface{}{
			"action":    action,
			"messageId": r.MessageID,
			"moderator": r.UserID,
		}); err != nil {
			log.Printf("[AUDIT] publish %s: %v", action, err)
		}
	case errors.Is(err, submissions.ErrUnauthorized):
		b.notify(s, b.config.SubmissionChannelID, "⚠️ Seuls les modérateurs peuvent approuver/refuser les soumissions.")
	case errors.Is(err, submissions.ErrNotPending):
		// Reaction on something we are not tracking.
	default:
		log.Printf("[ERREUR] Réaction: %v", err)
	}
}

func (b *Bot) applyGradient(s *discordgo.Session) {
	if b.planner == nil || b.config.GuildID == "" || b.config.GradientRoleID == "" {
		log.Printf("[GRADIENT] Configuration manquante.")
		return
	}

	roles, err := s.GuildRoles(b.config.GuildID)
	if err != nil {
		log.Printf("[GRADIENT] Impossible de récupérer les rôles: %v", err)
		return
	}
	snapshot := snapshotFrom(roles)

	me, err := s.GuildMember(b.config.GuildID, s.State.User.ID)
	if err != nil {
		log.Printf("[GRADIENT] Impossible de récupérer le rôle du bot: %v", err)
		return
	}
	topRank, err := gradient.TopRank(snapshot, me.Roles)
	if err != nil {
		log.Printf("[GRADIENT] Impossible de déterminer le rang du bot.")
		return
	}

	plan, err := b.planner.Plan(snapshot, b.config.GradientRoleID, topRank, nil)
	if err != nil {
		log.Printf("[GRADIENT] Dégradé annulé: %v", err)
		return
	}
	res := b.planner.Apply(s, b.config.GuildID, plan)
	log.Printf("[GRADIENT] Rôles mis à jour: %d (ignorés: %d)", res.Updated, res.Skipped)
}

// snapshotFrom ranks roles by hierarchy, top role first. The platform stores
// higher positions for greater authority; ranks invert that so rank 1 is the
// strongest role.
func snapshotFrom(roles []*discordgo.Role) []gradient.Role {
	sorted := make([]*discordgo.Role, len(roles))
	copy(sorted, roles)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Position != sorted[j].Position {
			return sorted[i].Position > sorted[j].Position
		}
		return sorted[i].ID < sorted[j].ID
	})

	snapshot := make([]gradient.Role, 0, len(sorted))
	for i, role := range sorted {
		snapshot = append(snapshot, gradient.Role{
			ID:    role.ID,
			Name:  role.Name,
			Rank:  i + 1,
			Color: role.Color,
		})
	}
	return snapshot
}

func (b *Bot) notify(s *discordgo.Session, channelID, content string) {
	if channelID == "" {
		return
	}
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		log.Printf("[ERREUR] Envoi notification: %v", err)
	}
}
