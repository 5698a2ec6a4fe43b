package welcome

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

// recentWindow bounds how old an audit log entry may be and still explain a
// departure. Older entries belong to a previous removal of the same user.
const recentWindow = time.Minute

type Session interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	GuildAuditLog(guildID, userID, beforeID string, actionType, limit int, options ...discordgo.RequestOption) (*discordgo.GuildAuditLog, error)
}

// Notifier posts arrival and departure notices to the notification channel.
type Notifier struct {
	guildID   string
	channelID string
	now       func() time.Time
}

func NewNotifier(guildID, channelID string) *Notifier {
	return &Notifier{guildID: guildID, channelID: channelID, now: time.Now}
}

func (n *Notifier) HandleMemberAdd(s Session, m *discordgo.GuildMemberAdd) {
	if m.GuildID != n.guildID || n.channelID == "" {
		return
	}
	log.Printf("[BIENVENUE] Nouveau membre: %s", m.User.Username)

	message := fmt.Sprintf(
		"🎉 **Bienvenue <@%s>!**\n\n"+
			"On est ravis de t'accueillir sur notre serveur!\n"+
			"N'hésite pas à te présenter et à explorer les différents salons.\n\n"+
			"Si tu as des questions, n'hésite pas à demander! 😊",
		m.User.ID)
	if _, err := s.ChannelMessageSend(n.channelID, message); err != nil {
		log.Printf("[ERREUR] Bienvenue: %v", err)
	}
}

func (n *Notifier) HandleMemberRemove(s Session, m *discordgo.GuildMemberRemove) {
	if m.GuildID != n.guildID || n.channelID == "" {
		return
	}

	name := m.User.Username
	if name == "" {
		name = fmt.Sprintf("<@%s>", m.User.ID)
	}

	var title, details string
	switch n.removalCause(s, m.User.ID) {
	case discordgo.AuditLogActionMemberBanAdd:
		title = fmt.Sprintf("🔨 **%s** a été banni du serveur.", name)
		details = "Le membre a été banni par un modérateur."
	case discordgo.AuditLogActionMemberKick:
		title = fmt.Sprintf("👢 **%s** a été kick du serveur.", name)
		details = "Le membre a été retiré par un modérateur."
	default:
		title = fmt.Sprintf("👋 **%s** a quitté le serveur.", name)
		details = "Nous le remercions pour le temps passé avec nous et lui souhaitons le meilleur."
	}

	message := fmt.Sprintf("%s\n\n%s\n<@%s>", title, details, m.User.ID)
	if _, err := s.ChannelMessageSend(n.channelID, message); err != nil {
		log.Printf("[ERREUR] Départ: %v", err)
	}
}

// removalCause inspects the audit log to tell a ban or kick apart from a
// voluntary leave. Any lookup failure degrades to "left on their own".
func (n *Notifier) removalCause(s Session, userID string) discordgo.AuditLogAction {
	for _, action := range []discordgo.AuditLogAction{
		discordgo.AuditLogActionMemberBanAdd,
		discordgo.AuditLogActionMemberKick,
	} {
		entries, err := s.GuildAuditLog(n.guildID, userID, "", int(action), 5)
		if err != nil {
			log.Printf("[DEPART] audit log: %v", err)
			continue
		}
		for _, entry := range entries.AuditLogEntries {
			if entry.TargetID != userID {
				continue
			}
			issued, err := discordgo.SnowflakeTimestamp(entry.ID)
			if err != nil {
				continue
			}
			if n.now().Sub(issued) <= recentWindow {
				return action
			}
		}
	}
	return 0
}
