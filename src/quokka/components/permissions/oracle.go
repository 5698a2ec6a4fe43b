package permissions

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

type GuildSource interface {
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
}

// Oracle answers capability questions from a role-membership snapshot.
// Every lookup failure reads as "no capability"; the platform being
// unreachable must never grant anything.
type Oracle struct {
	source      GuildSource
	guildID     string
	modRoleIDs  []string
	adminRoleID string
}

func New(source GuildSource, guildID string, modRoleIDs []string, adminRoleID string) *Oracle {
	return &Oracle{
		source:      source,
		guildID:     guildID,
		modRoleIDs:  modRoleIDs,
		adminRoleID: adminRoleID,
	}
}

// HasModerator reports whether userID holds one of the configured moderator
// roles.
func (o *Oracle) HasModerator(userID string) bool {
	member, err := o.source.GuildMember(o.guildID, userID)
	if err != nil {
		log.Printf("[PERMS] fetch member %s: %v", userID, err)
		return false
	}
	return o.memberIsModerator(member)
}

// HasAdmin reports whether userID is the guild owner, holds the
// administrator permission through any of its roles, holds the configured
// admin role, or failing all that, qualifies as a moderator.
func (o *Oracle) HasAdmin(userID string) bool {
	member, err := o.source.GuildMember(o.guildID, userID)
	if err != nil {
		log.Printf("[PERMS] fetch member %s: %v", userID, err)
		return false
	}

	if guild, err := o.source.Guild(o.guildID); err == nil && guild.OwnerID == userID {
		return true
	}

	if roles, err := o.source.GuildRoles(o.guildID); err == nil {
		byID := make(map[string]*discordgo.Role, len(roles))
		for _, r := range roles {
			byID[r.ID] = r
		}
		for _, id := range member.Roles {
			if r, ok := byID[id]; ok && r.Permissions&discordgo.PermissionAdministrator != 0 {
				return true
			}
		}
	}

	if o.adminRoleID != "" {
		for _, id := range member.Roles {
			if id == o.adminRoleID {
				return true
			}
		}
	}

	return o.memberIsModerator(member)
}

func (o *Oracle) memberIsModerator(member *discordgo.Member) bool {
	for _, held := range member.Roles {
		for _, want := range o.modRoleIDs {
			if held == want {
				return true
			}
		}
	}
	return false
}
