package welcome

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	sent     []string
	entries  map[discordgo.AuditLogAction][]*discordgo.AuditLogEntry
	auditErr error
}

func (f *fakeSession) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sent = append(f.sent, content)
	return &discordgo.Message{}, nil
}

func (f *fakeSession) GuildAuditLog(guildID, userID, beforeID string, actionType, limit int, options ...discordgo.RequestOption) (*discordgo.GuildAuditLog, error) {
	if f.auditErr != nil {
		return nil, f.auditErr
	}
	return &discordgo.GuildAuditLog{
		AuditLogEntries: f.entries[discordgo.AuditLogAction(actionType)],
	}, nil
}

// snowflakeAt builds a message ID whose embedded timestamp is t.
func snowflakeAt(t time.Time) string {
	ms := t.UnixMilli() - 1420070400000
	return strconv.FormatInt(ms<<22, 10)
}

func auditEntry(targetID string, at time.Time, action discordgo.AuditLogAction) *discordgo.AuditLogEntry {
	return &discordgo.AuditLogEntry{
		ID:         snowflakeAt(at),
		TargetID:   targetID,
		ActionType: &action,
	}
}

func memberAdd(guildID, userID, name string) *discordgo.GuildMemberAdd {
	return &discordgo.GuildMemberAdd{Member: &discordgo.Member{
		GuildID: guildID,
		User:    &discordgo.User{ID: userID, Username: name},
	}}
}

func memberRemove(guildID, userID, name string) *discordgo.GuildMemberRemove {
	return &discordgo.GuildMemberRemove{Member: &discordgo.Member{
		GuildID: guildID,
		User:    &discordgo.User{ID: userID, Username: name},
	}}
}

func TestHandleMemberAdd(t *testing.T) {
	session := &fakeSession{}
	n := NewNotifier("guild", "notif")

	n.HandleMemberAdd(session, memberAdd("guild", "u1", "alice"))

	require.Len(t, session.sent, 1)
	assert.Contains(t, session.sent[0], "Bienvenue <@u1>")
}

func TestHandleMemberAddIgnoresOtherGuilds(t *testing.T) {
	session := &fakeSession{}
	n := NewNotifier("guild", "notif")

	n.HandleMemberAdd(session, memberAdd("elsewhere", "u1", "alice"))
	assert.Empty(t, session.sent)
}

func TestHandleMemberRemoveVoluntary(t *testing.T) {
	session := &fakeSession{}
	n := NewNotifier("guild", "notif")

	n.HandleMemberRemove(session, memberRemove("guild", "u1", "alice"))

	require.Len(t, session.sent, 1)
	assert.Contains(t, session.sent[0], "a quitté le serveur")
	assert.Contains(t, session.sent[0], "<@u1>")
}

func TestHandleMemberRemoveBanned(t *testing.T) {
	now := time.Now()
	session := &fakeSession{entries: map[discordgo.AuditLogAction][]*discordgo.AuditLogEntry{
		discordgo.AuditLogActionMemberBanAdd: {
			auditEntry("u1", now.Add(-2*time.Second), discordgo.AuditLogActionMemberBanAdd),
		},
	}}
	n := NewNotifier("guild", "notif")

	n.HandleMemberRemove(session, memberRemove("guild", "u1", "alice"))

	require.Len(t, session.sent, 1)
	assert.Contains(t, session.sent[0], "a été banni du serveur")
}

func TestHandleMemberRemoveKicked(t *testing.T) {
	now := time.Now()
	session := &fakeSession{entries: map[discordgo.AuditLogAction][]*discordgo.AuditLogEntry{
		discordgo.AuditLogActionMemberKick: {
			auditEntry("u1", now.Add(-2*time.Second), discordgo.AuditLogActionMemberKick),
		},
	}}
	n := NewNotifier("guild", "notif")

	n.HandleMemberRemove(session, memberRemove("guild", "u1", "alice"))

	require.Len(t, session.sent, 1)
	assert.Contains(t, session.sent[0], "a été kick du serveur")
}

func TestStaleAuditEntryReadsAsVoluntary(t *testing.T) {
	session := &fakeSession{entries: map[discordgo.AuditLogAction][]*discordgo.AuditLogEntry{
		discordgo.AuditLogActionMemberBanAdd: {
			auditEntry("u1", time.Now().Add(-time.Hour), discordgo.AuditLogActionMemberBanAdd),
		},
	}}
	n := NewNotifier("guild", "notif")

	n.HandleMemberRemove(session, memberRemove("guild", "u1", "alice"))

	require.Len(t, session.sent, 1)
	assert.Contains(t, session.sent[0], "a quitté le serveur")
}

func TestAuditFailureReadsAsVoluntary(t *testing.T) {
	session := &fakeSession{auditErr: errors.New("forbidden")}
	n := NewNotifier("guild", "notif")

	n.HandleMemberRemove(session, memberRemove("guild", "u1", "alice"))

	require.Len(t, session.sent, 1)
	assert.Contains(t, session.sent[0], "a quitté le serveur")
}
