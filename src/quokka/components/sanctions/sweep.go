package sanctions

import (
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	defaultSweepLimit = 50
	defaultSweepDelay = 100 * time.Millisecond
)

type MessageSource interface {
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// Sweeper deletes recent messages best-effort, pacing deletions to stay
// under the platform's rate limits. It never returns an error; failures are
// logged and the sweep moves on.
type Sweeper struct {
	session MessageSource
	limit   int
	delay   time.Duration
}

func NewSweeper(session MessageSource) *Sweeper {
	return &Sweeper{
		session: session,
		limit:   defaultSweepLimit,
		delay:   defaultSweepDelay,
	}
}

// SweepUser deletes up to the sweep limit of userID's most recent messages
// in channelID and returns the number actually deleted.
func (sw *Sweeper) SweepUser(channelID, userID string) int {
	msgs, err := sw.session.ChannelMessages(channelID, sw.limit, "", "", "")
	if err != nil {
		log.Printf("[SWEEP] fetch messages in %s: %v", channelID, err)
		return 0
	}

	deleted := 0
	for _, msg := range msgs {
		if msg.Author == nil || msg.Author.ID != userID {
			continue
		}
		if err := sw.session.ChannelMessageDelete(channelID, msg.ID); err != nil {
			log.Printf("[SWEEP] delete message %s: %v", msg.ID, err)
			continue
		}
		deleted++
		time.Sleep(sw.delay)
	}
	return deleted
}

// SweepChannel deletes up to count recent messages in channelID regardless
// of author. Used by the clear command.
func (sw *Sweeper) SweepChannel(channelID string, count int) int {
	// ChannelMessages fetches at most 100 per call.
	if count > 100 {
		count = 100
	}
	msgs, err := sw.session.ChannelMessages(channelID, count, "", "", "")
	if err != nil {
		log.Printf("[SWEEP] fetch messages in %s: %v", channelID, err)
		return 0
	}

	deleted := 0
	for _, msg := range msgs {
		if err := sw.session.ChannelMessageDelete(channelID, msg.ID); err != nil {
			log.Printf("[SWEEP] delete message %s: %v", msg.ID, err)
			continue
		}
		deleted++
		time.Sleep(sw.delay)
	}
	return deleted
}
