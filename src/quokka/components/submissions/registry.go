package submissions

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/microcosm-cc/bluemonday"
)

const (
	EmojiApprove = "✅"
	EmojiReject  = "❌"

	reactDelay = 500 * time.Millisecond
)

var (
	ErrNotPending   = errors.New("submission is not pending")
	ErrUnauthorized = errors.New("not authorized to resolve submissions")
)

type Outcome int

const (
	Approve Outcome = iota
	Reject
)

// Submission is a message awaiting moderator review, keyed by its message id.
type Submission struct {
	ID         string
	AuthorID   string
	AuthorName string
	Content    string
	ChannelID  string
}

type Messenger interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
}

type Moderators interface {
	HasModerator(userID string) bool
}

// Registry tracks pending submissions. Handlers interleave at every network
// call, so removal from the pending map is the one authoritative commit:
// whichever resolution attempt deletes the entry wins, every other attempt
// observes ErrNotPending.
type Registry struct {
	mu      sync.Mutex
	pending map[string]Submission

	session    Messenger
	mods       Moderators
	sanitizer  *bluemonday.Policy
	reactDelay time.Duration
}

func NewRegistry(session Messenger, mods Moderators) *Registry {
	return &Registry{
		pending:    make(map[string]Submission),
		session:    session,
		mods:       mods,
		sanitizer:  bluemonday.StrictPolicy(),
		reactDelay: reactDelay,
	}
}

// Register stores sub as pending, then attaches the approve and reject
// reactions and a receipt message. The side effects are best-effort: a
// failed reaction attach leaves the submission pending for manual review.
func (r *Registry) Register(sub Submission) {
	r.mu.Lock()
	r.pending[sub.ID] = sub
	total := len(r.pending)
	r.mu.Unlock()

	log.Printf("[SUBMISSION] %s by %s stored, %d pending", sub.ID, sub.AuthorName, total)

	if err := r.session.MessageReactionAdd(sub.ChannelID, sub.ID, EmojiApprove); err != nil {
		log.Printf("[SUBMISSION] attach %s to %s: %v", EmojiApprove, sub.ID, err)
	}
	time.Sleep(r.reactDelay)
	if err := r.session.MessageReactionAdd(sub.ChannelID, sub.ID, EmojiReject); err != nil {
		log.Printf("[SUBMISSION] attach %s to %s: %v", EmojiReject, sub.ID, err)
	}

	receipt := fmt.Sprintf("📋 <@%s> Ta soumission a été reçue!\nElle sera examinée par un modérateur. Merci pour ta patience! ⏳", sub.AuthorID)
	if _, err := r.session.ChannelMessageSend(sub.ChannelID, receipt); err != nil {
		log.Printf("[SUBMISSION] send receipt for %s: %v", sub.ID, err)
	}
}

// Resolve transitions the submission to its terminal outcome. The actor
// must hold moderator capability; the capability check happens before the
// commit and an unauthorized attempt leaves the entry pending.
func (r *Registry) Resolve(id, actorID, actorName string, outcome Outcome) error {
	r.mu.Lock()
	_, ok := r.pending[id]
	r.mu.Unlock()
	if !ok {
		return ErrNotPending
	}

	// Advisory only: the capability lookup suspends, so the entry may be
	// resolved by a concurrent attempt before we commit below.
	if !r.mods.HasModerator(actorID) {
		return ErrUnauthorized
	}

	r.mu.Lock()
	sub, ok := r.pending[id]
	if ok {
		delete(r.pending, id)
	}
	r.mu.Unlock()
	if !ok {
		return ErrNotPending
	}

	switch outcome {
	case Approve:
		r.announceApproval(sub, actorID)
	case Reject:
		r.announceRejection(sub, actorID)
	}

	if err := r.session.ChannelMessageDelete(sub.ChannelID, sub.ID); err != nil {
		log.Printf("[SUBMISSION] delete original %s: %v", sub.ID, err)
	}

	log.Printf("[SUBMISSION] %s resolved by %s", id, actorName)
	return nil
}

// Pending returns a snapshot of the pending submissions.
func (r *Registry) Pending() []Submission {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Submission, 0, len(r.pending))
	for _, sub := range r.pending {
		out = append(out, sub)
	}
	return out
}

func (r *Registry) announceApproval(sub Submission, actorID string) {
	msg := fmt.Sprintf("✅ **SERVEUR APPROUVÉ**\n\n%s\n\n*Soumis par:* <@%s>\n*Approuvé par:* <@%s>",
		r.sanitizer.Sanitize(sub.Content), sub.AuthorID, actorID)
	if _, err := r.session.ChannelMessageSend(sub.ChannelID, msg); err != nil {
		log.Printf("[SUBMISSION] announce approval of %s: %v", sub.ID, err)
	}
}

func (r *Registry) announceRejection(sub Submission, actorID string) {
	msg := fmt.Sprintf("❌ **SOUMISSION REFUSÉE**\n\n*Soumis par:* <@%s>\n*Refusé par:* <@%s>",
		sub.AuthorID, actorID)
	if _, err := r.session.ChannelMessageSend(sub.ChannelID, msg); err != nil {
		log.Printf("[SUBMISSION] announce rejection of %s: %v", sub.ID, err)
	}
}
