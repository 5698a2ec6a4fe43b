package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/quokka-chat/quokka-bot/src/shared/ai"
)

const systemPrompt = "Tu es QUOKKA, un assistant IA sur un serveur de discussion. " +
	"Tu aides les membres avec leurs questions, tu es poli et informatif. " +
	"Réponds de manière concise mais utile. Si tu ne sais pas quelque chose, " +
	"dis-le honnêtement. Tu tutoies toujours et tu restes naturel. " +
	"Tu es français mais peux répondre dans la langue de la question."

type Messenger interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Responder answers messages that mention the bot. The completion provider
// failing or being unconfigured degrades to a mood-flavored fallback, never
// to an error surfaced in the channel.
type Responder struct {
	client ai.Client
}

func NewResponder(client ai.Client) *Responder {
	return &Responder{client: client}
}

// Mentioned reports whether the bot is addressed by m.
func Mentioned(m *discordgo.MessageCreate, botID string) bool {
	for _, u := range m.Mentions {
		if u.ID == botID {
			return true
		}
	}
	content := strings.ToLower(m.Content)
	return strings.HasPrefix(content, fmt.Sprintf("<@%s>", botID)) ||
		strings.HasPrefix(content, fmt.Sprintf("<@!%s>", botID))
}

// HandleMention replies to a message that mentions the bot.
func (r *Responder) HandleMention(s Messenger, m *discordgo.MessageCreate, botID string) {
	question := m.Content
	question = strings.ReplaceAll(question, fmt.Sprintf("<@%s>", botID), "")
	question = strings.ReplaceAll(question, fmt.Sprintf("<@!%s>", botID), "")
	question = strings.TrimSpace(question)
	if question == "" {
		question = "Bonjour! Comment puis-je t'aider aujourd'hui?"
	}

	mood := PickMood()
	if _, err := s.ChannelMessageSend(m.ChannelID, "🤖 "+ThinkingResponse(mood)); err != nil {
		log.Printf("[AI] send thinking notice: %v", err)
	}

	if IsWellbeingQuestion(question) {
		r.reply(s, m, WellbeingResponse(mood))
		return
	}

	answer, err := r.client.Complete(context.Background(), question, ai.Options{SystemPrompt: systemPrompt})
	if err != nil {
		log.Printf("[AI] completion: %v", err)
		answer = FallbackResponse(mood)
	}
	r.reply(s, m, answer)
}

func (r *Responder) reply(s Messenger, m *discordgo.MessageCreate, text string) {
	if _, err := s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("<@%s> %s", m.Author.ID, text)); err != nil {
		log.Printf("[AI] send reply: %v", err)
	}
}
