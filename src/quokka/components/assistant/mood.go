package assistant

import (
	"fmt"
	"math/rand"
	"strings"
)

// Mood flavors the bot's replies; the reply templates interpolate the mood
// id and its tone.
type Mood struct {
	ID   string
	Tone string
}

var moods = []Mood{
	{"joie", "chaleureux, lumineux, enthousiaste"},
	{"tristesse", "doux, réservé, compatissant"},
	{"colère", "tendu, direct, parfois sec"},
	{"peur", "prudent, hésitant, inquiet"},
	{"dégoût", "réservé, critique, distant"},
	{"surprise", "vif, curieux, réactif"},
	{"amour", "tendre, bienveillant, attentionné"},
	{"haine", "froid, dur, abrupt"},
	{"anxiété", "nerveux, inquiet, prudent"},
	{"stress", "pressé, tendu, concis"},
	{"sérénité", "calme, apaisé, posé"},
	{"apaisement", "doux, rassurant, calme"},
	{"frustration", "agacé, impatient, bref"},
	{"culpabilité", "hésitant, humble, réservé"},
	{"honte", "discret, gêné, bas"},
	{"fierté", "assuré, positif, droit"},
	{"jalousie", "piquant, sur la défensive"},
	{"envie", "curieux, un peu comparatif"},
	{"compassion", "doux, empathique, réconfortant"},
	{"empathie", "à l'écoute, compréhensif"},
	{"indifférence", "neutre, distant, minimal"},
	{"ennui", "plat, lent, peu expressif"},
	{"excitation", "énergique, vif, enthousiaste"},
	{"espoir", "positif, encourageant"},
	{"désespoir", "sombre, fataliste, lent"},
	{"nostalgie", "doux, rêveur, mélancolique"},
	{"mélancolie", "calme, sensible, réfléchi"},
	{"soulagement", "léger, rassuré, posé"},
	{"satisfaction", "content, serein, stable"},
	{"insatisfaction", "critique, contrarié"},
	{"admiration", "respectueux, enthousiaste"},
	{"mépris", "sec, distant, froid"},
	{"confiance", "assuré, stable, clair"},
	{"méfiance", "prudent, réservé"},
	{"insécurité", "hésitant, prudent, fragile"},
	{"assurance", "déterminé, posé, sûr"},
	{"panique", "pressé, désorganisé, inquiet"},
	{"euphorie", "très enthousiaste, rapide"},
	{"lassitude", "fatigué, lent, sobre"},
	{"fatigue émotionnelle", "épuisé, calme, court"},
	{"gratitude", "chaleureux, reconnaissant"},
	{"amertume", "froid, amer, pincé"},
	{"tendresse", "doux, attentionné"},
	{"attachement", "proche, rassurant"},
	{"détachement", "neutre, distant"},
	{"solitude", "calme, un peu triste"},
	{"plénitude", "paisible, serein"},
	{"vulnérabilité", "hésitant, sensible"},
	{"motivation", "énergique, déterminé"},
	{"démotivation", "terne, hésitant"},
	{"détermination", "ferme, direct, confiant"},
	{"résignation", "calme, fataliste"},
	{"confusion", "hésitant, flou"},
	{"clarté", "précis, net, direct"},
	{"curiosité", "curieux, ouvert, stimulant"},
	{"émerveillement", "étonné, enthousiaste"},
	{"irritation", "agacé, bref"},
	{"agacement", "impatient, sec"},
	{"rancune", "froid, dur"},
	{"pardon", "calme, apaisé"},
	{"affection", "chaleureux, proche"},
	{"rejet", "froid, distant"},
	{"anticipation", "attentif, impatient"},
	{"inquiétude", "prudent, inquiet"},
	{"sérénité intérieure", "paisible, centré"},
	{"extase", "très enthousiaste, exalté"},
	{"apathie", "neutre, peu expressif"},
	{"torpeur", "lent, lourd"},
	{"hypervigilance", "alerte, tendu"},
	{"timidité", "discret, réservé"},
	{"embarras", "gêné, hésitant"},
	{"contentement", "posé, satisfait"},
	{"bien-être", "doux, positif"},
	{"mal-être", "fragile, sombre"},
	{"enthousiasme", "énergique, positif"},
	{"retenue", "mesuré, prudent"},
	{"regret", "doux, introspectif"},
	{"remords", "hésitant, contrit"},
	{"exaltation", "élevé, dynamique"},
	{"tension", "tendu, court"},
	{"relâchement", "calme, détendu"},
}

var wellbeingTemplates = []string{
	"En ce moment je suis dans une humeur %s, avec un ton %s. Que veux-tu savoir ?",
	"Je me sens plutôt %s là, donc je réponds %s. Tu as besoin de quoi ?",
	"Je suis %s aujourd'hui, %s. Dis-moi ce que tu veux.",
}

var fallbackTemplates = []string{
	"Je suis %s en ce moment, donc je réponds %s. Je ne peux pas accéder à l'IA pour l'instant.",
	"Humeur %s (%s). Je ne peux pas utiliser l'IA maintenant, réessaie un peu plus tard.",
	"Là je suis %s, %s. L'IA est indisponible, désolé.",
}

var thinkingTemplates = []string{
	"Je réfléchis, humeur %s (%s).",
	"Je traite ta question avec une humeur %s, ton %s.",
	"Je cherche une réponse, humeur %s (%s).",
}

func PickMood() Mood {
	return moods[rand.Intn(len(moods))]
}

var wellbeingPhrases = []string{
	"ça va",
	"ca va",
	"comment tu vas",
	"comment vas-tu",
	"tu vas bien",
	"comment allez-vous",
}

// IsWellbeingQuestion reports whether text asks how the bot is doing.
func IsWellbeingQuestion(text string) bool {
	normalized := strings.ToLower(text)
	for _, phrase := range wellbeingPhrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}

func WellbeingResponse(m Mood) string {
	return fmt.Sprintf(wellbeingTemplates[rand.Intn(len(wellbeingTemplates))], m.ID, m.Tone)
}

func ThinkingResponse(m Mood) string {
	return fmt.Sprintf(thinkingTemplates[rand.Intn(len(thinkingTemplates))], m.ID, m.Tone)
}

func FallbackResponse(m Mood) string {
	return fmt.Sprintf(fallbackTemplates[rand.Intn(len(fallbackTemplates))], m.ID, m.Tone)
}
