package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// defaultGradientColors is the red-to-pink ramp painted over the role
// hierarchy when GRADIENT_COLORS is not set.
var defaultGradientColors = []string{
	"#c00000",
	"#c70714",
	"#ce0f28",
	"#d5163c",
	"#dc1d50",
	"#e32563",
	"#ea2c77",
	"#f1338b",
	"#f83b9f",
	"#ff42b3",
}

type Config struct {
	Token   string
	GuildID string

	WelcomeChannelID      string
	LeaveChannelID        string
	SubmissionChannelID   string
	NotificationChannelID string

	ModeratorRoleIDs []string
	AdminRoleID      string

	GradientRoleID string
	GradientColors []string
	GradientSteps  int

	MistralAPIKey string
	Prefix        string

	RedisURL  string
	APIBind   string
	JWTSecret string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	welcomeChannel := os.Getenv("WELCOME_CHANNEL_ID")
	leaveChannel := os.Getenv("LEAVE_CHANNEL_ID")

	// The notification channel falls back to whichever arrival/departure
	// channel is configured.
	notificationChannel := os.Getenv("NOTIFICATION_CHANNEL_ID")
	if notificationChannel == "" {
		notificationChannel = welcomeChannel
	}
	if notificationChannel == "" {
		notificationChannel = leaveChannel
	}

	var moderatorRoles []string
	for _, key := range []string{"MODERATOR_ROLE_1", "MODERATOR_ROLE_2"} {
		if v := os.Getenv(key); v != "" {
			moderatorRoles = append(moderatorRoles, v)
		}
	}

	gradientRole := os.Getenv("GRADIENT_ROLE_ID")
	if gradientRole == "" && len(moderatorRoles) > 0 {
		gradientRole = moderatorRoles[0]
	}

	gradientColors := defaultGradientColors
	if raw := os.Getenv("GRADIENT_COLORS"); raw != "" {
		gradientColors = splitList(raw)
	}

	gradientSteps, err := strconv.Atoi(getenv("GRADIENT_STEPS", "8"))
	if err != nil || gradientSteps <= 0 {
		log.Printf("[CONFIG] GRADIENT_STEPS invalide, utilisation de 8")
		gradientSteps = 8
	}

	return Config{
		Token:                 os.Getenv("BOT_TOKEN"),
		GuildID:               os.Getenv("SERVER_ID"),
		WelcomeChannelID:      welcomeChannel,
		LeaveChannelID:        leaveChannel,
		SubmissionChannelID:   os.Getenv("SUBMISSION_CHANNEL_ID"),
		NotificationChannelID: notificationChannel,
		ModeratorRoleIDs:      moderatorRoles,
		AdminRoleID:           os.Getenv("ADMIN_ROLE_ID"),
		GradientRoleID:        gradientRole,
		GradientColors:        gradientColors,
		GradientSteps:         gradientSteps,
		MistralAPIKey:         os.Getenv("MISTRAL_API_KEY"),
		Prefix:                getenv("COMMAND_PREFIX", "!"),
		RedisURL:              os.Getenv("REDIS_URL"),
		APIBind:               os.Getenv("API_BIND"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
