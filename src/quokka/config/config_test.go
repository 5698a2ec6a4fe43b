package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "!", cfg.Prefix)
	assert.Equal(t, 8, cfg.GradientSteps)
	assert.Len(t, cfg.GradientColors, 10)
}

func TestNotificationChannelFallback(t *testing.T) {
	t.Setenv("WELCOME_CHANNEL_ID", "welcome")
	assert.Equal(t, "welcome", Load().NotificationChannelID)

	t.Setenv("NOTIFICATION_CHANNEL_ID", "notif")
	assert.Equal(t, "notif", Load().NotificationChannelID)
}

func TestGradientRoleFallsBackToModeratorRole(t *testing.T) {
	t.Setenv("MODERATOR_ROLE_1", "mod1")
	t.Setenv("MODERATOR_ROLE_2", "mod2")

	cfg := Load()
	assert.Equal(t, []string{"mod1", "mod2"}, cfg.ModeratorRoleIDs)
	assert.Equal(t, "mod1", cfg.GradientRoleID)

	t.Setenv("GRADIENT_ROLE_ID", "grad")
	assert.Equal(t, "grad", Load().GradientRoleID)
}

func TestGradientColorsParsing(t *testing.T) {
	t.Setenv("GRADIENT_COLORS", "#ff0000, #00ff00 ,#0000ff")
	assert.Equal(t, []string{"#ff0000", "#00ff00", "#0000ff"}, Load().GradientColors)

	t.Setenv("GRADIENT_STEPS", "abc")
	assert.Equal(t, 8, Load().GradientSteps)
}
