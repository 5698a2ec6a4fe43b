package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quokka-chat/quokka-bot/src/quokka/components/gradient"
)

func TestSnapshotFromRanksTopRoleFirst(t *testing.T) {
	snapshot := snapshotFrom([]*discordgo.Role{
		{ID: "everyone", Name: "@everyone", Position: 0},
		{ID: "admin", Name: "Admin", Position: 3, Color: 0xff0000},
		{ID: "member", Name: "Membre", Position: 1},
		{ID: "mod", Name: "Modo", Position: 2},
	})

	require.Len(t, snapshot, 4)
	assert.Equal(t, gradient.Role{ID: "admin", Name: "Admin", Rank: 1, Color: 0xff0000}, snapshot[0])
	assert.Equal(t, "mod", snapshot[1].ID)
	assert.Equal(t, 2, snapshot[1].Rank)
	assert.Equal(t, "everyone", snapshot[3].ID)
	assert.Equal(t, 4, snapshot[3].Rank)
}

func TestSnapshotFromTieBreaksByID(t *testing.T) {
	snapshot := snapshotFrom([]*discordgo.Role{
		{ID: "b", Position: 1},
		{ID: "a", Position: 1},
	})

	require.Len(t, snapshot, 2)
	assert.Equal(t, "a", snapshot[0].ID)
	assert.Equal(t, "b", snapshot[1].ID)
}
