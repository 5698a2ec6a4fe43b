package gradient

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoleEditor struct {
	edited  map[string]int
	failIDs map[string]bool
}

func newFakeRoleEditor() *fakeRoleEditor {
	return &fakeRoleEditor{edited: make(map[string]int), failIDs: make(map[string]bool)}
}

func (f *fakeRoleEditor) GuildRoleEdit(guildID, roleID string, data *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error) {
	if f.failIDs[roleID] {
		return nil, errors.New("missing permissions")
	}
	f.edited[roleID] = *data.Color
	return &discordgo.Role{ID: roleID}, nil
}

func snapshot() []Role {
	return []Role{
		{ID: "r3", Name: "low", Rank: 4},
		{ID: "r0", Name: "bot", Rank: 1},
		{ID: "r2", Name: "mid", Rank: 3},
		{ID: "r1", Name: "anchor", Rank: 2},
	}
}

func TestPlanWalksFromAnchor(t *testing.T) {
	p := NewPlanner([]int{0xc00000, 0xff42b3})

	plan, err := p.Plan(snapshot(), "r1", 1, nil)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, 0, plan.Skipped)
	assert.Equal(t, "r1", plan.Steps[0].Role.ID)
	assert.Equal(t, 0xc00000, plan.Steps[0].Color)
	assert.Equal(t, "r2", plan.Steps[1].Role.ID)
	assert.Equal(t, 0xff42b3, plan.Steps[1].Color)

	editor := newFakeRoleEditor()
	res := p.Apply(editor, "guild", plan)
	assert.Equal(t, Result{Updated: 2, Skipped: 0}, res)
	assert.NotContains(t, editor.edited, "r0")
}

func TestPlanAnchorAtActorRankAborts(t *testing.T) {
	p := NewPlanner([]int{1, 2})

	_, err := p.Plan(snapshot(), "r1", 2, nil)
	assert.ErrorIs(t, err, ErrInsufficientAuthority)

	_, err = p.Plan(snapshot(), "r0", 2, nil)
	assert.ErrorIs(t, err, ErrInsufficientAuthority)
}

func TestPlanStopsAtEndOfHierarchy(t *testing.T) {
	p := NewPlanner([]int{1, 2, 3, 4, 5})

	plan, err := p.Plan(snapshot(), "r2", 1, nil)
	require.NoError(t, err)
	// Only r2 and r3 remain past the anchor; running out of roles is not an
	// error.
	assert.Len(t, plan.Steps, 2)
	assert.Equal(t, 0, plan.Skipped)
}

func TestPlanCapsAtGradientSteps(t *testing.T) {
	var roles []Role
	colors := make([]int, 12)
	for i := 0; i < 12; i++ {
		roles = append(roles, Role{ID: string(rune('a' + i)), Rank: i + 2})
		colors[i] = i
	}

	p := NewPlanner(colors)
	plan, err := p.Plan(roles, "a", 1, nil)
	require.NoError(t, err)
	assert.Len(t, plan.Steps, DefaultSteps)
}

func TestPlanTieBreaksByID(t *testing.T) {
	roles := []Role{
		{ID: "b", Rank: 5},
		{ID: "a", Rank: 5},
		{ID: "c", Rank: 6},
	}
	p := NewPlanner([]int{1, 2, 3})

	plan, err := p.Plan(roles, "a", 4, nil)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 3)
	assert.Equal(t, "a", plan.Steps[0].Role.ID)
	assert.Equal(t, "b", plan.Steps[1].Role.ID)
	assert.Equal(t, "c", plan.Steps[2].Role.ID)
}

func TestPlanStandaloneAnchorLookup(t *testing.T) {
	p := NewPlanner([]int{7, 8, 9})

	lookup := func(roleID string) (Role, bool) {
		if roleID == "solo" {
			return Role{ID: "solo", Rank: 9}, true
		}
		return Role{}, false
	}

	plan, err := p.Plan(snapshot(), "solo", 1, lookup)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, 7, plan.Steps[0].Color)

	// Standalone anchors still honor the authority guard.
	_, err = p.Plan(snapshot(), "solo", 9, lookup)
	assert.ErrorIs(t, err, ErrInsufficientAuthority)
}

func TestPlanUnresolvableAnchor(t *testing.T) {
	p := NewPlanner([]int{1})

	_, err := p.Plan(snapshot(), "ghost", 1, nil)
	assert.ErrorIs(t, err, ErrRoleNotFound)

	_, err = p.Plan(snapshot(), "ghost", 1, func(string) (Role, bool) { return Role{}, false })
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestApplyCountsEditFailuresAsSkipped(t *testing.T) {
	p := NewPlanner([]int{1, 2})
	plan, err := p.Plan(snapshot(), "r1", 1, nil)
	require.NoError(t, err)

	editor := newFakeRoleEditor()
	editor.failIDs["r2"] = true
	res := p.Apply(editor, "guild", plan)
	assert.Equal(t, Result{Updated: 1, Skipped: 1}, res)
}

func TestTopRank(t *testing.T) {
	roles := snapshot()

	rank, err := TopRank(roles, []string{"r2", "r0"})
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	_, err = TopRank(roles, nil)
	assert.ErrorIs(t, err, ErrCannotDetermineAuthority)

	_, err = TopRank(roles, []string{"unknown"})
	assert.ErrorIs(t, err, ErrCannotDetermineAuthority)
}
