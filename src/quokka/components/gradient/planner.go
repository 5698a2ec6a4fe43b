package gradient

import (
	"errors"
	"log"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// DefaultSteps bounds how many roles a single gradient run may recolor.
const DefaultSteps = 8

var (
	ErrRoleNotFound             = errors.New("gradient anchor role not found")
	ErrInsufficientAuthority    = errors.New("anchor role is not below the acting principal")
	ErrCannotDetermineAuthority = errors.New("cannot determine acting principal's rank")
)

// Role is one entry of a role hierarchy snapshot. A smaller Rank denotes
// greater authority.
type Role struct {
	ID    string
	Name  string
	Rank  int
	Color int
}

// Step is a single planned color edit.
type Step struct {
	Role  Role
	Color int
}

// Plan is an ordered set of color edits plus the roles skipped while
// planning because they sat at or above the acting principal's rank.
type Plan struct {
	Steps   []Step
	Skipped int
}

// Result reports a finished gradient run. Partial success is by design:
// per-role skips and edit failures never abort the batch.
type Result struct {
	Updated int
	Skipped int
}

type RoleEditor interface {
	GuildRoleEdit(guildID, roleID string, data *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error)
}

// Planner computes rank-bounded gradient assignments over a role snapshot.
type Planner struct {
	colors []int
	steps  int
}

func NewPlanner(colors []int) *Planner {
	return &Planner{colors: colors, steps: DefaultSteps}
}

// SetSteps overrides the walk length. Non-positive values keep the default.
func (p *Planner) SetSteps(n int) {
	if n > 0 {
		p.steps = n
	}
}

// TopRank returns the strongest (numerically smallest) rank among the roles
// in snapshot held by heldIDs. The whole gradient run aborts when the rank
// is indeterminate; a principal of unknown authority must not recolor
// anything.
func TopRank(snapshot []Role, heldIDs []string) (int, error) {
	held := make(map[string]bool, len(heldIDs))
	for _, id := range heldIDs {
		held[id] = true
	}

	top, found := 0, false
	for _, role := range snapshot {
		if !held[role.ID] {
			continue
		}
		if !found || role.Rank < top {
			top = role.Rank
			found = true
		}
	}
	if !found {
		return 0, ErrCannotDetermineAuthority
	}
	return top, nil
}

// Plan walks the snapshot from anchorID for up to min(len(colors), steps)
// roles in ascending rank order, assigning one color per step. Roles ranked
// at or above actorTopRank are skipped, never edited. When the anchor is
// missing from the snapshot, lookup (if non-nil) may resolve it as a
// standalone role that receives only the first color.
func (p *Planner) Plan(snapshot []Role, anchorID string, actorTopRank int, lookup func(roleID string) (Role, bool)) (Plan, error) {
	if len(p.colors) == 0 {
		return Plan{}, ErrRoleNotFound
	}

	sorted := make([]Role, len(snapshot))
	copy(sorted, snapshot)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rank != sorted[j].Rank {
			return sorted[i].Rank < sorted[j].Rank
		}
		return sorted[i].ID < sorted[j].ID
	})

	start := -1
	for i, role := range sorted {
		if role.ID == anchorID {
			start = i
			break
		}
	}

	if start == -1 {
		if lookup == nil {
			return Plan{}, ErrRoleNotFound
		}
		role, ok := lookup(anchorID)
		if !ok {
			return Plan{}, ErrRoleNotFound
		}
		if role.Rank <= actorTopRank {
			return Plan{}, ErrInsufficientAuthority
		}
		return Plan{Steps: []Step{{Role: role, Color: p.colors[0]}}}, nil
	}

	// The principal may not begin a gradient at or above its own level.
	if sorted[start].Rank <= actorTopRank {
		return Plan{}, ErrInsufficientAuthority
	}

	colors := p.colors
	if len(colors) > p.steps {
		colors = colors[:p.steps]
	}

	var plan Plan
	for offset, color := range colors {
		idx := start + offset
		if idx >= len(sorted) {
			break
		}
		role := sorted[idx]
		if role.Rank <= actorTopRank {
			plan.Skipped++
			continue
		}
		plan.Steps = append(plan.Steps, Step{Role: role, Color: color})
	}
	return plan, nil
}

// Apply executes the planned edits against editor. Individual failures are
// logged and counted as skipped; the batch always runs to completion.
func (p *Planner) Apply(editor RoleEditor, guildID string, plan Plan) Result {
	res := Result{Skipped: plan.Skipped}
	for _, step := range plan.Steps {
		color := step.Color
		if _, err := editor.GuildRoleEdit(guildID, step.Role.ID, &discordgo.RoleParams{Color: &color}); err != nil {
			log.Printf("[GRADIENT] edit role %s (%s): %v", step.Role.Name, step.Role.ID, err)
			res.Skipped++
			continue
		}
		res.Updated++
	}
	return res
}
