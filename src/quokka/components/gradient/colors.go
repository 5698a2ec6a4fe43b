package gradient

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseColors converts "#rrggbb" strings to the integer form the platform
// stores role colors in. Any malformed entry fails the whole list so a typo
// cannot silently shorten the ramp.
func ParseColors(hexes []string) ([]int, error) {
	colors := make([]int, 0, len(hexes))
	for _, h := range hexes {
		trimmed := strings.TrimPrefix(strings.TrimSpace(h), "#")
		if len(trimmed) != 6 {
			return nil, fmt.Errorf("invalid color %q", h)
		}
		v, err := strconv.ParseInt(trimmed, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q: %w", h, err)
		}
		colors = append(colors, int(v))
	}
	return colors, nil
}
