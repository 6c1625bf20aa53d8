package menubar

import (
	"fmt"

	"github.com/aayushbajaj/attend/pkg/stats"
)

// FormatTitle renders the menu bar title for a streak.
func FormatTitle(streak stats.Result, showLongest bool) string {
	if showLongest {
		return fmt.Sprintf("🔥 %d/%d", streak.Current, streak.Longest)
	}
	return fmt.Sprintf("🔥 %d", streak.Current)
}
