package stats

import (
	"sort"

	"github.com/verte-zerg/shelltutor/internal/model"
)

// TopCommands returns the n most practiced commands.
func TopCommands(commands []model.CommandStat, n int) []model.CommandStat {
	if n <= 0 || len(commands) == 0 {
		return nil
	}
	items := make([]model.CommandStat, len(commands))
	copy(items, commands)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Attempts == items[j].Attempts {
			return items[i].Key < items[j].Key
		}
		return items[i].Attempts > items[j].Attempts
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
