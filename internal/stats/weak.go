package stats

import (
	"sort"

	"github.com/verte-zerg/shelltutor/internal/model"
)

// SortByWeakness orders commands by ascending success rate.
func SortByWeakness(commands []model.CommandStat) []model.CommandStat {
	out := make([]model.CommandStat, 0, len(commands))
	for _, c := range commands {
		if c.Attempts > 0 {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ri := out[i].SuccessRate()
		rj := out[j].SuccessRate()
		if ri == rj {
			return out[i].Key < out[j].Key
		}
		return ri < rj
	})
	return out
}

// WeakestCommands returns the top lowest-success commands.
func WeakestCommands(commands []model.CommandStat, top int) []model.CommandStat {
	sorted := SortByWeakness(commands)
	if top <= 0 || top > len(sorted) {
		top = len(sorted)
	}
	return sorted[:top]
}

// SelectWeakCommands returns the command names of the top weakest entries of
// dialect d.
func SelectWeakCommands(commands []model.CommandStat, d model.Dialect, top int) map[string]struct{} {
	weakSet := map[string]struct{}{}
	var own []model.CommandStat
	for _, c := range commands {
		if c.Dialect == d.String() {
			own = append(own, c)
		}
	}
	for _, c := range WeakestCommands(own, top) {
		if c.SuccessRate() < 1 {
			weakSet[c.Command] = struct{}{}
		}
	}
	return weakSet
}
