// Package generator picks practice exercises for the console.
package generator

import (
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/shelltutor/internal/course"
)

// Generator produces randomized exercise sequences.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick selects count exercises uniformly. Exercises may repeat.
func (g *Generator) Pick(exercises []course.Exercise, count int) []course.Exercise {
	if len(exercises) == 0 || count <= 0 {
		return nil
	}
	result := make([]course.Exercise, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, exercises[g.rnd.Intn(len(exercises))])
	}
	return result
}

// PickWeighted selects exercises with a bias toward commands in weakSet.
// An exercise whose command is weak weighs 1+factor, others weigh 1.
func (g *Generator) PickWeighted(exercises []course.Exercise, count int, weakSet map[string]struct{}, factor float64) []course.Exercise {
	if len(exercises) == 0 || count <= 0 {
		return nil
	}
	if factor < 0 {
		factor = 0
	}
	weights := make([]float64, len(exercises))
	total := 0.0
	for i, ex := range exercises {
		w := 1.0
		if _, ok := weakSet[strings.ToLower(ex.Command)]; ok {
			w += factor
		}
		weights[i] = w
		total += w
	}

	result := make([]course.Exercise, 0, count)
	for i := 0; i < count; i++ {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := len(weights) - 1
		for j, w := range weights {
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		result = append(result, exercises[idx])
	}
	return result
}

// Shuffle returns a permuted copy of exercises.
func (g *Generator) Shuffle(exercises []course.Exercise) []course.Exercise {
	out := make([]course.Exercise, len(exercises))
	copy(out, exercises)
	g.rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
