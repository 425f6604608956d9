package course

// Grade is the outcome of answering a quiz.
type Grade struct {
	Correct int
	Total   int
}

// Percentage returns the share of correct answers, 0 for an empty quiz.
func (g Grade) Percentage() float64 {
	if g.Total == 0 {
		return 0
	}
	return 100 * float64(g.Correct) / float64(g.Total)
}

// Passed reports whether the grade reaches PassPercentage.
func (g Grade) Passed() bool {
	return g.Total > 0 && g.Percentage() >= PassPercentage
}

// GradeQuiz counts answers equal to the expected option. answers is keyed by
// question index; unanswered questions count as wrong.
func GradeQuiz(questions []Question, answers map[int]string) Grade {
	g := Grade{Total: len(questions)}
	for i, q := range questions {
		if a, ok := answers[i]; ok && a == q.Answer {
			g.Correct++
		}
	}
	return g
}
