package course

import "testing"

func TestGradeQuiz(t *testing.T) {
	questions := []Question{
		{Prompt: "a", Options: []string{"x", "y"}, Answer: "x"},
		{Prompt: "b", Options: []string{"x", "y"}, Answer: "y"},
		{Prompt: "c", Options: []string{"x", "y"}, Answer: "y"},
		{Prompt: "d", Options: []string{"x", "y"}, Answer: "x"},
	}
	g := GradeQuiz(questions, map[int]string{0: "x", 1: "y", 2: "x"})
	if g.Correct != 2 || g.Total != 4 {
		t.Fatalf("unexpected grade: %+v", g)
	}
	if g.Percentage() != 50 {
		t.Fatalf("expected 50%%, got %v", g.Percentage())
	}
	if g.Passed() {
		t.Fatalf("50%% should not pass")
	}

	g = GradeQuiz(questions, map[int]string{0: "x", 1: "y", 2: "y"})
	if g.Percentage() != 75 || !g.Passed() {
		t.Fatalf("expected a passing 75%%, got %+v", g)
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	g := GradeQuiz(nil, nil)
	if g.Percentage() != 0 || g.Passed() {
		t.Fatalf("empty quiz should score 0 and not pass: %+v", g)
	}
}
