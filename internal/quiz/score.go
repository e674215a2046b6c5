package quiz

// Score is the result of a taken quiz.
type Score struct {
	Correct  int
	Answered int
	Total    int
}

// Percent returns the share of correct answers over all questions.
func (s Score) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Correct * 100 / s.Total
}

// ScoreOf tallies the user's answers.
func ScoreOf(q *Quiz) Score {
	if q == nil {
		return Score{}
	}
	s := Score{Total: len(q.Questions)}
	for _, qu := range q.Questions {
		if qu.Answered() {
			s.Answered++
		}
		if qu.IsCorrect() {
			s.Correct++
		}
	}
	return s
}
