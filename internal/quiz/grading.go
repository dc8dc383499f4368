package quiz

// Grade counts the questions whose chosen option equals the correct
// one. answers maps question index to chosen option index. Missing or
// out-of-range entries score zero; a partial answer map is accepted.
func Grade(questions []Question, answers map[int]int) int {
	score := 0
	for i, q := range questions {
		chosen, ok := answers[i]
		if !ok {
			continue
		}
		if chosen >= 0 && chosen < len(q.Options) && chosen == q.CorrectOption {
			score++
		}
	}
	return score
}

// BestScore returns the maximum score across attempts. The second
// return is false when there are no attempts.
func BestScore(attempts []Attempt) (int, bool) {
	if len(attempts) == 0 {
		return 0, false
	}
	best := attempts[0].Score
	for _, a := range attempts[1:] {
		if a.Score > best {
			best = a.Score
		}
	}
	return best, true
}
