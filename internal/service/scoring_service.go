package service

import "examportal/internal/model"

// ScoreSummary is the outcome of scoring one submission. CorrectCount plus
// WrongCount always equals the exam's question count.
type ScoreSummary struct {
	CorrectCount int
	WrongCount   int
	Score        int // 0-100
}

type ScoringService interface {
	Score(questions []model.Question, answers map[uint]string) ScoreSummary
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

// Score walks the exam's question set, not the submitted answers, so
// unanswered questions count as wrong. The comparison is a case-sensitive
// exact match on the answer letter. Every question is worth an equal share
// of 100; the percentage truncates toward zero.
func (s *scoringService) Score(questions []model.Question, answers map[uint]string) ScoreSummary {
	var summary ScoreSummary
	for _, q := range questions {
		if answer, ok := answers[q.ID]; ok && answer == q.CorrectAnswer {
			summary.CorrectCount++
		} else {
			summary.WrongCount++
		}
	}
	if total := len(questions); total > 0 {
		summary.Score = summary.CorrectCount * 100 / total
	}
	return summary
}
