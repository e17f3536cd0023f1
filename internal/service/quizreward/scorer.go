// Package quizreward holds the pure pieces of the quiz-to-coupon flow:
// answer scoring, reward tier resolution and coupon code generation.
package quizreward

import (
	"github.com/yourusername/bookstore-api/internal/domain/entity"
)

// Score counts positions where the submitted answer exactly matches the
// question's stored answer. Extra answers beyond the question count are
// ignored; missing answers simply do not score. No normalization, no
// partial credit.
func Score(questions []entity.Question, answers []string) int {
	score := 0
	for i, answer := range answers {
		if i >= len(questions) {
			break
		}
		if answer == questions[i].Answer {
			score++
		}
	}
	return score
}

// ResolveReward returns the first tier in stored order whose MinScore the
// score meets, or nil when none qualifies. Tiers are stored sorted
// descending by MinScore, so the first hit is the best one.
func ResolveReward(tiers entity.RewardTierArray, score int) *entity.RewardTier {
	for i := range tiers {
		if score >= tiers[i].MinScore {
			return &tiers[i]
		}
	}
	return nil
}
