package quizreward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bookstore-api/internal/domain/entity"
)

func makeQuestions(answers ...string) []entity.Question {
	questions := make([]entity.Question, 0, len(answers))
	for _, a := range answers {
		questions = append(questions, entity.Question{
			Text:    "q: " + a,
			Options: entity.StringArray{a, "wrong"},
			Answer:  a,
		})
	}
	return questions
}

func TestScore(t *testing.T) {
	questions := makeQuestions("alpha", "beta", "gamma")

	tests := []struct {
		name    string
		answers []string
		want    int
	}{
		{"all correct", []string{"alpha", "beta", "gamma"}, 3},
		{"none correct", []string{"x", "y", "z"}, 0},
		{"partially correct", []string{"alpha", "nope", "gamma"}, 2},
		{"empty answers", []string{}, 0},
		{"nil answers", nil, 0},
		{"fewer answers than questions", []string{"alpha"}, 1},
		{"extra answers ignored", []string{"alpha", "beta", "gamma", "delta", "alpha"}, 3},
		{"exact match only, no trimming", []string{" alpha", "beta ", "GAMMA"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(questions, tt.answers))
		})
	}
}

func TestScoreEmptyQuiz(t *testing.T) {
	assert.Equal(t, 0, Score(nil, []string{"anything"}))
}

func TestResolveReward(t *testing.T) {
	// Stored order is descending by MinScore, as admin-create guarantees.
	tiers := entity.RewardTierArray{
		{MinScore: 7, DiscountPercentage: 10, CouponPrefix: "GOLD"},
		{MinScore: 4, DiscountPercentage: 5, CouponPrefix: "SILVER"},
		{MinScore: 1, DiscountPercentage: 2, CouponPrefix: "BRONZE"},
	}

	tests := []struct {
		score      int
		wantPrefix string // "" means no reward
	}{
		{0, ""},
		{1, "BRONZE"},
		{3, "BRONZE"},
		{4, "SILVER"},
		{6, "SILVER"},
		{7, "GOLD"},
		{10, "GOLD"},
	}

	for _, tt := range tests {
		tier := ResolveReward(tiers, tt.score)
		if tt.wantPrefix == "" {
			assert.Nil(t, tier, "score %d should earn no reward", tt.score)
			continue
		}
		require.NotNil(t, tier, "score %d should earn a reward", tt.score)
		assert.Equal(t, tt.wantPrefix, tier.CouponPrefix, "score %d", tt.score)
	}
}

func TestResolveRewardNoTiers(t *testing.T) {
	assert.Nil(t, ResolveReward(nil, 100))
	assert.Nil(t, ResolveReward(entity.RewardTierArray{}, 100))
}
