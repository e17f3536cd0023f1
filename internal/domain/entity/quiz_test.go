package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortRewards(t *testing.T) {
	quiz := &Quiz{
		Rewards: RewardTierArray{
			{MinScore: 1, CouponPrefix: "BRONZE"},
			{MinScore: 7, CouponPrefix: "GOLD"},
			{MinScore: 4, CouponPrefix: "SILVER"},
		},
	}

	quiz.SortRewards()

	assert.Equal(t, []int{7, 4, 1}, []int{
		quiz.Rewards[0].MinScore,
		quiz.Rewards[1].MinScore,
		quiz.Rewards[2].MinScore,
	})
}

func TestHasAnswerOption(t *testing.T) {
	q := &Question{Options: StringArray{"a", "b"}, Answer: "b"}
	assert.True(t, q.HasAnswerOption())

	q.Answer = "c"
	assert.False(t, q.HasAnswerOption())
}

func TestQuestionJSONNeverCarriesAnswer(t *testing.T) {
	q := Question{
		ID:      1,
		Text:    "What is the name of Sherlock Holmes' assistant?",
		Options: StringArray{"Watson", "Wilson"},
		Answer:  "Watson",
	}

	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "answer")
	assert.Contains(t, string(data), "question")
}
