package entity

import (
	"sort"
	"time"
)

// Quiz is a discount quiz served to storefront users. At most one quiz is
// active at a time; the partial unique index idx_quizzes_single_active backs
// that invariant at the storage layer.
type Quiz struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:100;not null;uniqueIndex" json:"title"`
	Description string          `gorm:"size:500;not null" json:"description"`
	IsActive    bool            `gorm:"not null;default:false;index" json:"is_active"`
	Questions   []Question      `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	Rewards     RewardTierArray `gorm:"type:jsonb;not null" json:"rewards"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName sets the GORM table name.
func (Quiz) TableName() string {
	return "quizzes"
}

// SortRewards orders reward tiers descending by MinScore. Called once at
// creation time; the reward resolver trusts the stored order afterwards.
func (q *Quiz) SortRewards() {
	sort.SliceStable(q.Rewards, func(i, j int) bool {
		return q.Rewards[i].MinScore > q.Rewards[j].MinScore
	})
}

// Question is a single-answer multiple-choice question owned by a quiz.
// Answer is tagged json:"-" so it can never leak through a serialized entity;
// client-facing reads additionally go through redacted DTOs.
type Question struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	QuizID    uint        `gorm:"not null;index" json:"quiz_id"`
	Position  int         `gorm:"not null;default:0" json:"-"`
	Text      string      `gorm:"size:500;not null" json:"question"`
	Options   StringArray `gorm:"type:jsonb;not null" json:"options"`
	Answer    string      `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TableName sets the GORM table name.
func (Question) TableName() string {
	return "questions"
}

// HasAnswerOption reports whether the stored answer is one of the options.
func (q *Question) HasAnswerOption() bool {
	for _, opt := range q.Options {
		if opt == q.Answer {
			return true
		}
	}
	return false
}

// RewardTier maps a minimum score to a discount percentage and the prefix
// used when minting coupon codes for that tier.
type RewardTier struct {
	MinScore           int     `json:"min_score"`
	DiscountPercentage float64 `json:"discount_percentage"`
	CouponPrefix       string  `json:"coupon_prefix"`
}
