package entity

import "time"

// UserQuiz records that a user has taken a quiz. The compound unique index
// on (email, quiz_id) makes double completion structurally impossible; writes
// go through an upsert keyed on that index.
type UserQuiz struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:100;not null;uniqueIndex:idx_user_quizzes_email_quiz" json:"email"`
	QuizID    uint      `gorm:"not null;uniqueIndex:idx_user_quizzes_email_quiz" json:"quiz_id"`
	Title     string    `gorm:"size:100;not null" json:"title"` // denormalized, informational only
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the GORM table name.
func (UserQuiz) TableName() string {
	return "user_quizzes"
}
