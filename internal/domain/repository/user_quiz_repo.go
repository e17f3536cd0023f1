package repository

// UserQuizRepository is the quiz completion ledger. The (email, quiz_id)
// unique index is the durable guard against double completion.
type UserQuizRepository interface {
	HasCompleted(email string, quizID uint) (bool, error)
	// RecordCompletion upserts the completion record for (email, quizID).
	// Idempotent: a second call only refreshes title/completed.
	RecordCompletion(email string, quizID uint, title string) error
	ResetOne(email string, quizID uint) (int64, error)
	ResetAll() (int64, error)
	ResetByEmail(email string) (int64, error)
	ResetByQuiz(quizID uint) (int64, error)
}
