package repository

import (
	"github.com/yourusername/bookstore-api/internal/domain/entity"
)

// QuizRepository defines persistence for quizzes and their questions.
type QuizRepository interface {
	// Create persists a quiz together with its questions.
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	GetWithQuestions(id uint) (*entity.Quiz, error)
	// GetActiveWithQuestions returns the quiz flagged active, questions included.
	GetActiveWithQuestions() (*entity.Quiz, error)
	// ActivateAny flips an arbitrary quiz to active and returns it, preloaded.
	// Used for self-healing when no quiz carries the active flag.
	ActivateAny() (*entity.Quiz, error)
	// CreateActive deactivates every quiz and inserts the new one as active,
	// in a single transaction.
	CreateActive(quiz *entity.Quiz) error
	// Activate deactivates every quiz and activates the given one, in a
	// single transaction.
	Activate(id uint) (*entity.Quiz, error)
	// ListAll returns every quiz ordered by creation time descending.
	ListAll() ([]entity.Quiz, error)
	Count() (int64, error)
	Delete(id uint) error
}
