package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/yourusername/bookstore-api/internal/domain/entity"
	apperrors "github.com/yourusername/bookstore-api/internal/pkg/errors"
)

// QuizRepo implements repository.QuizRepository.
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo creates a quiz repository.
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create persists a quiz together with its questions.
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	return r.db.Create(quiz).Error
}

// GetByID returns a quiz by ID, without questions.
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions returns a quiz with its questions in stored order.
func (r *QuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetActiveWithQuestions returns the quiz flagged active, questions included.
func (r *QuizRepo) GetActiveWithQuestions() (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).Where("is_active = ?", true).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// ActivateAny activates the first quiz found and returns it with questions.
// Recovery path for the "no quiz flagged active" state.
func (r *QuizRepo) ActivateAny() (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Order("id ASC").First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if err := r.db.Model(&entity.Quiz{}).Where("id = ?", quiz.ID).Update("is_active", true).Error; err != nil {
		return nil, fmt.Errorf("failed to activate quiz #%d: %w", quiz.ID, err)
	}

	return r.GetWithQuestions(quiz.ID)
}

// CreateActive deactivates every quiz and inserts the new one as active.
// Runs in one transaction; the partial unique index idx_quizzes_single_active
// backstops the one-active-quiz invariant against concurrent writers.
func (r *QuizRepo) CreateActive(quiz *entity.Quiz) error {
	quiz.IsActive = true
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Quiz{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate existing quizzes: %w", err)
		}
		if err := tx.Create(quiz).Error; err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}
		return nil
	})
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("%w: quiz title must be unique", apperrors.ErrConflict)
	}
	return err
}

// Activate deactivates every quiz and activates the given one, then returns
// it with questions. Runs in one transaction.
func (r *QuizRepo) Activate(id uint) (*entity.Quiz, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Quiz{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate existing quizzes: %w", err)
		}

		result := tx.Model(&entity.Quiz{}).Where("id = ?", id).Update("is_active", true)
		if result.Error != nil {
			return fmt.Errorf("failed to activate quiz #%d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetWithQuestions(id)
}

// ListAll returns every quiz ordered by creation time descending, questions
// preloaded for the admin summary view.
func (r *QuizRepo) ListAll() ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

// Count returns the number of quizzes.
func (r *QuizRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.Quiz{}).Count(&count).Error
	return count, err
}

// Delete removes a quiz and its questions.
func (r *QuizRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&entity.Question{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Quiz{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// isUniqueViolation checks Postgres unique violation (23505) for both the
// pgconn and lib/pq drivers.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
