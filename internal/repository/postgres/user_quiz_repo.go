package postgres

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/bookstore-api/internal/domain/entity"
)

// UserQuizRepo implements repository.UserQuizRepository, the completion
// ledger. All writes go through the (email, quiz_id) unique index so an
// upsert can never produce a second record for the same pair.
type UserQuizRepo struct {
	db *gorm.DB
}

// NewUserQuizRepo creates a completion ledger repository.
func NewUserQuizRepo(db *gorm.DB) *UserQuizRepo {
	return &UserQuizRepo{db: db}
}

// HasCompleted reports whether a completed record exists for (email, quizID).
func (r *UserQuizRepo) HasCompleted(email string, quizID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.UserQuiz{}).
		Where("email = ? AND quiz_id = ? AND completed = ?", email, quizID, true).
		Count(&count).Error
	return count > 0, err
}

// RecordCompletion upserts the completion record. Idempotent: a conflict on
// the compound index only refreshes title and completed.
func (r *UserQuizRepo) RecordCompletion(email string, quizID uint, title string) error {
	record := entity.UserQuiz{
		Email:     email,
		QuizID:    quizID,
		Title:     title,
		Completed: true,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}, {Name: "quiz_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "completed", "updated_at"}),
	}).Create(&record).Error
}

// ResetOne deletes the record for (email, quizID) and returns the count.
func (r *UserQuizRepo) ResetOne(email string, quizID uint) (int64, error) {
	result := r.db.Where("email = ? AND quiz_id = ?", email, quizID).Delete(&entity.UserQuiz{})
	return result.RowsAffected, result.Error
}

// ResetAll deletes every completion record. Runs when a new quiz is created
// so everyone may take it.
func (r *UserQuizRepo) ResetAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&entity.UserQuiz{})
	return result.RowsAffected, result.Error
}

// ResetByEmail deletes all records for one user. Admin debugging.
func (r *UserQuizRepo) ResetByEmail(email string) (int64, error) {
	result := r.db.Where("email = ?", email).Delete(&entity.UserQuiz{})
	return result.RowsAffected, result.Error
}

// ResetByQuiz deletes all records for one quiz. Admin debugging.
func (r *UserQuizRepo) ResetByQuiz(quizID uint) (int64, error) {
	result := r.db.Where("quiz_id = ?", quizID).Delete(&entity.UserQuiz{})
	return result.RowsAffected, result.Error
}
