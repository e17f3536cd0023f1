package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/bookstore-api/internal/domain/entity"
	"github.com/yourusername/bookstore-api/internal/domain/repository"
	apperrors "github.com/yourusername/bookstore-api/internal/pkg/errors"
	"github.com/yourusername/bookstore-api/internal/service/quizreward"
)

const (
	activeQuizCacheKey = "quiz:active:view"
	activeQuizCacheTTL = 5 * time.Minute
	couponValidityDays = 30
)

// AuthUser is the authenticated identity handed in by the auth middleware.
type AuthUser struct {
	ID    uint
	Email string
}

// ActiveQuizView is the client-safe projection of the active quiz. It is the
// redaction contract: question answers have no field here at all.
type ActiveQuizView struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Questions   []QuizQuestionView `json:"questions"`
}

// QuizQuestionView is a question as served to clients, answer stripped.
type QuizQuestionView struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// SubmitResult is the outcome of a scored submission.
type SubmitResult struct {
	Score          int
	TotalQuestions int
	Coupon         *entity.Coupon // nil when no reward tier was reached
	Message        string
}

// QuizQuestionInput is one question in an admin create request.
type QuizQuestionInput struct {
	Question string
	Options  []string
	Answer   string
}

// RewardTierInput is one reward tier in an admin create request.
type RewardTierInput struct {
	MinScore           *int
	DiscountPercentage *float64
	CouponPrefix       string
}

// CreateQuizInput is the admin create request.
type CreateQuizInput struct {
	Title       string
	Description string
	Questions   []QuizQuestionInput
	Rewards     []RewardTierInput
}

// QuizService orchestrates the quiz-to-coupon flow: serving the active quiz
// without leaking answers, gating on the completion ledger, scoring
// submissions, issuing coupons and the admin quiz lifecycle.
type QuizService struct {
	quizRepo     repository.QuizRepository
	userQuizRepo repository.UserQuizRepository
	couponRepo   repository.CouponRepository
	cacheRepo    repository.CacheRepository
	codeGen      *quizreward.Generator
	now          func() time.Time
}

// NewQuizService creates the quiz service. cacheRepo may be nil, in which
// case active-quiz reads always hit the database.
func NewQuizService(
	quizRepo repository.QuizRepository,
	userQuizRepo repository.UserQuizRepository,
	couponRepo repository.CouponRepository,
	cacheRepo repository.CacheRepository,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		userQuizRepo: userQuizRepo,
		couponRepo:   couponRepo,
		cacheRepo:    cacheRepo,
		codeGen:      quizreward.NewGenerator(couponRepo.CodeExists),
		now:          time.Now,
	}
}

// GetActiveQuizForUser returns the redacted active quiz. When email is
// non-empty and the user already completed this quiz, ErrAlreadyCompleted is
// returned instead. A quiz table with rows but no active flag self-heals by
// activating the first quiz found.
func (s *QuizService) GetActiveQuizForUser(email string) (*ActiveQuizView, error) {
	view, err := s.activeQuizView()
	if err != nil {
		return nil, err
	}

	if email != "" {
		completed, err := s.userQuizRepo.HasCompleted(email, view.ID)
		if err != nil {
			// Don't block quiz delivery on a ledger read failure.
			log.Printf("[QuizService] Completion check failed for %s on quiz #%d: %v", email, view.ID, err)
		} else if completed {
			return nil, fmt.Errorf("%w: wait for a new quiz to be uploaded by the admin", apperrors.ErrAlreadyCompleted)
		}
	}

	return view, nil
}

// activeQuizView loads the redacted view, cache-aside.
func (s *QuizService) activeQuizView() (*ActiveQuizView, error) {
	if s.cacheRepo != nil {
		var cached ActiveQuizView
		if err := s.cacheRepo.GetJSON(activeQuizCacheKey, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuizService] Active quiz cache read failed: %v", err)
		}
	}

	quiz, err := s.quizRepo.GetActiveWithQuestions()
	if errors.Is(err, apperrors.ErrNotFound) {
		// Self-healing: activate any existing quiz before giving up.
		quiz, err = s.quizRepo.ActivateAny()
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoActiveQuiz
		}
	}
	if err != nil {
		return nil, err
	}

	view := redactQuiz(quiz)

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(activeQuizCacheKey, view, activeQuizCacheTTL); err != nil {
			log.Printf("[QuizService] Active quiz cache write failed: %v", err)
		}
	}

	return view, nil
}

// redactQuiz builds the client-safe projection of a quiz.
func redactQuiz(quiz *entity.Quiz) *ActiveQuizView {
	questions := make([]QuizQuestionView, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, QuizQuestionView{
			ID:       q.ID,
			Question: q.Text,
			Options:  q.Options,
		})
	}
	return &ActiveQuizView{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   questions,
	}
}

// SubmitQuiz scores a submission and, when a reward tier is reached, issues
// a coupon (deactivating any prior active one). Validation failures leave
// no trace; a completion-ledger write failure is logged and swallowed so
// the user still receives their score.
func (s *QuizService) SubmitQuiz(user *AuthUser, quizID uint, answers []string) (*SubmitResult, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: user not authenticated", apperrors.ErrUnauthorized)
	}
	if quizID == 0 || answers == nil {
		return nil, fmt.Errorf("%w: quizId and answers are required", apperrors.ErrValidation)
	}

	quiz, err := s.quizRepo.GetWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: quiz not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load quiz #%d: %w", quizID, err)
	}
	if !quiz.IsActive {
		return nil, fmt.Errorf("%w: this quiz is no longer active", apperrors.ErrQuizInactive)
	}

	score := quizreward.Score(quiz.Questions, answers)
	tier := quizreward.ResolveReward(quiz.Rewards, score)

	result := &SubmitResult{
		Score:          score,
		TotalQuestions: len(quiz.Questions),
	}

	if tier == nil {
		s.recordCompletion(user.Email, quiz)
		result.Message = "Thank you for taking the quiz!"
		return result, nil
	}

	code, err := s.codeGen.Generate(tier.CouponPrefix, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate coupon code: %w", err)
	}

	coupon := &entity.Coupon{
		Code:               code,
		DiscountPercentage: tier.DiscountPercentage,
		ExpirationDate:     s.now().AddDate(0, 0, couponValidityDays),
		IsActive:           true,
		UserID:             user.ID,
	}

	// One transaction: deactivate the prior active coupon and insert the new
	// one, so the one-active-coupon invariant holds under concurrent submits.
	if err := s.couponRepo.ReplaceActive(coupon); err != nil {
		return nil, fmt.Errorf("failed to issue coupon: %w", err)
	}
	log.Printf("[QuizService] Issued coupon %s (%.0f%%) to user #%d for score %d/%d",
		coupon.Code, coupon.DiscountPercentage, user.ID, score, len(quiz.Questions))

	s.recordCompletion(user.Email, quiz)

	result.Coupon = coupon
	result.Message = "Congratulations! You've earned a discount coupon."
	return result, nil
}

// recordCompletion upserts the completion record. Bookkeeping only: a
// failure here must not cost the user their score or coupon, so errors are
// logged and swallowed.
func (s *QuizService) recordCompletion(email string, quiz *entity.Quiz) {
	if err := s.userQuizRepo.RecordCompletion(email, quiz.ID, quiz.Title); err != nil {
		log.Printf("[QuizService] Failed to record completion for %s on quiz #%d: %v", email, quiz.ID, err)
		return
	}
	log.Printf("[QuizService] Completion recorded for %s on quiz %q (#%d)", email, quiz.Title, quiz.ID)
}

// CreateQuiz validates and persists a new quiz as the active one, then
// resets the completion ledger so every user may take it.
func (s *QuizService) CreateQuiz(input CreateQuizInput) (*entity.Quiz, error) {
	if err := validateCreateQuiz(input); err != nil {
		return nil, err
	}

	quiz := &entity.Quiz{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
	}
	for i, q := range input.Questions {
		quiz.Questions = append(quiz.Questions, entity.Question{
			Position: i,
			Text:     q.Question,
			Options:  entity.StringArray(q.Options),
			Answer:   q.Answer,
		})
	}
	for _, r := range input.Rewards {
		quiz.Rewards = append(quiz.Rewards, entity.RewardTier{
			MinScore:           *r.MinScore,
			DiscountPercentage: *r.DiscountPercentage,
			CouponPrefix:       r.CouponPrefix,
		})
	}
	quiz.SortRewards()

	if err := s.quizRepo.CreateActive(quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	deleted, err := s.userQuizRepo.ResetAll()
	if err != nil {
		// Quiz already exists at this point; surface the error, no rollback.
		return nil, fmt.Errorf("quiz created but failed to reset completion records: %w", err)
	}
	log.Printf("[QuizService] Quiz %q created as active, %d completion records reset", quiz.Title, deleted)

	s.invalidateActiveQuizCache()
	return quiz, nil
}

// validateCreateQuiz applies the admin-create validation rules.
func validateCreateQuiz(input CreateQuizInput) error {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: title and description are required", apperrors.ErrValidation)
	}
	if len(input.Questions) == 0 {
		return fmt.Errorf("%w: quiz must have at least one question", apperrors.ErrValidation)
	}
	for i, q := range input.Questions {
		if strings.TrimSpace(q.Question) == "" || q.Answer == "" {
			return fmt.Errorf("%w: question #%d must have a question and an answer", apperrors.ErrValidation, i+1)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: question #%d must have at least 2 options", apperrors.ErrValidation, i+1)
		}
		answerFound := false
		for _, opt := range q.Options {
			if opt == q.Answer {
				answerFound = true
				break
			}
		}
		if !answerFound {
			return fmt.Errorf("%w: question #%d answer must be one of the options", apperrors.ErrValidation, i+1)
		}
	}
	if len(input.Rewards) == 0 {
		return fmt.Errorf("%w: quiz must have at least one reward tier", apperrors.ErrValidation)
	}
	for i, r := range input.Rewards {
		if r.MinScore == nil || r.DiscountPercentage == nil || r.CouponPrefix == "" {
			return fmt.Errorf("%w: reward tier #%d must have a minimum score, discount percentage and coupon prefix", apperrors.ErrValidation, i+1)
		}
		if *r.DiscountPercentage < 0 || *r.DiscountPercentage > 100 {
			return fmt.Errorf("%w: reward tier #%d discount must be between 0 and 100", apperrors.ErrValidation, i+1)
		}
	}
	return nil
}

// DeleteQuiz removes a quiz. If it was the active one and other quizzes
// remain, an arbitrary survivor is activated.
func (s *QuizService) DeleteQuiz(id uint) error {
	quiz, err := s.quizRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.quizRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete quiz #%d: %w", id, err)
	}

	if quiz.IsActive {
		if _, err := s.quizRepo.ActivateAny(); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuizService] Failed to activate a replacement quiz after deleting #%d: %v", id, err)
		}
	}

	s.invalidateActiveQuizCache()
	return nil
}

// ActivateQuiz deactivates all quizzes and activates the given one.
func (s *QuizService) ActivateQuiz(id uint) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.Activate(id)
	if err != nil {
		return nil, err
	}
	s.invalidateActiveQuizCache()
	return quiz, nil
}

// ListQuizzes returns every quiz, newest first. Admin only: entities carry
// no answers in JSON, but this path is still gated upstream.
func (s *QuizService) ListQuizzes() ([]entity.Quiz, error) {
	return s.quizRepo.ListAll()
}

// ResetMyCompletion deletes the caller's completion record for the active
// quiz. Returns the quiz title and whether a record was actually removed.
func (s *QuizService) ResetMyCompletion(email string) (string, bool, error) {
	quiz, err := s.quizRepo.GetActiveWithQuestions()
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", false, apperrors.ErrNoActiveQuiz
		}
		return "", false, err
	}

	deleted, err := s.userQuizRepo.ResetOne(email, quiz.ID)
	if err != nil {
		return "", false, fmt.Errorf("failed to reset completion: %w", err)
	}
	return quiz.Title, deleted > 0, nil
}

// Debug resets, admin tooling only.

// ResetAllCompletions wipes the completion ledger.
func (s *QuizService) ResetAllCompletions() (int64, error) {
	return s.userQuizRepo.ResetAll()
}

// ResetCompletionsByEmail wipes one user's completion records.
func (s *QuizService) ResetCompletionsByEmail(email string) (int64, error) {
	return s.userQuizRepo.ResetByEmail(email)
}

// ResetCompletionsByQuiz wipes one quiz's completion records.
func (s *QuizService) ResetCompletionsByQuiz(quizID uint) (int64, error) {
	return s.userQuizRepo.ResetByQuiz(quizID)
}

// invalidateActiveQuizCache drops the cached redacted view. Best effort.
func (s *QuizService) invalidateActiveQuizCache() {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(activeQuizCacheKey); err != nil {
		log.Printf("[QuizService] Failed to invalidate active quiz cache: %v", err)
	}
}

// EnsureDefaultQuiz runs once at process start: seeds the default quiz when
// the table is empty, or activates an existing quiz when none is active.
func (s *QuizService) EnsureDefaultQuiz() error {
	count, err := s.quizRepo.Count()
	if err != nil {
		return fmt.Errorf("failed to count quizzes: %w", err)
	}

	if count > 0 {
		if _, err := s.quizRepo.GetActiveWithQuestions(); err == nil {
			return nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		quiz, err := s.quizRepo.ActivateAny()
		if err != nil {
			return fmt.Errorf("failed to activate an existing quiz: %w", err)
		}
		log.Printf("[QuizService] No active quiz found at startup, activated %q (#%d)", quiz.Title, quiz.ID)
		return nil
	}

	quiz := defaultQuiz()
	if err := s.quizRepo.CreateActive(quiz); err != nil {
		return fmt.Errorf("failed to seed default quiz: %w", err)
	}
	log.Printf("[QuizService] Seeded default quiz %q (#%d)", quiz.Title, quiz.ID)
	return nil
}

// defaultQuiz is the seed served when the store boots with an empty quiz
// table.
func defaultQuiz() *entity.Quiz {
	return &entity.Quiz{
		Title:       "Book Lover's Quiz",
		Description: "Test your knowledge about books and earn discount coupons!",
		Questions: []entity.Question{
			{
				Position: 0,
				Text:     "What does the spell 'Alohomora' do?",
				Options:  entity.StringArray{"Summons a wand", "Unlocks doors", "Turns invisible", "Makes tea"},
				Answer:   "Unlocks doors",
			},
			{
				Position: 1,
				Text:     "Which instrument does a certain famous detective enjoy playing?",
				Options:  entity.StringArray{"Piano", "Violin", "Poirot", "Marple"},
				Answer:   "Violin",
			},
			{
				Position: 2,
				Text:     "What is considered a 'ruler's' greatest strength in ancient political texts?",
				Options:  entity.StringArray{"Swordsmanship", "Gold reserves", "Clever advisors", "Royal elephants"},
				Answer:   "Clever advisors",
			},
			{
				Position: 3,
				Text:     "Which book series features a character named 'Frodo'?",
				Options:  entity.StringArray{"Harry Potter", "The Hobbit", "The Chronicles of Narnia", "The Lord of the Rings"},
				Answer:   "The Lord of the Rings",
			},
			{
				Position: 4,
				Text:     "What is the name of Sherlock Holmes' assistant?",
				Options:  entity.StringArray{"Watson", "Wilson", "Winston", "Walter"},
				Answer:   "Watson",
			},
			{
				Position: 5,
				Text:     "In the wizarding world, how do students receive their school letters?",
				Options:  entity.StringArray{"Pigeon", "Magical Owl", "Floo Network", "Enchanted broom delivery"},
				Answer:   "Magical Owl",
			},
			{
				Position: 6,
				Text:     "Which of the following strategies is considered most dangerous for a ruler in maintaining power?",
				Options: entity.StringArray{
					"Fostering loyalty through rewards and privileges",
					"Surrounding oneself with equally powerful individuals",
					"Relying on the support of the military to maintain control",
					"Granting autonomy to local leaders and communities",
				},
				Answer: "Surrounding oneself with equally powerful individuals",
			},
			{
				Position: 7,
				Text:     "In business, if your competitor knows your every move, how can you maintain the upper hand?",
				Options: entity.StringArray{
					"Increase transparency to build trust",
					"Diversify your strategies and keep evolving",
					"Use their knowledge against them by setting traps",
					"Slow down and make them overestimate your plans",
				},
				Answer: "Diversify your strategies and keep evolving",
			},
		},
		Rewards: entity.RewardTierArray{
			{MinScore: 7, DiscountPercentage: 10, CouponPrefix: "BOOKQUIZ10"},
			{MinScore: 4, DiscountPercentage: 4, CouponPrefix: "BOOKQUIZ4"},
			{MinScore: 1, DiscountPercentage: 1, CouponPrefix: "BOOKQUIZ1"},
		},
	}
}
