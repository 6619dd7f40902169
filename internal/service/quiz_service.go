package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/util"
)

type QuizQuestionInput struct {
	Text         string   `json:"text" binding:"required"`
	Options      []string `json:"options" binding:"required,min=2,max=6"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
	Points       int      `json:"points" binding:"omitempty,min=1"`
}

type CreateQuizInput struct {
	CourseID    string              `json:"courseId" binding:"required"`
	Title       string              `json:"title" binding:"required,max=255"`
	Description string              `json:"description"`
	Topic       string              `json:"topic" binding:"omitempty,max=255"`
	Difficulty  string              `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	TimeLimit   int                 `json:"timeLimit" binding:"omitempty,min=1,max=240"`
	MaxAttempts int                 `json:"maxAttempts" binding:"omitempty,min=1,max=20"`
	PassMark    int                 `json:"passMark" binding:"omitempty,min=1,max=100"`
	AllowReview *bool               `json:"allowReview"`
	Questions   []QuizQuestionInput `json:"questions" binding:"required,min=1,dive"`
}

type AnswerInput struct {
	QuestionID    string `json:"questionId" binding:"required"`
	SelectedIndex int    `json:"selectedIndex"`
}

type SubmitQuizInput struct {
	Answers          []AnswerInput `json:"answers" binding:"required,min=1,dive"`
	TimeTakenSeconds int           `json:"timeTakenSeconds" binding:"omitempty,min=0"`
}

// QuizView is a student-facing quiz without answer keys.
type QuizView struct {
	ID          string             `json:"id"`
	CourseID    string             `json:"courseId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Topic       string             `json:"topic"`
	Status      string             `json:"status"`
	Difficulty  string             `json:"difficulty"`
	TimeLimit   int                `json:"timeLimit"`
	MaxAttempts int                `json:"maxAttempts"`
	PassMark    int                `json:"passMark"`
	Questions   []QuizQuestionView `json:"questions"`
}

type QuizQuestionView struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Points  int      `json:"points"`
}

type QuizStats struct {
	AttemptCount int `json:"attemptCount"`
	AverageScore int `json:"averageScore"`
	HighestScore int `json:"highestScore"`
	LowestScore  int `json:"lowestScore"`
	PassMark     int `json:"passMark"`
	PassRate     int `json:"passRate"`
}

type QuizService struct {
	quizzes     *repository.QuizRepository
	attempts    *repository.QuizAttemptRepository
	courses     *repository.CourseRepository
	leaderboard LeaderboardInvalidator
}

func NewQuizService(quizzes *repository.QuizRepository, attempts *repository.QuizAttemptRepository, courses *repository.CourseRepository, leaderboard LeaderboardInvalidator) *QuizService {
	return &QuizService{quizzes: quizzes, attempts: attempts, courses: courses, leaderboard: leaderboard}
}

func (s *QuizService) Create(creatorID uint, input CreateQuizInput) (*model.Quiz, error) {
	course, err := s.courses.FindByID(input.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.NotFound("Course not found")
	}

	questions := make([]model.QuizQuestion, 0, len(input.Questions))
	for i, q := range input.Questions {
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return nil, util.BadRequest(fmt.Sprintf("Question %d has an out-of-range correct option", i+1))
		}
		opts, err := json.Marshal(q.Options)
		if err != nil {
			return nil, err
		}
		points := q.Points
		if points == 0 {
			points = 1
		}
		questions = append(questions, model.QuizQuestion{
			Text:         q.Text,
			Options:      opts,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
			Points:       points,
			Position:     i,
		})
	}

	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}
	passMark := input.PassMark
	if passMark == 0 {
		passMark = 50
	}
	allowReview := true
	if input.AllowReview != nil {
		allowReview = *input.AllowReview
	}

	quiz := &model.Quiz{
		CourseID:    input.CourseID,
		Title:       input.Title,
		Description: input.Description,
		Topic:       input.Topic,
		Status:      model.QuizStatusDraft,
		Difficulty:  difficulty,
		TimeLimit:   input.TimeLimit,
		MaxAttempts: input.MaxAttempts,
		PassMark:    passMark,
		AllowReview: allowReview,
		Questions:   questions,
		CreatedByID: creatorID,
	}
	if err := s.quizzes.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Get(id string) (*model.Quiz, error) {
	quiz, err := s.quizzes.FindByID(id)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, util.NotFound("Quiz not found")
	}
	return quiz, nil
}

// GetForStudent returns a published quiz with the answer keys stripped.
func (s *QuizService) GetForStudent(id string) (*QuizView, error) {
	quiz, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if quiz.Status != model.QuizStatusPublished {
		return nil, util.NotFound("Quiz not found")
	}

	view := &QuizView{
		ID:          quiz.ID,
		CourseID:    quiz.CourseID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Topic:       quiz.Topic,
		Status:      quiz.Status,
		Difficulty:  quiz.Difficulty,
		TimeLimit:   quiz.TimeLimit,
		MaxAttempts: quiz.MaxAttempts,
		PassMark:    quiz.PassMark,
		Questions:   make([]QuizQuestionView, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		opts, err := q.OptionList()
		if err != nil {
			return nil, err
		}
		view.Questions = append(view.Questions, QuizQuestionView{
			ID:      q.ID,
			Text:    q.Text,
			Options: opts,
			Points:  q.Points,
		})
	}
	return view, nil
}

func (s *QuizService) ListByCourse(courseID, topic, difficulty string, includeUnpublished bool, page, limit int) ([]model.Quiz, *util.Pagination, error) {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, nil, err
	}
	if course == nil {
		return nil, nil, util.NotFound("Course not found")
	}
	if difficulty != "" && difficulty != model.DifficultyEasy &&
		difficulty != model.DifficultyMedium && difficulty != model.DifficultyHard {
		return nil, nil, util.BadRequest("Unknown difficulty")
	}

	quizzes, total, err := s.quizzes.ListByCourse(courseID, topic, difficulty, includeUnpublished, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return quizzes, util.NewPagination(page, limit, total), nil
}

// SetStatus moves a quiz between draft, published and archived.
func (s *QuizService) SetStatus(id, status string) (*model.Quiz, error) {
	if status != model.QuizStatusDraft && status != model.QuizStatusPublished && status != model.QuizStatusArchived {
		return nil, util.BadRequest("Unknown quiz status")
	}

	quiz, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if quiz.Status == status {
		return quiz, nil
	}
	if status == model.QuizStatusPublished && len(quiz.Questions) == 0 {
		return nil, util.BadRequest("Cannot publish a quiz with no questions")
	}

	if err := s.quizzes.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Submit grades an attempt. Every question must be answered exactly once with
// an in-range option; grading and the stat refresh happen in one transaction.
func (s *QuizService) Submit(userID uint, quizID string, input SubmitQuizInput) (*model.QuizAttempt, error) {
	quiz, err := s.Get(quizID)
	if err != nil {
		return nil, err
	}
	if quiz.Status != model.QuizStatusPublished {
		return nil, util.BadRequest("Quiz is not open for attempts")
	}
	if len(input.Answers) != len(quiz.Questions) {
		return nil, util.BadRequest(fmt.Sprintf("Expected %d answers, got %d", len(quiz.Questions), len(input.Answers)))
	}

	graded, pointsEarned, pointsTotal, correct, err := gradeAnswers(quiz.Questions, input.Answers)
	if err != nil {
		return nil, err
	}

	answersJSON, err := json.Marshal(graded)
	if err != nil {
		return nil, err
	}

	score := util.QuizPercent(pointsEarned, pointsTotal)

	startedAt := time.Now().Add(-time.Duration(input.TimeTakenSeconds) * time.Second)

	attempt := &model.QuizAttempt{
		QuizID:           quizID,
		UserID:           userID,
		Answers:          answersJSON,
		Score:            score,
		PointsEarned:     pointsEarned,
		PointsTotal:      pointsTotal,
		CorrectCount:     correct,
		Passed:           score >= quiz.PassMark,
		StartedAt:        startedAt,
		TimeTakenSeconds: input.TimeTakenSeconds,
	}
	if err := s.attempts.Submit(attempt, quiz.MaxAttempts, correct); err != nil {
		return nil, err
	}
	if s.leaderboard != nil {
		s.leaderboard.Invalidate(context.Background())
	}
	return attempt, nil
}

// gradeAnswers matches submitted answers to questions and tallies points.
func gradeAnswers(questions []model.QuizQuestion, answers []AnswerInput) (graded []model.AttemptAnswer, pointsEarned, pointsTotal, correct int, err error) {
	byID := make(map[string]*model.QuizQuestion, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
		pointsTotal += questions[i].Points
	}

	seen := make(map[string]bool, len(answers))
	graded = make([]model.AttemptAnswer, 0, len(answers))

	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, 0, 0, 0, util.BadRequest("Answer references a question not in this quiz")
		}
		if seen[a.QuestionID] {
			return nil, 0, 0, 0, util.BadRequest("Duplicate answer for a question")
		}
		seen[a.QuestionID] = true

		opts, optErr := q.OptionList()
		if optErr != nil {
			return nil, 0, 0, 0, optErr
		}
		if a.SelectedIndex < 0 || a.SelectedIndex >= len(opts) {
			return nil, 0, 0, 0, util.BadRequest("Selected option is out of range")
		}

		isCorrect := a.SelectedIndex == q.CorrectIndex
		earned := 0
		if isCorrect {
			earned = q.Points
			correct++
		}
		pointsEarned += earned
		graded = append(graded, model.AttemptAnswer{
			QuestionID:    a.QuestionID,
			SelectedIndex: a.SelectedIndex,
			CorrectIndex:  q.CorrectIndex,
			Correct:       isCorrect,
			PointsEarned:  earned,
		})
	}
	return graded, pointsEarned, pointsTotal, correct, nil
}

func (s *QuizService) Stats(id string) (*QuizStats, error) {
	quiz, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return &QuizStats{
		AttemptCount: quiz.AttemptCount,
		AverageScore: quiz.AverageScore,
		HighestScore: quiz.HighestScore,
		LowestScore:  quiz.LowestScore,
		PassMark:     quiz.PassMark,
		PassRate:     quiz.PassRate,
	}, nil
}

// GetAttempt returns one of the caller's attempts. When the quiz disallows
// review, the graded answers are withheld so the answer key stays private.
func (s *QuizService) GetAttempt(id string, userID uint) (*model.QuizAttempt, error) {
	attempt, err := s.attempts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if attempt == nil || attempt.UserID != userID {
		return nil, util.NotFound("Attempt not found")
	}

	if attempt.Quiz != nil && !attempt.Quiz.AllowReview {
		attempt.Answers = nil
	}
	return attempt, nil
}

func (s *QuizService) ListAttempts(quizID string, userID uint) ([]model.QuizAttempt, error) {
	if _, err := s.Get(quizID); err != nil {
		return nil, err
	}
	return s.attempts.ListByQuizAndUser(quizID, userID)
}

func (s *QuizService) ListUserAttempts(userID uint, page, limit int) ([]model.QuizAttempt, *util.Pagination, error) {
	attempts, total, err := s.attempts.ListByUser(userID, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return attempts, util.NewPagination(page, limit, total), nil
}

func (s *QuizService) Delete(id string) error {
	quiz, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.quizzes.Delete(quiz)
}
