package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/quizdash/quiz-service/internal/models"
	"github.com/quizdash/quiz-service/internal/repositories"
	"github.com/quizdash/quiz-service/internal/validator"
)

// ImportService seeds the quiz catalog from spreadsheets. One sheet per
// quiz: the sheet name is the quiz title, the first row is a header, and
// each following row is `question | option A..D | correct letter`.
type ImportService interface {
	ImportQuizzes(ctx context.Context, reader io.Reader) (*ImportResult, error)
}

type ImportError struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	TotalRows    int           `json:"total_rows"`
	SuccessCount int           `json:"success_count"`
	ErrorCount   int           `json:"error_count"`
	Errors       []ImportError `json:"errors,omitempty"`
	QuizIDs      []uint        `json:"quiz_ids"`
}

type importService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

func NewImportService(repo repositories.Repository, v *validator.Validator, logger *slog.Logger) ImportService {
	return &importService{
		repo:      repo,
		validator: v,
		logger:    logger,
	}
}

const maxImportOptions = 4

var optionLetters = []string{"A", "B", "C", "D"}

func (s *importService) ImportQuizzes(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	defer f.Close()

	result := &ImportResult{}

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			result.Errors = append(result.Errors, ImportError{
				Sheet:   sheet,
				Message: fmt.Sprintf("failed to read sheet: %v", err),
			})
			continue
		}
		if len(rows) < 2 {
			result.Errors = append(result.Errors, ImportError{
				Sheet:   sheet,
				Message: "sheet has no question rows",
			})
			continue
		}

		var questions []*models.Question
		sheetOK := true

		// Row 1 is the header.
		for i, row := range rows[1:] {
			result.TotalRows++
			rowNum := i + 2

			question, rowErr := s.parseQuestionRow(row, i)
			if rowErr != "" {
				result.ErrorCount++
				result.Errors = append(result.Errors, ImportError{
					Sheet:   sheet,
					Row:     rowNum,
					Message: rowErr,
				})
				sheetOK = false
				continue
			}
			result.SuccessCount++
			questions = append(questions, question)
		}

		if !sheetOK || len(questions) == 0 {
			continue
		}

		quiz := &models.Quiz{Title: strings.TrimSpace(sheet)}
		if err := s.validator.Validate(quiz); err != nil {
			result.Errors = append(result.Errors, ImportError{
				Sheet:   sheet,
				Message: fmt.Sprintf("invalid quiz title: %v", err),
			})
			continue
		}

		if err := s.repo.Quiz().CreateWithQuestions(ctx, quiz, questions); err != nil {
			s.logger.Error("Failed to persist imported quiz", "sheet", sheet, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
		}

		s.logger.Info("Imported quiz",
			"quiz_id", quiz.ID,
			"title", quiz.Title,
			"questions", len(questions))
		result.QuizIDs = append(result.QuizIDs, quiz.ID)
	}

	return result, nil
}

func (s *importService) parseQuestionRow(row []string, orderIndex int) (*models.Question, string) {
	if len(row) < 3 || strings.TrimSpace(row[0]) == "" {
		return nil, "missing question text or options"
	}

	text := strings.TrimSpace(row[0])

	var optionTexts []string
	for col := 1; col <= maxImportOptions && col < len(row); col++ {
		if value := strings.TrimSpace(row[col]); value != "" {
			optionTexts = append(optionTexts, value)
		}
	}
	if len(optionTexts) < 2 {
		return nil, "a question needs at least two options"
	}

	correctCol := 1 + maxImportOptions
	if len(row) <= correctCol || strings.TrimSpace(row[correctCol]) == "" {
		return nil, "missing correct answer letter"
	}
	letter := strings.ToUpper(strings.TrimSpace(row[correctCol]))

	correctIndex := -1
	for i, l := range optionLetters {
		if l == letter {
			correctIndex = i
			break
		}
	}
	if correctIndex < 0 || correctIndex >= len(optionTexts) {
		return nil, fmt.Sprintf("correct answer %q does not match any option", letter)
	}

	options := make([]models.QuestionOption, 0, len(optionTexts))
	for i, value := range optionTexts {
		options = append(options, models.QuestionOption{
			Text:      value,
			IsCorrect: i == correctIndex,
		})
	}
	if err := s.validator.ValidateOptions(options); err != nil {
		return nil, err.Error()
	}

	encoded, err := models.EncodeOptions(options)
	if err != nil {
		return nil, fmt.Sprintf("failed to encode options: %v", err)
	}

	return &models.Question{
		Text:       text,
		OrderIndex: orderIndex,
		Options:    encoded,
	}, ""
}
