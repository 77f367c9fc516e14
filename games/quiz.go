package games

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"tpbot/models"
)

//go:embed data/quiz.json
var defaultQuizBank []byte

// ErrEmptyQuizBank is returned when a quiz bank holds no questions
var ErrEmptyQuizBank = errors.New("quiz bank has no questions")

// Question is a single multiple-choice quiz entry
type Question struct {
	Sentence string   `json:"sentence"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
}

// Validate checks the question can be rendered as a fair single-answer prompt
func (q Question) Validate() error {
	if strings.TrimSpace(q.Sentence) == "" {
		return errors.New("question has no sentence")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %q needs at least 2 options", q.Sentence)
	}

	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if _, dup := seen[opt]; dup {
			return fmt.Errorf("question %q repeats option %q", q.Sentence, opt)
		}
		seen[opt] = struct{}{}
	}
	if _, ok := seen[q.Correct]; !ok {
		return fmt.Errorf("question %q does not offer its correct answer %q", q.Sentence, q.Correct)
	}
	return nil
}

// QuizBank is an immutable set of validated questions
type QuizBank struct {
	questions []Question
}

// LoadQuizBank parses and validates a JSON array of questions
func LoadQuizBank(r io.Reader) (*QuizBank, error) {
	var questions []Question
	if err := json.NewDecoder(r).Decode(&questions); err != nil {
		return nil, fmt.Errorf("failed to parse quiz bank: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrEmptyQuizBank
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("invalid question at index %d: %w", i, err)
		}
	}
	return &QuizBank{questions: questions}, nil
}

// LoadQuizBankFile loads a quiz bank from disk, falling back to the built-in bank when path is empty
func LoadQuizBankFile(path string) (*QuizBank, error) {
	if path == "" {
		return DefaultQuizBank(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open quiz bank %s: %w", path, err)
	}
	defer f.Close()

	return LoadQuizBank(f)
}

// DefaultQuizBank returns the built-in question bank
func DefaultQuizBank() *QuizBank {
	bank, err := LoadQuizBank(bytes.NewReader(defaultQuizBank))
	if err != nil {
		panic(fmt.Sprintf("embedded quiz bank is invalid: %v", err))
	}
	return bank
}

// Len returns the number of questions in the bank
func (b *QuizBank) Len() int {
	return len(b.questions)
}

// NewPrompt draws a random question and shuffles its options
func (b *QuizBank) NewPrompt(src Source) Prompt {
	q := b.questions[src.IntN(len(b.questions))]

	options := append([]string(nil), q.Options...)
	Shuffle(src, len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correct := 0
	for i, opt := range options {
		if opt == q.Correct {
			correct = i
			break
		}
	}

	return Prompt{
		Kind:    models.ChallengeKindQuiz,
		Text:    q.Sentence,
		Options: options,
		Correct: correct,
	}
}
