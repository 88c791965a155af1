// Package practice assembles practice question sets from the question bank
// and renders them as HTML fragments and XLSX workbooks.
package practice

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/p-n-ai/pai-thanawi/internal/curriculum"
	"github.com/p-n-ai/pai-thanawi/internal/events"
	"github.com/p-n-ai/pai-thanawi/internal/questionbank"
)

// Question count bounds.
const (
	MinQuestions = 1
	MaxQuestions = 10
)

// UserTeacher is the only user type that receives answers.
const UserTeacher = "teacher"

// GenerateRequest describes the wanted set.
type GenerateRequest struct {
	UserType             string
	Level                string
	Branch               string
	Subject              string
	QuestionCount        int
	Difficulty           string
	QuestionType         string
	IncludeAnswerKey     bool
	IncludeSolutions     bool
	IncludeMarkingScheme bool
}

// Teacher reports whether the request comes from a teacher.
func (r GenerateRequest) Teacher() bool {
	return strings.TrimSpace(r.UserType) == UserTeacher
}

// Set is a generated question set. Nil fragments are absent from the
// response.
type Set struct {
	Subject         string
	Level           curriculum.Level
	LevelLabel      string
	BranchLabel     string
	QuestionCount   int
	Difficulty      string
	DifficultyLabel string
	Teacher         bool
	Records         []questionbank.Record

	QuestionsHTML     string
	AnswerKeyHTML     *string
	SolutionsHTML     *string
	MarkingSchemeHTML *string
}

// Config holds dependencies for the Service.
type Config struct {
	Curriculum *curriculum.Store
	Bank       *questionbank.Bank
	Events     events.Logger // optional
	// Rand makes selection deterministic in tests. Nil uses the global
	// source.
	Rand *rand.Rand
}

// Service generates question sets.
type Service struct {
	curriculum *curriculum.Store
	bank       *questionbank.Bank
	events     events.Logger

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewService creates a Service. Missing stores behave as empty ones.
func NewService(cfg Config) *Service {
	s := &Service{
		curriculum: cfg.Curriculum,
		bank:       cfg.Bank,
		events:     cfg.Events,
		rng:        cfg.Rand,
	}
	if s.curriculum == nil {
		s.curriculum = curriculum.Empty()
	}
	if s.bank == nil {
		s.bank = questionbank.Empty()
	}
	if s.events == nil {
		s.events = events.Nop{}
	}
	return s
}

// Generate validates the request, samples the bank and renders the set.
// Finding fewer questions than requested is not an error.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (Set, error) {
	if strings.TrimSpace(req.UserType) == "" ||
		strings.TrimSpace(req.Level) == "" ||
		strings.TrimSpace(req.Subject) == "" ||
		req.QuestionCount == 0 {
		return Set{}, ErrMissingFields
	}
	if req.QuestionCount < MinQuestions || req.QuestionCount > MaxQuestions {
		return Set{}, &ValidationError{Message: MsgCountRange}
	}

	if res := s.curriculum.Validate(req.Level, req.Branch, req.Subject); !res.Valid {
		return Set{}, &ValidationError{Message: res.Message}
	}

	level, _ := curriculum.ParseLevel(req.Level)
	var branchLabel string
	if level.HasBranches() {
		branchLabel, _ = s.curriculum.BranchName(level, req.Branch)
	}
	subject := curriculum.Normalize(req.Subject)
	difficulty := questionbank.Difficulty(strings.TrimSpace(req.Difficulty))

	pool := s.bank.Pool(subject, difficulty)
	selected := s.sample(pool, req.QuestionCount)
	if len(selected) < req.QuestionCount {
		slog.Info("question bank short",
			"subject", subject,
			"difficulty", difficulty,
			"requested", req.QuestionCount,
			"found", len(selected),
		)
	}

	teacher := req.Teacher()
	set := Set{
		Subject:         subject,
		Level:           level,
		LevelLabel:      level.Label(),
		BranchLabel:     branchLabel,
		QuestionCount:   len(selected),
		Difficulty:      req.Difficulty,
		DifficultyLabel: difficulty.Label(),
		Teacher:         teacher,
		Records:         selected,
	}

	if err := s.renderSet(&set, req); err != nil {
		return Set{}, err
	}

	events.Record(ctx, s.events, events.Event{
		Type:    events.TypeQuestionsGenerated,
		Level:   string(level),
		Branch:  strings.TrimSpace(req.Branch),
		Subject: subject,
		Data: map[string]any{
			"user_type":     strings.TrimSpace(req.UserType),
			"difficulty":    req.Difficulty,
			"question_type": req.QuestionType,
			"requested":     req.QuestionCount,
			"selected":      len(selected),
		},
	})

	return set, nil
}

func (s *Service) sample(pool []questionbank.Record, n int) []questionbank.Record {
	if s.rng == nil {
		return questionbank.Sample(pool, n, nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return questionbank.Sample(pool, n, s.rng)
}

func (s *Service) renderSet(set *Set, req GenerateRequest) error {
	views := newQuestionViews(set.Records, set.Teacher)

	html, err := render(questionsTemplate, views)
	if err != nil {
		return err
	}
	set.QuestionsHTML = html

	// Answer keys and solutions are for teachers only and need something
	// to list.
	if set.Teacher && len(views) > 0 {
		if req.IncludeAnswerKey {
			html, err := render(answerKeyTemplate, views)
			if err != nil {
				return err
			}
			set.AnswerKeyHTML = &html
		}
		if req.IncludeSolutions {
			html, err := render(solutionsTemplate, views)
			if err != nil {
				return err
			}
			set.SolutionsHTML = &html
		}
	}

	if req.IncludeMarkingScheme {
		html, err := render(markingSchemeTemplate, struct {
			Count  int
			Points string
		}{len(views), PointsPerQuestion(len(views))})
		if err != nil {
			return err
		}
		set.MarkingSchemeHTML = &html
	}
	return nil
}
