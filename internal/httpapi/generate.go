package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/p-n-ai/pai-thanawi/internal/practice"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type generateRequest struct {
	UserType             string  `json:"userType"`
	Level                string  `json:"level"`
	Branch               string  `json:"branch"`
	Subject              string  `json:"subject"`
	QuestionCount        flexInt `json:"questionCount"`
	Difficulty           string  `json:"difficulty"`
	QuestionType         string  `json:"questionType"`
	IncludeAnswerKey     bool    `json:"includeAnswerKey"`
	IncludeSolutions     bool    `json:"includeSolutions"`
	IncludeMarkingScheme bool    `json:"includeMarkingScheme"`
}

func (g generateRequest) toService() practice.GenerateRequest {
	return practice.GenerateRequest{
		UserType:             g.UserType,
		Level:                g.Level,
		Branch:               g.Branch,
		Subject:              g.Subject,
		QuestionCount:        int(g.QuestionCount),
		Difficulty:           g.Difficulty,
		QuestionType:         g.QuestionType,
		IncludeAnswerKey:     g.IncludeAnswerKey,
		IncludeSolutions:     g.IncludeSolutions,
		IncludeMarkingScheme: g.IncludeMarkingScheme,
	}
}

type generateResponse struct {
	Success         bool    `json:"success"`
	Subject         string  `json:"subject"`
	LevelLabel      string  `json:"levelLabel"`
	BranchLabel     string  `json:"branchLabel"`
	QuestionCount   int     `json:"questionCount"`
	Difficulty      string  `json:"difficulty"`
	DifficultyLabel string  `json:"difficultyLabel"`
	Questions       string  `json:"questions"`
	AnswerKey       *string `json:"answerKey"`
	Solutions       *string `json:"solutions"`
	MarkingScheme   *string `json:"markingScheme"`
	Timestamp       string  `json:"timestamp"`
}

func newGenerateResponse(set practice.Set) generateResponse {
	return generateResponse{
		Success:         true,
		Subject:         set.Subject,
		LevelLabel:      set.LevelLabel,
		BranchLabel:     set.BranchLabel,
		QuestionCount:   set.QuestionCount,
		Difficulty:      set.Difficulty,
		DifficultyLabel: set.DifficultyLabel,
		Questions:       set.QuestionsHTML,
		AnswerKey:       set.AnswerKeyHTML,
		Solutions:       set.SolutionsHTML,
		MarkingScheme:   set.MarkingSchemeHTML,
		Timestamp:       timestamp(),
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	set, ok := s.generate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newGenerateResponse(set))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	set, ok := s.generate(w, r)
	if !ok {
		return
	}

	f, err := practice.ExportWorkbook(set)
	if err != nil {
		slog.Error("export failed", "request_id", RequestIDFrom(r.Context()), "error", err)
		s.writeServerError(w, msgGenerateFail, err)
		return
	}
	defer f.Close()

	name := fmt.Sprintf("questions-%s.xlsx", set.Level)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename=%q; filename*=UTF-8''%s`, name, url.PathEscape(set.Subject+".xlsx")))
	w.WriteHeader(http.StatusOK)
	if _, err := f.WriteTo(w); err != nil {
		slog.Warn("failed to write workbook", "request_id", RequestIDFrom(r.Context()), "error", err)
	}
}

// generate decodes the request and runs the service, writing the error
// response itself when it fails.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) (practice.Set, bool) {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return practice.Set{}, false
	}
	if s.cfg.Practice == nil {
		s.writeServerError(w, msgGenerateFail, errors.New("practice service not configured"))
		return practice.Set{}, false
	}

	set, err := s.cfg.Practice.Generate(r.Context(), req.toService())
	if err != nil {
		var validation *practice.ValidationError
		switch {
		case errors.Is(err, practice.ErrMissingFields):
			writeError(w, http.StatusBadRequest, practice.MsgMissingFields)
		case errors.As(err, &validation):
			writeError(w, http.StatusBadRequest, validation.Message)
		default:
			slog.Error("generate failed", "request_id", RequestIDFrom(r.Context()), "error", err)
			s.writeServerError(w, msgGenerateFail, err)
		}
		return practice.Set{}, false
	}
	return set, true
}
