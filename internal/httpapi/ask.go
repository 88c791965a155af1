package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/p-n-ai/pai-thanawi/internal/tutor"
)

type askRequest struct {
	Question string `json:"question"`
	Level    string `json:"level"`
	Branch   string `json:"branch"`
	Subject  string `json:"subject"`
}

type askResponse struct {
	Success   bool    `json:"success"`
	Question  string  `json:"question"`
	Level     string  `json:"level"`
	Branch    *string `json:"branch"`
	Subject   string  `json:"subject"`
	Response  string  `json:"response"`
	Timestamp string  `json:"timestamp"`
}

// askError keeps the null response field clients check on failure.
type askError struct {
	Error    string  `json:"error"`
	Response *string `json:"response"`
	Details  *string `json:"details,omitempty"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if s.cfg.Tutor == nil {
		writeJSON(w, http.StatusInternalServerError, askError{Error: msgNotConfigured})
		return
	}

	answer, err := s.cfg.Tutor.Answer(r.Context(), tutor.AskRequest{
		Level:    req.Level,
		Branch:   req.Branch,
		Subject:  req.Subject,
		Question: req.Question,
	})
	if err != nil {
		s.writeAskError(w, r, err)
		return
	}

	resp := askResponse{
		Success:   true,
		Question:  answer.Question,
		Level:     req.Level,
		Subject:   req.Subject,
		Response:  answer.Text,
		Timestamp: timestamp(),
	}
	if answer.Branch != "" {
		resp.Branch = &answer.Branch
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeAskError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *tutor.ValidationError
	var upstream *tutor.UpstreamError

	switch {
	case errors.Is(err, tutor.ErrMissingFields):
		writeJSON(w, http.StatusBadRequest, askError{Error: tutor.MsgMissingFields})
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, askError{Error: validation.Message})
	case errors.Is(err, tutor.ErrNotConfigured):
		slog.Error("ask failed: no AI provider", "request_id", RequestIDFrom(r.Context()))
		writeJSON(w, http.StatusInternalServerError, askError{Error: msgNotConfigured})
	case errors.As(err, &upstream):
		slog.Error("ask failed", "request_id", RequestIDFrom(r.Context()), "error", err)
		body := askError{Error: msgAskFailed}
		if s.cfg.Development {
			d := upstream.Err.Error()
			body.Details = &d
		}
		writeJSON(w, http.StatusInternalServerError, body)
	default:
		slog.Error("ask failed", "request_id", RequestIDFrom(r.Context()), "error", err)
		s.writeServerError(w, msgAskFailed, err)
	}
}
