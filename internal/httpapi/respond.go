package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client-facing messages.
const (
	msgBadRequest    = "صيغة الطلب غير صحيحة"
	msgNotConfigured = "لم يتم إعداد مفتاح API لخدمة الذكاء الاصطناعي"
	msgAskFailed     = "حدث خطأ في معالجة طلبك"
	msgGenerateFail  = "حدث خطأ في إنشاء الأسئلة"
	msgRateLimited   = "لقد تجاوزت عدد الطلبات المسموح به، يرجى المحاولة لاحقًا"
	msgInternal      = "حدث خطأ غير متوقع"
)

// timestampLayout is RFC 3339 in UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

var now = time.Now

func timestamp() string {
	return now().UTC().Format(timestampLayout)
}

type errorBody struct {
	Error   string  `json:"error"`
	Details *string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeServerError hides err unless details are enabled.
func (s *Server) writeServerError(w http.ResponseWriter, msg string, err error) {
	body := errorBody{Error: msg}
	if s.cfg.Development && err != nil {
		d := err.Error()
		body.Details = &d
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

// decodeJSON reads a size-limited JSON body into v. Unknown fields are
// ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after JSON body")
	}
	return nil
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, msgBadRequest)
		return
	}
	writeError(w, http.StatusBadRequest, msgBadRequest)
}
