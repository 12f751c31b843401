package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/domain"
	"github.com/aussiebroadwan/qrhub/pkg/httpx"
	"github.com/aussiebroadwan/qrhub/pkg/qrsdk"
)

const msgConflict = "Record was modified concurrently, retry."

func writeError(w http.ResponseWriter, status int, code, message string) {
	httpx.WriteJSON(w, status, qrsdk.ErrorResponse{Error: code, Message: message})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, qrsdk.ErrorCodeInvalidRequest, message)
}

func writeBadJSON(w http.ResponseWriter) {
	writeBadRequest(w, "Invalid JSON in request body.")
}

// writeServerError logs err and answers 500 without echoing it.
func writeServerError(w http.ResponseWriter, log *slog.Logger, msg string, err error) {
	log.Error(msg, slog.Any("error", err))
	writeError(w, http.StatusInternalServerError, qrsdk.ErrorCodeServerError, "Internal server error.")
}

// flexString accepts a JSON string or number. Older clients send the
// verification code as a number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func userView(a domain.Account) qrsdk.User {
	return qrsdk.User{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Birthday:  a.Birthday,
		Verified:  a.Verified,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func scanEventViews(events []domain.ScanEvent) []qrsdk.ScanEvent {
	out := make([]qrsdk.ScanEvent, 0, len(events))
	for _, ev := range events {
		v := qrsdk.ScanEvent{
			Timestamp: ev.Timestamp,
			UserAgent: ev.UserAgent,
			Browser:   ev.Browser,
			OS:        ev.OS,
			Device:    string(ev.Device),
			IP:        ev.IP,
		}
		if ev.Location != nil {
			loc := qrsdk.Location(*ev.Location)
			v.Location = &loc
		}
		out = append(out, v)
	}
	return out
}

func projectView(p domain.Project) qrsdk.Project {
	return qrsdk.Project{
		ID:         p.ID,
		Name:       p.Name,
		Text:       p.Payload,
		QRImage:    p.QRImage,
		FgColor:    p.FgColor,
		BgColor:    p.BgColor,
		ScanCount:  p.ScanCount,
		ScanEvents: scanEventViews(p.ScanEvents),
		UserID:     p.OwnerID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
