package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"stunden/internal/core"
)

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.isAuthorized(r) {
		slog.WarnContext(r.Context(), "Unauthorized entry create", "url", r.URL.Path)
		NewHTMXResponse().
			Status(http.StatusUnauthorized).
			HTML(`<div class="error">Nicht autorisiert</div>`).
			Write(w)
		return
	}

	date, description, hours, err := parseEntryForm(r)
	if err != nil {
		NewHTMXResponse().
			Status(http.StatusUnprocessableEntity).
			HTML(`<div class="error">Ungültige Eingabe: ` + template.HTMLEscapeString(err.Error()) + `</div>`).
			Write(w)
		return
	}

	d, err := s.svc.AddEntry(r.Context(), date, description, hours)
	if err != nil {
		if errors.Is(err, core.ErrInvalidDate) || errors.Is(err, core.ErrInvalidHours) {
			NewHTMXResponse().
				Status(http.StatusUnprocessableEntity).
				HTML(`<div class="error">Ungültige Eingabe</div>`).
				Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Entry create error", "error", err, "date", date.String())
		NewHTMXResponse().
			Status(http.StatusInternalServerError).
			HTML(`<div class="error">Fehler beim Speichern</div>`).
			Write(w)
		return
	}

	NewHTMXResponse().
		TriggerEntryCreated().
		TriggerOverviewRefresh().
		HTML(`<div class="success">Eintrag gespeichert: ` +
			template.HTMLEscapeString(description) +
			`, ` + formatHours(hours) + `h (` + date.String() + `), insgesamt ` +
			formatHours(d.Usage.Used) + `h</div>`).
		Write(w)
}

func (s *Server) handleSaveBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.isAuthorized(r) {
		slog.WarnContext(r.Context(), "Unauthorized batch save", "url", r.URL.Path)
		NewHTMXResponse().
			Status(http.StatusUnauthorized).
			HTML(`<div class="error">Nicht autorisiert</div>`).
			Write(w)
		return
	}

	candidate, err := parseBatchPayload(r)
	if err != nil {
		NewHTMXResponse().
			Status(http.StatusUnprocessableEntity).
			HTML(`<div class="error">Ungültige Tabelle: ` + template.HTMLEscapeString(err.Error()) + `</div>`).
			Write(w)
		return
	}

	d, err := s.svc.SaveBatch(r.Context(), candidate)
	if err != nil {
		if errors.Is(err, core.ErrInvalidDate) || errors.Is(err, core.ErrInvalidHours) {
			NewHTMXResponse().
				Status(http.StatusUnprocessableEntity).
				HTML(`<div class="error">Ungültige Tabelle</div>`).
				Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Batch save error", "error", err, "rows", len(candidate))
		NewHTMXResponse().
			Status(http.StatusInternalServerError).
			HTML(`<div class="error">Fehler beim Speichern</div>`).
			Write(w)
		return
	}

	NewHTMXResponse().
		TriggerBatchSaved(len(d.Entries)).
		TriggerOverviewRefresh().
		HTML(`<div class="success">Änderungen gespeichert</div>`).
		Write(w)
}
