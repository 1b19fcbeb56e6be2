package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"stunden/internal/services"
)

type sliceView struct {
	Label   string
	Hours   string
	Percent int
}

type weeklyRowView struct {
	Week  string
	Hours string
	Width int
}

type entryRowView struct {
	ID          int64
	Date        string
	Description string
	Hours       string
}

type dashboardView struct {
	Quota         string
	Used          string
	Remaining     string
	Percent       string
	ProgressWidth int // clamped to 100 for the bar
	Donut         []sliceView
	Weekly        []weeklyRowView
	Entries       []entryRowView
	HasData       bool
	IsAuthorized  bool
	// Secret is echoed into the editor forms so subsequent writes
	// carry it; empty unless the request was already authorized.
	Secret string
}

// buildDashboardView formats the service's view model for the templates.
func buildDashboardView(d services.Dashboard, authorized bool) dashboardView {
	view := dashboardView{
		Quota:        formatHours(d.Usage.Quota),
		Used:         formatHours(d.Usage.Used),
		Remaining:    formatHours(d.Usage.Remaining),
		Percent:      formatHours(d.Usage.PercentUsed),
		HasData:      d.HasData(),
		IsAuthorized: authorized,
	}

	view.ProgressWidth = int(d.Usage.PercentUsed)
	if view.ProgressWidth > 100 {
		view.ProgressWidth = 100
	}
	if view.ProgressWidth < 0 {
		view.ProgressWidth = 0
	}

	total := d.Usage.Used + d.Usage.Remaining
	for _, s := range d.Donut {
		percent := 0
		if total > 0 {
			percent = int(s.Hours/total*100 + 0.5)
		}
		view.Donut = append(view.Donut, sliceView{
			Label:   s.Label,
			Hours:   formatHours(s.Hours),
			Percent: percent,
		})
	}

	var maxWeek float64
	for _, b := range d.Weekly {
		if b.Hours > maxWeek {
			maxWeek = b.Hours
		}
	}
	for _, b := range d.Weekly {
		width := 0
		if maxWeek > 0 && b.Hours > 0 {
			width = int(b.Hours/maxWeek*100 + 0.5)
			if width < 2 { // ensure visibility for very small values
				width = 2
			}
		}
		view.Weekly = append(view.Weekly, weeklyRowView{
			Week:  b.WeekStart.String(),
			Hours: formatHours(b.Hours),
			Width: width,
		})
	}

	for _, e := range d.Entries {
		view.Entries = append(view.Entries, entryRowView{
			ID:          e.ID,
			Date:        e.Date.String(),
			Description: e.Description,
			Hours:       formatHours(e.Hours),
		})
	}

	return view
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.1f", h)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	d, err := s.svc.LoadDashboard(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard load error", "error", err)
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}

	view := buildDashboardView(d, s.isAuthorized(r))
	if view.IsAuthorized {
		view.Secret = s.adminPassword
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleUsageOverview renders the metrics+charts partial.
func (s *Server) handleUsageOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	d, err := s.svc.LoadDashboard(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Usage overview error", "error", err)
		_, _ = w.Write([]byte(`<section id="usage-overview" class="usage-overview"><div class="placeholder">Fehler beim Laden</div></section>`))
		return
	}

	view := buildDashboardView(d, s.isAuthorized(r))
	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="usage-overview" class="usage-overview"><div class="placeholder">Genutzt: ` + view.Used + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "usage_overview.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "usage_overview.html")
		_, _ = w.Write([]byte(`<section id="usage-overview" class="usage-overview"><div class="placeholder">Fehler beim Rendern</div></section>`))
	}
}
