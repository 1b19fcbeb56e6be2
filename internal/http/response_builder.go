package http

import (
	"encoding/json"
	"net/http"
)

// HTMXResponseBuilder provides a fluent API for building HTMX
// responses: HX-Trigger headers plus a body.
type HTMXResponseBuilder struct {
	triggers   map[string]interface{}
	statusCode int
	body       []byte
}

// NewHTMXResponse creates a new response builder with default 200 status.
func NewHTMXResponse() *HTMXResponseBuilder {
	return &HTMXResponseBuilder{
		triggers:   make(map[string]interface{}),
		statusCode: http.StatusOK,
	}
}

// Status sets the HTTP status code for the response.
func (b *HTMXResponseBuilder) Status(code int) *HTMXResponseBuilder {
	b.statusCode = code
	return b
}

// Trigger adds a named trigger with optional data to the HX-Trigger header.
func (b *HTMXResponseBuilder) Trigger(name string, data interface{}) *HTMXResponseBuilder {
	b.triggers[name] = data
	return b
}

// TriggerEntryCreated adds the entry:created trigger.
func (b *HTMXResponseBuilder) TriggerEntryCreated() *HTMXResponseBuilder {
	return b.Trigger("entry:created", struct{}{})
}

// TriggerBatchSaved adds the entries:saved trigger with the applied counts.
func (b *HTMXResponseBuilder) TriggerBatchSaved(total int) *HTMXResponseBuilder {
	return b.Trigger("entries:saved", map[string]int{"total": total})
}

// TriggerOverviewRefresh tells the page to re-render metrics and charts.
func (b *HTMXResponseBuilder) TriggerOverviewRefresh() *HTMXResponseBuilder {
	return b.Trigger("overview:refresh", struct{}{})
}

// HTML sets an HTML snippet as the response body.
func (b *HTMXResponseBuilder) HTML(snippet string) *HTMXResponseBuilder {
	b.body = []byte(snippet)
	return b
}

// Write sends the accumulated headers, status and body.
func (b *HTMXResponseBuilder) Write(w http.ResponseWriter) {
	if len(b.triggers) > 0 {
		if payload, err := json.Marshal(b.triggers); err == nil {
			w.Header().Set("HX-Trigger", string(payload))
		}
	}
	w.WriteHeader(b.statusCode)
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}
