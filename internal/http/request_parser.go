package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"stunden/internal/core"
)

// parseEntryForm extracts a new-entry triple (date, description,
// hours) from a submitted form. Malformed dates and non-numeric or
// negative hours are rejected here, before storage is touched.
func parseEntryForm(r *http.Request) (core.Date, string, float64, error) {
	if err := r.ParseForm(); err != nil {
		return core.Date{}, "", 0, fmt.Errorf("parse form: %w", err)
	}

	date, err := core.ParseDate(r.Form.Get("date"))
	if err != nil {
		return core.Date{}, "", 0, err
	}

	hours, err := core.ParseHours(r.Form.Get("hours"))
	if err != nil {
		return core.Date{}, "", 0, err
	}

	return date, sanitizeInput(r.Form.Get("description")), hours, nil
}

// batchRow is one row of the candidate table the editable grid
// submits. A null or missing id marks a newly added row.
type batchRow struct {
	ID          *int64  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
}

type batchPayload struct {
	Rows []batchRow `json:"rows"`
}

const maxBatchBody = 1 << 20 // 1MB

// parseBatchPayload decodes the JSON candidate table from a batch-save
// request into entries the reconciler understands.
func parseBatchPayload(r *http.Request) ([]core.Entry, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBatchBody))
	if err != nil {
		return nil, fmt.Errorf("read batch body: %w", err)
	}

	var payload batchPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode batch payload: %w", err)
	}

	candidate := make([]core.Entry, 0, len(payload.Rows))
	for i, row := range payload.Rows {
		date, err := core.ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if row.Hours < 0 {
			return nil, fmt.Errorf("row %d: %w", i, core.ErrInvalidHours)
		}

		e := core.Entry{
			Date:        date,
			Description: sanitizeInput(row.Description),
			Hours:       row.Hours,
		}
		if row.ID != nil {
			e.ID = *row.ID
		}
		candidate = append(candidate, e)
	}

	return candidate, nil
}
