package report

import (
	"time"

	"github.com/pantry/backend/internal/domain/fiscal"
	"github.com/pantry/backend/internal/domain/reconciliation"
)

// Query selects the report period and page. Month takes precedence
// over Anchor when both are set; when neither is set the current
// period is used.
type Query struct {
	Month    string    // "2006-01" period label
	Anchor   time.Time // any date inside the wanted period
	Page     int
	PageSize int
}

// Response is one page of the reconciliation report
type Response struct {
	Period       fiscal.Period                 `json:"period"`
	Rows         []reconciliation.Row          `json:"data"`
	Totals       reconciliation.Totals         `json:"totals"`
	Skipped      []reconciliation.SkippedEntry `json:"skipped,omitempty"`
	SkippedCount int                           `json:"skipped_count"`
	Total        int                           `json:"total"`
	Current      int                           `json:"current"`
	PageSize     int                           `json:"page_size"`
	FromCache    bool                          `json:"-"`
}
