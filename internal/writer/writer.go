package writer

import (
	"fmt"
	"strconv"

	"marketdash/internal/model"
)

// Writer persists a full set of dashboard rows in one shot. Implementations
// must apply all rows before saving so a crash mid-run never leaves one row
// half-updated relative to the others.
type Writer interface {
	Write(rows []model.DashboardRow) error
	Dest() string
}

// SchemaError reports a destination store missing required structure.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string { return fmt.Sprintf("%s: %s", e.Path, e.Reason) }

const timeLayout = "2006-01-02 15:04:05"

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
