package sourcemap

import (
	"fmt"

	"github.com/probelab/diaglens/internal/diag"
)

// LocationFormatter renders resolved source locations as
// file:line:column strings with 1-based numbers. It implements
// diag.LocationFormatter.
type LocationFormatter struct{}

// FormatLocation formats a resolved location for display.
func (LocationFormatter) FormatLocation(loc diag.ResolvedLocation) string {
	return fmt.Sprintf("%s:%d:%d", loc.URL, loc.Line+1, loc.Column+1)
}
