package output

import (
	"fmt"
	"time"

	"github.com/ukaji3/cellcount-go/pkg/cellcount"
)

// FileName returns the export file name for a calculation made at t.
func FileName(t time.Time, format cellcount.Format) string {
	return fmt.Sprintf("cell_calculation_%s.%s", t.Format("20060102_1504"), format.Ext())
}
