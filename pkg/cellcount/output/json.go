package output

import (
	"encoding/json"

	"github.com/ukaji3/cellcount-go/pkg/cellcount/models"
)

// ToJSON serializes the record with full precision numbers.
func ToJSON(rec *models.ExportRecord, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(rec, "", "  ")
	}
	return json.Marshal(rec)
}
