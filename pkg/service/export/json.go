package export

import (
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/domain/model"
)

// JSON serializes the whole case, pretty-printed with 2-space indentation.
// This is the backup/restore format: unmarshalling the content yields the
// case field-for-field.
func JSON(c *model.Case, now time.Time) (*Product, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to serialize case", goerr.V("case_id", c.ID))
	}
	return &Product{
		Content:  string(data),
		Filename: Filename(c, now, "json"),
		MimeType: "application/json",
	}, nil
}
