package model

import (
	"time"

	"github.com/osint-lab/casetrail/pkg/domain/types"
)

// TimelineEvent is one entry of the case activity log. Events are produced
// as side effects of other mutations; callers never append them directly
// except for the initial "created" event.
type TimelineEvent struct {
	Type        types.EventType `json:"type"`
	Timestamp   time.Time       `json:"timestamp"`
	Description string          `json:"description"`
}
