package control

import (
	"time"

	"github.com/Exca-DK/relay-util/utils"
	"github.com/Exca-DK/relay-util/workers/producer"
)

// RunStats describes one completed run. Published on the controller's
// completion feed.
type RunStats struct {
	Id      utils.UUID
	Units   int
	Sent    int
	Skipped int
	Err     error

	CreatedAt  time.Time
	StartedAt  time.Time
	FinishedAt time.Time
}

func newRunStats(id utils.UUID, stats producer.RunStats) RunStats {
	return RunStats{
		Id:         id,
		Units:      stats.Units,
		Sent:       stats.Sent,
		Skipped:    stats.Skipped,
		Err:        stats.Err,
		CreatedAt:  stats.CreatedAt,
		StartedAt:  stats.StartedAt,
		FinishedAt: stats.FinishedAt,
	}
}
