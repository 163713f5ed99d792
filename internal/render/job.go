package render

import (
	"time"

	"github.com/google/uuid"
)

// Job identifies one in-flight render request in logs.
type Job struct {
	ID      string
	PUUID   string
	Started time.Time
}

func newJob(puuid string) Job {
	return Job{
		ID:      uuid.NewString(),
		PUUID:   puuid,
		Started: time.Now(),
	}
}
