package utils

import "github.com/google/uuid"

func init() {
	uuid.EnableRandPool()
}

type UUID struct {
	uuid.UUID
}

func NewId() UUID {
	return UUID{uuid.New()}
}

// Short returns the leading segment of the id, enough for log lines.
func (u UUID) Short() string {
	return u.UUID.String()[:8]
}
