// Package id issues the correlation ids for requests and restore runs.
package id

import (
	"fmt"
	"time"

	"github.com/segmentio/ksuid"
)

// Generator creates opaque ids that sort by creation time.
type Generator interface {
	NewID() (string, error)
}

// KSUIDGenerator issues 27 character KSUIDs stamped with its clock.
type KSUIDGenerator struct {
	clock func() time.Time
}

func NewKSUIDGenerator() *KSUIDGenerator {
	return &KSUIDGenerator{clock: time.Now}
}

func (g *KSUIDGenerator) NewID() (string, error) {
	now := time.Now
	if g != nil && g.clock != nil {
		now = g.clock
	}
	v, err := ksuid.NewRandomWithTime(now())
	if err != nil {
		return "", fmt.Errorf("ksuid: %w", err)
	}
	return v.String(), nil
}

// Must returns the next id of g. A failing entropy source yields the nil KSUID rather than no id.
func Must(g Generator) string {
	if v, err := g.NewID(); err == nil {
		return v
	}
	return ksuid.Nil.String()
}
