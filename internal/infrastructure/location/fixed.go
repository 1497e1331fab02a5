// Package location provides device-position sources for the estimation
// screen's "use current position" action.
package location

import (
	"context"
	"fmt"

	"github.com/shiptrace/tracking-engine/internal/core/domain"
)

// FixedProvider serves a position configured at deploy time, for depot or
// counter terminals whose physical location is known. It never times out and
// never asks for a permission, so the distinguishable failure reasons reduce
// to context cancellation.
type FixedProvider struct {
	pos domain.Coordinate
}

// NewFixedProvider validates and pins the terminal position.
func NewFixedProvider(pos domain.Coordinate) (*FixedProvider, error) {
	if !pos.Valid() {
		return nil, fmt.Errorf("invalid device position (%f, %f)", pos.Lat, pos.Lng)
	}
	return &FixedProvider{pos: pos}, nil
}

func (p *FixedProvider) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinate{}, domain.ErrLocationTimeout
	}
	return p.pos, nil
}
