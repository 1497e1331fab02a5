// Package estimate computes live distance/cost previews during shipment
// authoring, mirroring the backend's pricing rules so the preview shown before
// submission matches the value the backend derives after it.
package estimate

import (
	"sync"

	"github.com/shiptrace/tracking-engine/internal/core/domain"
	"github.com/shiptrace/tracking-engine/internal/core/geo"
)

// Engine mirrors the creation form's estimation state. Every setter recomputes
// the preview synchronously; the preview disappears the instant any required
// input becomes invalid or empty. Nothing is cached across distinct inputs.
type Engine struct {
	mu          sync.Mutex
	origin      *domain.Coordinate
	destination *domain.Coordinate
	weightKg    float64

	preview *domain.CostPreview
}

func NewEngine() *Engine {
	return &Engine{}
}

// SetOrigin sets or replaces the origin. An invalid coordinate clears it.
func (e *Engine) SetOrigin(c domain.Coordinate) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if c.Valid() {
		e.origin = &c
	} else {
		e.origin = nil
	}
	e.recompute()
}

// SetDestination sets or replaces the destination. An invalid coordinate
// clears it.
func (e *Engine) SetDestination(c domain.Coordinate) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if c.Valid() {
		e.destination = &c
	} else {
		e.destination = nil
	}
	e.recompute()
}

// SetWeight sets the package weight in kilograms.
func (e *Engine) SetWeight(kg float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.weightKg = kg
	e.recompute()
}

// ClearOrigin removes the origin and with it the preview.
func (e *Engine) ClearOrigin() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.origin = nil
	e.recompute()
}

// ClearDestination removes the destination and with it the preview.
func (e *Engine) ClearDestination() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.destination = nil
	e.recompute()
}

// DistanceKm returns the current route distance once both endpoints are set.
func (e *Engine) DistanceKm() (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.origin == nil || e.destination == nil {
		return 0, false
	}
	return geo.DistanceKm(*e.origin, *e.destination), true
}

// Preview returns the current cost preview. ok is false while any required
// input is missing or non-positive.
func (e *Engine) Preview() (domain.CostPreview, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.preview == nil {
		return domain.CostPreview{}, false
	}
	return *e.preview, true
}

// recompute derives the preview from current inputs. Caller holds e.mu.
func (e *Engine) recompute() {
	e.preview = nil
	if e.origin == nil || e.destination == nil {
		return
	}
	distance := geo.DistanceKm(*e.origin, *e.destination)
	total, ok := geo.EstimateCost(distance, e.weightKg)
	if !ok {
		return
	}
	e.preview = &domain.CostPreview{
		DistanceKm: distance,
		WeightKg:   e.weightKg,
		TotalCost:  total,
	}
}
