// Package geo contains pure geographic and pricing computations. The formulas
// mirror the backend's bit-for-bit so a client-side preview matches the value
// the backend later derives authoritatively.
package geo

import (
	"math"

	"github.com/shiptrace/tracking-engine/internal/core/domain"
)

const earthRadiusKm = 6371.0

// Pricing constants. Tiered distance cost plus a prorated weight surcharge.
const (
	baseFee = 200.0

	tier1LimitKm = 10.0
	tier2LimitKm = 50.0
	tier1RateKm  = 50.0
	tier2RateKm  = 40.0
	tier3RateKm  = 30.0

	surchargeThresholdKg = 20.0
	surchargePerTenKg    = 20.0
)

// DistanceKm returns the great-circle (haversine) distance in kilometres
// between two points.
func DistanceKm(a, b domain.Coordinate) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// EstimateCost computes the total shipping cost in whole currency units for a
// distance/weight pair. ok is false when either input is missing, non-positive
// or non-finite; callers must not display a preview in that case.
func EstimateCost(distanceKm, weightKg float64) (total int64, ok bool) {
	if !positiveFinite(distanceKm) || !positiveFinite(weightKg) {
		return 0, false
	}

	var distCost float64
	switch {
	case distanceKm <= tier1LimitKm:
		distCost = distanceKm * tier1RateKm
	case distanceKm <= tier2LimitKm:
		distCost = tier1LimitKm*tier1RateKm + (distanceKm-tier1LimitKm)*tier2RateKm
	default:
		distCost = tier1LimitKm*tier1RateKm +
			(tier2LimitKm-tier1LimitKm)*tier2RateKm +
			(distanceKm-tier2LimitKm)*tier3RateKm
	}

	var surcharge float64
	if weightKg > surchargeThresholdKg {
		surcharge = (weightKg - surchargeThresholdKg) / 10 * surchargePerTenKg
	}

	return int64(math.Round(baseFee + distCost + surcharge)), true
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
