package handler

// --- Request / Response types ---

type coordinateRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type previewEstimateRequest struct {
	Origin      coordinateRequest `json:"origin"      validate:"required"`
	Destination coordinateRequest `json:"destination" validate:"required"`
	WeightKg    float64           `json:"weight_kg"   validate:"required,gt=0"`
}

type previewEstimateResponse struct {
	DistanceKm float64 `json:"distance_km"`
	WeightKg   float64 `json:"weight_kg"`
	// TotalCost is in whole currency units, matching the backend's rounding.
	TotalCost int64 `json:"total_cost"`
}

type geocodeRequest struct {
	Address string `json:"address" validate:"required,min=3"`
}

type coordinateResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
