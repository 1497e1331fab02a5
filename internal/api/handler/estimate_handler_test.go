package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shiptrace/tracking-engine/internal/core/domain"
	"github.com/shiptrace/tracking-engine/internal/core/ports"
)

type stubEstimateService struct {
	previewFn  func(input ports.EstimateInput) (*ports.EstimateResult, error)
	positionFn func(ctx context.Context) (domain.Coordinate, error)
	resolveFn  func(ctx context.Context, address string) (domain.Coordinate, error)
}

func (s *stubEstimateService) PreviewEstimate(input ports.EstimateInput) (*ports.EstimateResult, error) {
	return s.previewFn(input)
}

func (s *stubEstimateService) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	return s.positionFn(ctx)
}

func (s *stubEstimateService) ResolveAddress(ctx context.Context, address string) (domain.Coordinate, error) {
	return s.resolveFn(ctx, address)
}

func newEstimateContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestEstimateHandler_Preview_Success(t *testing.T) {
	stub := &stubEstimateService{
		previewFn: func(input ports.EstimateInput) (*ports.EstimateResult, error) {
			if input.WeightKg != 12.5 {
				t.Fatalf("unexpected weight: %v", input.WeightKg)
			}
			return &ports.EstimateResult{Preview: domain.CostPreview{
				DistanceKm: 42.3,
				WeightKg:   12.5,
				TotalCost:  1892,
			}}, nil
		},
	}
	handler := NewEstimateHandler(stub)

	body := `{"origin":{"lat":-1.0,"lng":36.0},"destination":{"lat":-1.3,"lng":36.4},"weight_kg":12.5}`
	c, rec := newEstimateContext(t, http.MethodPost, "/v1/estimates/preview", body)

	if err := handler.Preview(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total_cost"] != float64(1892) || resp["distance_km"] != 42.3 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestEstimateHandler_Preview_MissingWeight(t *testing.T) {
	stub := &stubEstimateService{
		previewFn: func(input ports.EstimateInput) (*ports.EstimateResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewEstimateHandler(stub)

	body := `{"origin":{"lat":-1.0,"lng":36.0},"destination":{"lat":-1.3,"lng":36.4}}`
	c, _ := newEstimateContext(t, http.MethodPost, "/v1/estimates/preview", body)

	err := handler.Preview(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestEstimateHandler_Preview_OutOfRangeCoordinate(t *testing.T) {
	handler := NewEstimateHandler(&stubEstimateService{
		previewFn: func(input ports.EstimateInput) (*ports.EstimateResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	body := `{"origin":{"lat":95.0,"lng":36.0},"destination":{"lat":-1.3,"lng":36.4},"weight_kg":5}`
	c, _ := newEstimateContext(t, http.MethodPost, "/v1/estimates/preview", body)

	err := handler.Preview(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestEstimateHandler_Preview_InsufficientData(t *testing.T) {
	handler := NewEstimateHandler(&stubEstimateService{
		previewFn: func(input ports.EstimateInput) (*ports.EstimateResult, error) {
			return nil, domain.ErrInsufficientData
		},
	})

	body := `{"origin":{"lat":-1.0,"lng":36.0},"destination":{"lat":-1.0,"lng":36.0},"weight_kg":5}`
	c, _ := newEstimateContext(t, http.MethodPost, "/v1/estimates/preview", body)

	err := handler.Preview(c)
	if !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestEstimateHandler_Geocode_Success(t *testing.T) {
	handler := NewEstimateHandler(&stubEstimateService{
		resolveFn: func(ctx context.Context, address string) (domain.Coordinate, error) {
			if address != "Moi Avenue, Nairobi" {
				t.Fatalf("unexpected address: %s", address)
			}
			return domain.Coordinate{Lat: -1.284, Lng: 36.824}, nil
		},
	})

	body := `{"address":"Moi Avenue, Nairobi"}`
	c, rec := newEstimateContext(t, http.MethodPost, "/v1/estimates/geocode", body)

	if err := handler.Geocode(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["lat"] != -1.284 || resp["lng"] != 36.824 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestEstimateHandler_Geocode_EmptyAddress(t *testing.T) {
	handler := NewEstimateHandler(&stubEstimateService{
		resolveFn: func(ctx context.Context, address string) (domain.Coordinate, error) {
			t.Fatalf("should not be called")
			return domain.Coordinate{}, nil
		},
	})

	c, _ := newEstimateContext(t, http.MethodPost, "/v1/estimates/geocode", `{"address":""}`)

	err := handler.Geocode(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestEstimateHandler_Position_PermissionDenied(t *testing.T) {
	handler := NewEstimateHandler(&stubEstimateService{
		positionFn: func(ctx context.Context) (domain.Coordinate, error) {
			return domain.Coordinate{}, domain.ErrLocationPermissionDenied
		},
	})

	c, _ := newEstimateContext(t, http.MethodGet, "/v1/estimates/position", "")
	err := handler.Position(c)
	if !errors.Is(err, domain.ErrLocationPermissionDenied) {
		t.Fatalf("expected ErrLocationPermissionDenied, got %v", err)
	}
}

func TestEstimateHandler_Position_Success(t *testing.T) {
	handler := NewEstimateHandler(&stubEstimateService{
		positionFn: func(ctx context.Context) (domain.Coordinate, error) {
			return domain.Coordinate{Lat: -1.30, Lng: 36.82}, nil
		},
	})

	c, rec := newEstimateContext(t, http.MethodGet, "/v1/estimates/position", "")
	if err := handler.Position(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
