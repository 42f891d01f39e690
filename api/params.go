package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

const maxBodyBytes = 1 << 20

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", models.ErrInvalidRequest, err)
	}
	return nil
}

func queryFloat(r *http.Request, name string) (float64, bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, true, fmt.Errorf("%w: %s must be a number, got %q", models.ErrInvalidRequest, name, raw)
	}
	return v, true, nil
}

// queryPoint reads the required lat and lng parameters.
func queryPoint(r *http.Request) (models.GeoPoint, error) {
	lat, ok, err := queryFloat(r, "lat")
	if err != nil {
		return models.GeoPoint{}, err
	}
	if !ok {
		return models.GeoPoint{}, fmt.Errorf("%w: lat is required", models.ErrInvalidRequest)
	}
	lng, ok, err := queryFloat(r, "lng")
	if err != nil {
		return models.GeoPoint{}, err
	}
	if !ok {
		return models.GeoPoint{}, fmt.Errorf("%w: lng is required", models.ErrInvalidRequest)
	}
	p := models.GeoPoint{Lat: lat, Lng: lng}
	return p, p.Validate()
}
