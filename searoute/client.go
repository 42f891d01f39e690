package searoute

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

// Client calls a searoute HTTP service:
//
//	GET {base}/route?origin=lng,lat&destination=lng,lat&units=nm
//
// answering with a GeoJSON LineString feature whose properties carry the
// path length. 404 and 422 mean the points are not connected by water.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    int
	backoff    time.Duration
}

type ClientOption func(*Client)

// WithRetries sets how many extra attempts a transport failure gets.
func WithRetries(n int) ClientOption {
	return func(c *Client) { c.retries = n }
}

// WithBackoff sets the linear back-off step between attempts.
func WithBackoff(d time.Duration) ClientOption {
	return func(c *Client) { c.backoff = d }
}

func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		retries:    2,
		backoff:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type feature struct {
	Geometry struct {
		Type        string      `json:"type"`
		Coordinates [][]float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		Length float64 `json:"length"`
		Units  string  `json:"units"`
	} `json:"properties"`
}

// permanentError marks failures that retrying will not fix.
type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

func (c *Client) Resolve(ctx context.Context, origin, destination models.GeoPoint) (Path, error) {
	start := time.Now()
	defer func() {
		log.Printf("Sea path %s -> %s took: %v", origin, destination, time.Since(start))
	}()

	var (
		path Path
		err  error
	)
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			log.Printf("Retrying sea path %s -> %s (attempt %d): %v", origin, destination, attempt+1, err)
			select {
			case <-time.After(time.Duration(attempt) * c.backoff):
			case <-ctx.Done():
				return Path{}, ctx.Err()
			}
		}

		path, err = c.fetch(ctx, origin, destination)
		if err == nil {
			return path, nil
		}
		var perm permanentError
		if errors.As(err, &perm) || ctx.Err() != nil {
			break
		}
	}
	if ctx.Err() != nil {
		return Path{}, ctx.Err()
	}
	return Path{}, err
}

func (c *Client) fetch(ctx context.Context, origin, destination models.GeoPoint) (Path, error) {
	q := url.Values{}
	q.Set("origin", formatLngLat(origin))
	q.Set("destination", formatLngLat(destination))
	q.Set("units", "nm")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/route?"+q.Encode(), nil)
	if err != nil {
		return Path{}, permanentError{fmt.Errorf("error creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Path{}, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusUnprocessableEntity:
		return Path{}, permanentError{ErrNoSeaPath}
	case resp.StatusCode >= 500:
		return Path{}, fmt.Errorf("sea path service returned status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return Path{}, permanentError{fmt.Errorf("sea path service returned status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return Path{}, fmt.Errorf("error reading response: %w", err)
	}

	var f feature
	if err := json.Unmarshal(body, &f); err != nil {
		return Path{}, permanentError{fmt.Errorf("error decoding sea path: %w", err)}
	}
	if f.Geometry.Type != "LineString" || len(f.Geometry.Coordinates) < 2 {
		return Path{}, permanentError{ErrNoSeaPath}
	}

	path := Path{Points: make([]models.GeoPoint, 0, len(f.Geometry.Coordinates))}
	for _, coord := range f.Geometry.Coordinates {
		if len(coord) < 2 {
			return Path{}, permanentError{fmt.Errorf("malformed coordinate %v in sea path", coord)}
		}
		path.Points = append(path.Points, models.GeoPoint{Lat: coord[1], Lng: coord[0]})
	}
	path.LengthNm = toNauticalMiles(f.Properties.Length, f.Properties.Units)
	return path, nil
}

func formatLngLat(p models.GeoPoint) string {
	return strconv.FormatFloat(p.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
}

func toNauticalMiles(length float64, units string) float64 {
	switch units {
	case "km", "kilometers":
		return length / 1.852
	case "mi", "miles":
		return length * 0.868976
	default:
		return length
	}
}
