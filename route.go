package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DEEPML1818/MarineTrack-app-sub000/config"
	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

var (
	routeFrom         string
	routeTo           string
	routeSpeed        float64
	routeAlternatives bool
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Calculate one route and print it as JSON",
	Example: `  marinetrack route --from 1.30,103.80 --to 1.26,103.85
  marinetrack route --from 1.30,103.80 --to 1.26,103.85 --speed 12 --alternatives`,
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)

	routeCmd.Flags().StringVar(&routeFrom, "from", "", "Origin as lat,lng")
	routeCmd.Flags().StringVar(&routeTo, "to", "", "Destination as lat,lng")
	routeCmd.Flags().Float64Var(&routeSpeed, "speed", 0, "Speed in knots (default from config)")
	routeCmd.Flags().BoolVar(&routeAlternatives, "alternatives", false, "Include ranked alternative routes")
	routeCmd.MarkFlagRequired("from")
	routeCmd.MarkFlagRequired("to")
}

func runRoute(cmd *cobra.Command, args []string) error {
	origin, err := parsePoint(routeFrom)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	destination, err := parsePoint(routeTo)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	ledger, err := openLedger(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer ledger.Close()

	route, err := newEngine(cfg, ledger).CalculateRoute(cmd.Context(), models.RouteRequest{
		Origin:              origin,
		Destination:         destination,
		SpeedKnots:          routeSpeed,
		IncludeAlternatives: routeAlternatives,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(route)
}

// parsePoint reads "lat,lng".
func parsePoint(s string) (models.GeoPoint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return models.GeoPoint{}, fmt.Errorf("%w: want lat,lng, got %q", models.ErrInvalidCoordinate, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.GeoPoint{}, fmt.Errorf("%w: latitude %q", models.ErrInvalidCoordinate, parts[0])
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.GeoPoint{}, fmt.Errorf("%w: longitude %q", models.ErrInvalidCoordinate, parts[1])
	}
	p := models.GeoPoint{Lat: lat, Lng: lng}
	return p, p.Validate()
}
