// Command plan prints a travel plan or a geocoding result without starting the HTTP server.
//
//	go run ./scripts -city Bandung -interests kuliner,alam -duration 2 -budget menengah
//	go run ./scripts -geocode "Monas, Jakarta"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/FACorreiaa/go-travel-planner-ai/config"
	"github.com/FACorreiaa/go-travel-planner-ai/internal/container"
	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

var (
	city      = flag.String("city", "", "city to plan the trip in")
	interests = flag.String("interests", "", "comma-separated interests, e.g. sejarah,kuliner")
	duration  = flag.Int("duration", 1, "trip length in days")
	budget    = flag.String("budget", types.BudgetMedium, "rendah, menengah or tinggi")
	start     = flag.String("start", "", "optional start location")
	geocode   = flag.String("geocode", "", "only geocode this location and exit")
	timeout   = flag.Duration("timeout", 3*time.Minute, "overall timeout")
)

func main() {
	flag.Parse()
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo, TimeFormat: time.Kitchen}))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c, err := container.NewContainer(ctx, &cfg, logger)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	if *geocode != "" {
		coords, err := c.Geocoder.Geocode(ctx, *geocode)
		if err != nil {
			log.Fatalf("geocode %q: %v", *geocode, err)
		}
		printJSON(coords)
		return
	}

	if *city == "" {
		flag.Usage()
		os.Exit(2)
	}
	prefs := types.TravelPreferences{
		City:      *city,
		Interests: splitInterests(*interests),
		Duration:  *duration,
		Budget:    *budget,
	}
	if *start != "" {
		prefs.StartLocation = start
	}

	plan, err := c.TravelPlanService.CreatePlan(ctx, prefs)
	if err != nil {
		log.Fatalf("create plan: %v", err)
	}
	printJSON(plan)
}

func splitInterests(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
