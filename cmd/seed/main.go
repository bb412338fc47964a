package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"janmanch/internal/catalog"
	"janmanch/internal/config"
	"janmanch/internal/domain/models"
	"janmanch/internal/repository/kv"
	"janmanch/internal/service/board"
)

// Demo content posted into the local store so the API has something to
// serve on a fresh checkout.
var demoProblems = []struct {
	title    string
	content  string
	category string // slug
	solution string
	comment  string
}{
	{
		title:    "No water supply in Shastri Nagar since Monday",
		content:  "The entire block has had no municipal water for three days now. Tankers are charging extra and older residents cannot queue for them.",
		category: "water-supply",
		solution: "The valve on the Shastri Nagar feeder line was closed for repair work. Call the ward office and ask for the repair completion date; they reopened it within a day last time.",
		comment:  "Same situation two streets over. Following this thread.",
	},
	{
		title:    "Street lights out on the ring road stretch",
		content:  "About fifteen consecutive poles between the flyover and the mandi gate have been dark for two weeks. The stretch is unsafe after evening.",
		category: "electricity",
		solution: "Register the pole numbers on the discom helpline; they track outages per pole. Worked for our colony in under a week.",
		comment:  "Pole numbers are printed on the yellow plate at eye level.",
	},
	{
		title:    "Garbage pickup skipping the old city lanes",
		content:  "The collection van has not entered the narrow lanes near the clock tower for over a month. Waste is piling at the corner bins and spilling over.",
		category: "waste-management",
		solution: "",
		comment:  "It did come last Thursday, but only to the main road end.",
	},
}

func main() {
	clear := flag.Bool("clear", false, "Remove the existing store file before seeding (fresh start)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *clear {
		log.Fatalf("BLOCKED: cannot run -clear in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clear {
		if err := os.Remove(cfg.StorePath); err != nil && !os.IsNotExist(err) {
			log.Fatalf("Failed to remove store: %v", err)
		}
		log.Printf("Cleared store %s", cfg.StorePath)
	}

	store, err := kv.Open(cfg.StorePath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	categories, err := catalog.New()
	if err != nil {
		log.Fatalf("Failed to load category catalog: %v", err)
	}

	boardService := board.New(board.Config{
		Problems:  kv.NewProblemRepository(store),
		Solutions: kv.NewSolutionRepository(store),
		Comments:  kv.NewCommentRepository(store),
		Catalog:   categories,
		Logger:    logger,
	})

	reporter := &models.User{
		ID:        "seed-reporter",
		Name:      "Demo Reporter",
		Email:     "reporter@example.com",
		CreatedAt: time.Now(),
	}
	responder := &models.User{
		ID:        "seed-responder",
		Name:      "Demo Responder",
		Email:     "responder@example.com",
		CreatedAt: time.Now(),
	}

	ctx := context.Background()
	for _, d := range demoProblems {
		category, err := boardService.GetCategoryBySlug(d.category)
		if err != nil {
			log.Fatalf("Unknown seed category %q: %v", d.category, err)
		}

		problem, err := boardService.CreateProblem(ctx, reporter, &board.CreateProblemRequest{
			Title:      d.title,
			Content:    d.content,
			CategoryID: category.ID,
		})
		if err != nil {
			log.Fatalf("Failed to seed problem: %v", err)
		}

		if d.solution != "" {
			if _, err := boardService.CreateSolution(ctx, responder, &board.CreateSolutionRequest{
				Content:   d.solution,
				ProblemID: problem.ID,
			}); err != nil {
				log.Fatalf("Failed to seed solution: %v", err)
			}
		}

		if d.comment != "" {
			if _, err := boardService.CreateComment(ctx, responder, &board.CreateCommentRequest{
				Content:    d.comment,
				ParentType: models.ParentProblem,
				ParentID:   problem.ID,
			}); err != nil {
				log.Fatalf("Failed to seed comment: %v", err)
			}
		}
	}

	log.Printf("Seeded %d problems into %s", len(demoProblems), cfg.StorePath)
}
