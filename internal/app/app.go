package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"ai-grocery-list/internal/api"
	"ai-grocery-list/internal/config"
	"ai-grocery-list/internal/database"
	"ai-grocery-list/internal/grocery"
	"ai-grocery-list/internal/llm"
	"ai-grocery-list/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// App holds the application's dependencies.
type App struct {
	cfg          *config.Config
	logger       *zap.Logger
	textGen      llm.TextGenerator
	repo         grocery.Repository
	metricsStore *metrics.Store // nil with in-memory storage
	db           *database.DB   // nil with in-memory storage
	generator    *grocery.Generator
}

// NewApp creates an App from already-built dependencies. metricsStore and db
// may be nil.
func NewApp(
	cfg *config.Config,
	logger *zap.Logger,
	textGen llm.TextGenerator,
	repo grocery.Repository,
	metricsStore *metrics.Store,
	db *database.DB,
) *App {
	var recorder grocery.MetricsRecorder
	if metricsStore != nil {
		recorder = metricsStore
	}
	return &App{
		cfg:          cfg,
		logger:       logger,
		textGen:      textGen,
		repo:         repo,
		metricsStore: metricsStore,
		db:           db,
		generator:    grocery.NewGenerator(textGen, repo, recorder, logger),
	}
}

// Bootstrap builds the model client and the configured storage.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	textGen, err := llm.NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s client: %w", cfg.LLMProvider, err)
	}

	if cfg.StorageDriver == config.StorageMemory {
		logger.Info("using in-memory storage; records are lost on exit")
		return NewApp(cfg, logger, textGen, grocery.NewMemoryRepository(), nil, nil), nil
	}

	db, err := database.NewDB(cfg.DatabasePath, logger)
	if err != nil {
		closeGenerator(textGen)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return NewApp(cfg, logger, textGen, grocery.NewSQLRepository(db.SQL), metrics.NewStore(db.SQL), db), nil
}

// Close releases the model client and the database.
func (a *App) Close() error {
	closeGenerator(a.textGen)
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func closeGenerator(textGen llm.TextGenerator) {
	if c, ok := textGen.(llm.Closer); ok {
		_ = c.Close()
	}
}

// Router returns the HTTP handler for the API.
func (a *App) Router() *gin.Engine {
	var usage api.UsageReader
	var dbPath string
	if a.metricsStore != nil {
		usage = a.metricsStore
	}
	if a.db != nil {
		dbPath = a.db.Path
	}
	return api.SetupRouter(api.NewHandler(a.generator, a.repo, usage, dbPath, a.logger), a.logger)
}

// GenerateFromFile reads a meal plan JSON file, generates its grocery list and
// prints it to w.
func (a *App) GenerateFromFile(ctx context.Context, path string, w io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read meal plan: %w", err)
	}

	var plan grocery.MealPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return fmt.Errorf("%w: %v", grocery.ErrInvalidMealPlan, err)
	}

	result, err := a.generator.Generate(ctx, plan)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "=== GROCERY LIST #%d ===\n", result.RecordID)
	printGroceryList(w, result.GroceryList)
	return nil
}

// ShowRecord prints a stored meal plan and its grocery list.
func (a *App) ShowRecord(ctx context.Context, id int64, w io.Writer) error {
	rec, err := a.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("grocery list %d not found", id)
	}

	fmt.Fprintf(w, "=== MEAL PLAN #%d (%s) ===\n", rec.ID, rec.CreatedAt.Format("2006-01-02 15:04"))
	for _, day := range rec.MealPlan().Days() {
		if strings.TrimSpace(day.Meals.Lunch) == "" && strings.TrimSpace(day.Meals.Dinner) == "" {
			continue
		}
		fmt.Fprintf(w, "%-10s lunch: %s | dinner: %s\n", day.Name, orDash(day.Meals.Lunch), orDash(day.Meals.Dinner))
	}
	if rec.NumberOfPeople != nil {
		fmt.Fprintf(w, "People: %d\n", *rec.NumberOfPeople)
	}

	fmt.Fprintln(w, "\n=== GROCERY LIST ===")
	printGroceryList(w, rec.GroceryList)
	return nil
}

// CleanupMetrics removes metric rows older than days.
func (a *App) CleanupMetrics(ctx context.Context, days int) (int64, error) {
	if a.metricsStore == nil {
		return 0, fmt.Errorf("metrics are only stored with the %s storage driver", config.StorageSQLite)
	}
	return a.metricsStore.Cleanup(ctx, days)
}

func printGroceryList(w io.Writer, list grocery.GroceryList) {
	for _, c := range list.Categories {
		fmt.Fprintf(w, "\n%s\n", c.Name)
		for _, item := range c.Items {
			fmt.Fprintf(w, "- %s\n", item)
		}
	}
}

func orDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return s
}
