package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/surya-health-tech/Glucose-Curve/internal/api"
	"github.com/surya-health-tech/Glucose-Curve/internal/config"
	"github.com/surya-health-tech/Glucose-Curve/internal/filex"
	"github.com/surya-health-tech/Glucose-Curve/internal/logging"
	"github.com/surya-health-tech/Glucose-Curve/internal/models"
	"github.com/surya-health-tech/Glucose-Curve/internal/sensor"
	"github.com/surya-health-tech/Glucose-Curve/internal/services"
	"github.com/surya-health-tech/Glucose-Curve/internal/storage"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// The App depends on narrow service surfaces so command tests can stub them.

type journalService interface {
	LogMeal(ctx context.Context, in services.MealInput) (*models.MealEvent, error)
	LogMedication(ctx context.Context, in services.MedicationInput) (*models.MedicationEvent, error)
	LogExercise(ctx context.Context, in services.ExerciseInput) (*models.ExerciseSet, error)
	PendingCounts(ctx context.Context) (models.OutboxCounts, error)
}

type syncService interface {
	Sync(ctx context.Context) (*services.SyncReport, error)
	State() string
	Watermark(ctx context.Context) (time.Time, error)
	Ping(ctx context.Context) error
}

type referenceService interface {
	Refresh(ctx context.Context) (*services.RefreshReport, error)
	FoodItems(ctx context.Context) ([]models.FoodItem, error)
	MealTemplates(ctx context.Context) ([]models.MealTemplate, error)
	MealTemplate(ctx context.Context, id int64) (*models.MealTemplate, error)
	ExerciseTemplates(ctx context.Context) ([]models.ExerciseTemplate, error)
	MedicationOptions(ctx context.Context) ([]models.MedicationOption, error)
}

type App struct {
	config    *config.Config
	journal   journalService
	syncSvc   syncService
	reference referenceService
	repos     *storage.Repositories
	client    api.Client
	log       logging.Logger
	reader    *bufio.Reader

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the local database in the configured state directory, builds
// the API client and sensor store, and wires the services the REPL drives.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewText(os.Stderr, slog.LevelInfo)

	stateDir, err := filex.EnsureSubDir(c.StateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare state dir: %w", err)
	}
	dbPath := filex.ResolveInDir(stateDir, c.DatabaseFile)

	repos, err := storage.InitDatabase(ctx, dbPath, c.LookbackWindow)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	client := api.NewHTTPClient(c.BackendAddr, c.RequestTimeout, logger)

	store, err := openSensorStore(c.SensorDumpPath)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}
	if err := store.RequestAuthorization(ctx); err != nil {
		logger.Warn(ctx, "sensor authorization request failed", "error", err)
	}

	fetcher := services.NewDeltaFetcher(store, logger)

	// Colored verdicts only make sense on a real terminal.
	color.NoColor = color.NoColor || !term.IsTerminal(int(os.Stdout.Fd()))

	return &App{
		config:    c,
		journal:   services.NewJournalService(repos.Outbox, logger),
		syncSvc:   services.NewSyncService(repos.Outbox, repos.Watermark, fetcher, client, c.DeviceName, logger),
		reference: services.NewReferenceService(client, repos.Reference, logger),
		repos:     repos,
		client:    client,
		log:       logger,
		reader:    bufio.NewReader(os.Stdin),
		mode:      ModeOffline,
	}, nil
}

// openSensorStore picks the sensor implementation for this host: a JSON dump
// when one is configured, otherwise a store that denies every category.
func openSensorStore(dumpPath string) (sensor.Store, error) {
	if dumpPath == "" {
		return sensor.NewUnavailable(), nil
	}
	return sensor.NewFileStore(dumpPath)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	if changed {
		a.mode = mode
	}
	a.mu.Unlock()

	if changed {
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) getStatus() string {
	return fmt.Sprintf("(%s)", a.currentMode())
}

// Run probes the backend once so the first prompt shows real connectivity,
// starts the background watcher, and blocks in the REPL until exit.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := a.syncSvc.Ping(probeCtx); err == nil {
		a.setMode(ModeOnline)
	}
	cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("Glucose-Curve journal (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the API client and the database handle.
func (a *App) Close() {
	_ = a.client.Close()
	_ = a.repos.Close()
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// mode shown in the prompt. It returns when ctx is canceled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.syncSvc.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
