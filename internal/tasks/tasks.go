package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/teguhahmad/pencarikost/internal/services"
)

// TaskType defines the type of a background task.
const (
	TypeCatalogRefresh = "catalog:refresh"
)

// --- Task Client (Enqueuing tasks) ---

func NewClient(rdb *redis.Client) *asynq.Client {
	clientOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}
	return asynq.NewClient(clientOpt)
}

// NewCatalogRefreshTask creates the task that rebuilds the published catalog
// cache. The task carries no payload; the refresh is always a full rebuild.
func NewCatalogRefreshTask() *asynq.Task {
	return asynq.NewTask(TypeCatalogRefresh, nil)
}

// --- Task Server (Processing tasks) ---

// TaskProcessor handles the processing of tasks.
// It holds dependencies needed by task handlers.
type TaskProcessor struct {
	catalogService services.ICatalogService
}

func NewTaskProcessor(catalogService services.ICatalogService) *TaskProcessor {
	return &TaskProcessor{catalogService: catalogService}
}

// SetupServer configures and returns an Asynq server instance together with
// the mux routing its tasks. The caller runs and shuts it down.
func SetupServer(rdb *redis.Client, processor *TaskProcessor) (*asynq.Server, *asynq.ServeMux) {
	serverOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}

	srv := asynq.NewServer(
		serverOpt,
		asynq.Config{
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				fmt.Printf("[Asynq Error] Task Type: %s, Error: %v\n", task.Type(), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCatalogRefresh, processor.HandleCatalogRefreshTask)

	return srv, mux
}

// SetupScheduler configures the periodic catalog refresh. The interval tracks
// the cache TTL so the cache is re-primed before visitors hit a cold read.
// The caller runs and shuts it down.
func SetupScheduler(rdb *redis.Client, interval time.Duration) *asynq.Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     rdb.Options().Addr,
			Password: rdb.Options().Password,
			DB:       rdb.Options().DB,
		},
		&asynq.SchedulerOpts{Location: time.UTC},
	)

	spec := fmt.Sprintf("@every %s", interval)
	if _, err := scheduler.Register(spec, NewCatalogRefreshTask()); err != nil {
		log.Fatalf("Could not register catalog refresh task: %v", err)
	}

	return scheduler
}

// --- Task Handlers ---

// HandleCatalogRefreshTask rebuilds the published catalog and re-primes the
// cache. A failed rebuild is returned for retry; the stale cache entry keeps
// serving reads in the meantime.
func (p *TaskProcessor) HandleCatalogRefreshTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Starting catalog refresh task...")

	if err := p.catalogService.RefreshCache(ctx); err != nil {
		log.Printf("Catalog refresh failed: %v", err)
		return err
	}

	log.Println("Catalog refresh task finished.")
	return nil
}
