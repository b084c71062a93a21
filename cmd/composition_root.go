package cmd

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httpadapter "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/memory"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/rabbitmq"
	"logistics/internal/core/application/lifecycle"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"
	"logistics/internal/pkg/clock"
	"logistics/internal/pkg/metrics"
)

// CompositionRoot owns the process-wide dependencies and builds the inbound
// adapters on top of them.
type CompositionRoot struct {
	cfg Config
	log *zap.Logger

	publisher ports.StatusEventPublisher
	closers   []func() error

	registry *prometheus.Registry
	metrics  *metrics.Metrics
	engine   *lifecycle.Engine
}

func NewCompositionRoot(cfg Config, log *zap.Logger) (*CompositionRoot, error) {
	policy, err := shipment.ParseOrderingPolicy(cfg.OutOfOrderPolicy)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{cfg: cfg, log: log}

	uowFactory, err := c.newUnitOfWorkFactory()
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	if err := c.newPublisher(); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.registry = prometheus.NewRegistry()
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.metrics = metrics.NewMetrics(cfg.MetricsNamespace, c.registry)

	c.engine = lifecycle.NewEngine(
		uowFactory,
		clock.System{},
		policy,
		c.publisher,
		c.metrics,
		log.With(zap.String("component", "lifecycle")),
	)

	log.Info("Composition root ready",
		zap.String("storage", cfg.StorageDriver),
		zap.Stringer("out_of_order_policy", policy))
	return c, nil
}

func (c *CompositionRoot) newUnitOfWorkFactory() (ports.UnitOfWorkFactory, error) {
	if c.cfg.StorageDriver == StorageDriverMemory {
		return memory.NewUnitOfWorkFactory(memory.NewStore()), nil
	}

	dsn := postgres.DSN(c.cfg.DBHost, c.cfg.DBPort, c.cfg.DBUser, c.cfg.DBPassword, c.cfg.DBName, c.cfg.DBSslMode)
	db, err := postgres.Open(dsn, c.log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, sqlDB.Close)

	if err := postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return postgres.NewGormUnitOfWorkFactory(db), nil
}

func (c *CompositionRoot) newPublisher() error {
	if c.cfg.AMQPURL == "" {
		c.log.Info("AMQP_URL is not set, status events will not be published")
		c.publisher = rabbitmq.NopPublisher{}
		return nil
	}

	p, err := rabbitmq.Dial(c.cfg.AMQPURL, c.cfg.AMQPExchange, c.log.With(zap.String("component", "rabbitmq")))
	if err != nil {
		return fmt.Errorf("connect to amqp broker: %w", err)
	}
	c.publisher = p
	c.closers = append(c.closers, p.Close)
	return nil
}

func (c *CompositionRoot) Engine() *lifecycle.Engine {
	return c.engine
}

func (c *CompositionRoot) NewHTTPServer() (*echo.Echo, error) {
	server := httpadapter.NewServer(c.engine, c.log.With(zap.String("component", "http")))
	return httpadapter.NewEcho(server, c.registry, c.log)
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.engine, c.metrics, jobs.Schedules{
		DelayScan:        c.cfg.DelayScanSchedule,
		CapacitySnapshot: c.cfg.CapacitySchedule,
	}, c.log)
}

// Close releases the broker connection and the database pool in reverse
// order of acquisition.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}
