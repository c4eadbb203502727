package testkit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
)

// Suite owns the Postgres and Redis modules shared by one test binary.
type Suite struct {
	mu    sync.Mutex
	cfg   Config
	pg    *PostgresModule
	redis *RedisModule
}

var (
	globalSuite *Suite
	globalOnce  sync.Once
)

// Global returns the singleton Suite instance.
func Global() *Suite {
	globalOnce.Do(func() {
		globalSuite = &Suite{cfg: LoadConfig()}
	})
	return globalSuite
}

// Setup starts both containers, or uses external overrides.
func (s *Suite) Setup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pg != nil {
		return errors.New("suite already set up")
	}

	pg, err := StartPostgres(ctx, &s.cfg)
	if err != nil {
		return fmt.Errorf("setup postgres: %w", err)
	}

	rdb, err := StartRedis(ctx, &s.cfg)
	if err != nil {
		if !s.cfg.KeepContainers {
			_ = pg.Terminate(ctx)
		}
		return fmt.Errorf("setup redis: %w", err)
	}

	s.pg, s.redis = pg, rdb
	return nil
}

// Shutdown terminates both containers unless REFDATA_TEST_KEEP_CONTAINERS is set.
func (s *Suite) Shutdown(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pg == nil {
		return
	}
	defer func() { s.pg, s.redis = nil, nil }()

	if s.cfg.KeepContainers {
		fmt.Println("keeping containers:", s.pg.DSN(), s.redis.Addr())
		return
	}
	if err := s.redis.Terminate(ctx); err != nil {
		fmt.Println("warning: failed to terminate redis container:", err)
	}
	if err := s.pg.Terminate(ctx); err != nil {
		fmt.Println("warning: failed to terminate postgres container:", err)
	}
}

// Postgres returns the running Postgres module.
func (s *Suite) Postgres() *PostgresModule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pg
}

// Redis returns the running Redis module.
func (s *Suite) Redis() *RedisModule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redis
}

// Run sets up the suite, calls afterSetup (migrations, client setup), runs the tests and
// shuts down. Intended for use in TestMain.
func (s *Suite) Run(m *testing.M, afterSetup ...func(context.Context) error) {
	ctx := context.Background()

	if err := s.Setup(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "integration test setup failed: %v\n", err)
		os.Exit(1)
	}

	for _, fn := range afterSetup {
		if err := fn(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "afterSetup callback failed: %v\n", err)
			s.Shutdown(ctx)
			os.Exit(1)
		}
	}

	code := m.Run()

	s.Shutdown(ctx)
	os.Exit(code)
}

// Run delegates to Global().Run.
func Run(m *testing.M, afterSetup ...func(context.Context) error) {
	Global().Run(m, afterSetup...)
}
