package integration

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/rs/zerolog"

	adaptershttp "github.com/iho/gopix/internal/adapter/http"
	"github.com/iho/gopix/internal/adapter/http/handler"
	"github.com/iho/gopix/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/gopix/internal/adapter/repository/redis"
	infraredis "github.com/iho/gopix/internal/infrastructure/redis"
	"github.com/iho/gopix/internal/usecase"
	"github.com/iho/gopix/tests/testutil"
)

// testEnv wires the full HTTP stack against real postgres and redis.
type testEnv struct {
	DB            *testutil.TestDB
	Router        http.Handler
	AccountRepo   *postgres.AccountRepository
	StatementRepo *postgres.StatementRepository
	PixKeyRepo    *postgres.PixKeyRepository
	TransferUC    *usecase.TransferUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	accountRepo := postgres.NewAccountRepository(pool)
	statementRepo := postgres.NewStatementRepository(pool)
	pixKeyRepo := postgres.NewPixKeyRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	cache := redisrepo.NewCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)

	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	pixKeyUC := usecase.NewPixKeyUseCase(pixKeyRepo, cache, 0)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, statementRepo, pixKeyUC, idGen, retrier)
	statementUC := usecase.NewStatementUseCase(statementRepo)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC, nil),
		TransferHandler:  handler.NewTransferHandler(transferUC, nil),
		PixKeyHandler:    handler.NewPixKeyHandler(pixKeyUC, nil),
		StatementHandler: handler.NewStatementHandler(statementUC),
		LedgerHandler:    handler.NewLedgerHandler(ledgerUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		Logger:           zerolog.Nop(),
		IdempotencyStore: idempotencyStore,
	})

	return &testEnv{
		DB:            testDB,
		Router:        router,
		AccountRepo:   accountRepo,
		StatementRepo: statementRepo,
		PixKeyRepo:    pixKeyRepo,
		TransferUC:    transferUC,
	}
}
