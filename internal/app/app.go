package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fsdevblog/pos-ledger/internal/amountcodec"
	"github.com/fsdevblog/pos-ledger/internal/amountcodec/kmsenvelope"
	"github.com/fsdevblog/pos-ledger/internal/config"
	"github.com/fsdevblog/pos-ledger/internal/repository/pgrepo"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/internal/service"
	"github.com/fsdevblog/pos-ledger/internal/transport/api"
	"github.com/fsdevblog/pos-ledger/internal/transport/authsvc"
	"github.com/fsdevblog/pos-ledger/internal/transport/events"
	"github.com/fsdevblog/pos-ledger/internal/transport/sweeper"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app with config: %s", a.Config)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %w", connErr)
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn, a.Config.UOWTimeout)
	if uowErr != nil {
		return fmt.Errorf("app run: %w", uowErr)
	}

	codec, codecErr := a.initCodec(notifyCtx)
	if codecErr != nil {
		return fmt.Errorf("app run: %w", codecErr)
	}

	access := authsvc.New(a.Config.AuthServiceAddress, a.Logger)

	services, sErr := service.Factory(unitOfWork, codec, access, service.Options{
		Logger:     a.Logger,
		Tolerance:  a.Config.ReconcileTolerance,
		Categories: a.Config.PaymentCategories,
	})
	if sErr != nil {
		return fmt.Errorf("app run: %w", sErr)
	}

	sweep := sweeper.New(services.Scheduler, a.Config.SweepInterval, a.Logger)

	router, routerErr := api.New(api.RouterArgs{
		Logger:       a.Logger,
		Balances:     services.Balances,
		Wallets:      services.Wallets,
		Ledger:       services.Ledger,
		Scheduler:    services.Scheduler,
		CashFlow:     services.CashFlow,
		Settlement:   services.Settlement,
		Sweeper:      sweep,
		Access:       access,
		JWTSecretKey: []byte(a.Config.JWTSecret),
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %w", routerErr)
	}

	server := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
	}

	g, gCtx := errgroup.WithContext(notifyCtx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx) //nolint:wrapcheck
	})
	g.Go(func() error {
		sweep.Run(gCtx)
		return nil
	})
	if a.Config.AMQPURL != "" {
		consumer := events.New(events.Config{
			URL:     a.Config.AMQPURL,
			Queue:   a.Config.AMQPQueue,
			Workers: a.Config.AMQPWorkers,
		}, services.Settlement, a.Logger)
		g.Go(func() error {
			return consumer.Run(gCtx)
		})
	} else {
		a.Logger.Warn("AMQP_URL is not set, order events are accepted over HTTP only")
	}

	if err := g.Wait(); err != nil {
		return err //nolint:wrapcheck
	}
	return notifyCtx.Err() //nolint:wrapcheck
}

// initCodec без ключа KMS суммы хранятся открытым текстом.
func (a *App) initCodec(ctx context.Context) (*amountcodec.Codec, error) {
	opts := amountcodec.Options{
		KeyID:                 a.Config.KMSKeyID,
		InsecureLocalFallback: a.Config.InsecureLocalFallback,
	}
	if a.Config.KMSKeyID == "" {
		a.Logger.Warn("KMS_KEY_ID is not set, amounts are stored as plaintext")
		return amountcodec.New(nil, opts, a.Logger), nil
	}

	envelope, err := kmsenvelope.New(ctx, a.Config.AWSRegion, a.Config.KMSEndpoint, a.Config.KMSKeyID)
	if err != nil {
		return nil, fmt.Errorf("init codec: %w", err)
	}
	return amountcodec.New(envelope, opts, a.Logger), nil
}

func initUOW(conn *pgxpool.Pool, timeout time.Duration) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn, uow.WithTimeout(timeout))

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.ShopBalanceRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewShopBalanceRepository(dbtx)
		},
		repoargs.TransactionRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewTransactionRepository(dbtx)
		},
		repoargs.RecurringPaymentRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewRecurringPaymentRepository(dbtx)
		},
		repoargs.UpcomingPaymentRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUpcomingPaymentRepository(dbtx)
		},
		repoargs.WalletRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewWalletRepository(dbtx)
		},
		repoargs.WalletTransactionRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewWalletTransactionRepository(dbtx)
		},
		repoargs.OrderRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewOrderRepository(dbtx)
		},
		repoargs.PaymentRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewPaymentRepository(dbtx)
		},
		repoargs.ProcessedEventRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewProcessedEventRepository(dbtx)
		},
	}
	for name, factory := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %w", regErr)
		}
	}

	return unitOfWork, nil
}
