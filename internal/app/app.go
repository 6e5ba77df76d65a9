package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.cloudfoundry.org/clock"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/LRGuess/weatherbot/internal/config"
	"github.com/LRGuess/weatherbot/internal/notifier"
	"github.com/LRGuess/weatherbot/internal/owm"
	"github.com/LRGuess/weatherbot/internal/store"
	"github.com/LRGuess/weatherbot/internal/telegram"
	"github.com/LRGuess/weatherbot/internal/weather"
)

type App struct {
	cfg      config.Config
	log      *zap.Logger
	bot      *tgbotapi.BotAPI
	httpSrv  *http.Server
	prefs    *store.Store
	router   *telegram.Router
	notifier *notifier.Notifier
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	prefs := store.Open(cfg.DataFile, log)

	owmClient := owm.NewClient(cfg.OWMAPIKey, &http.Client{Timeout: 10 * time.Second})
	svc := weather.NewService(owmClient)

	router := telegram.NewRouter(bot, log, prefs, svc, cfg.AdminUserID)
	ntf := notifier.New(prefs, svc, router, clock.NewClock(), log, cfg.TickEvery)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{
		cfg:      cfg,
		log:      log,
		bot:      bot,
		httpSrv:  srv,
		prefs:    prefs,
		router:   router,
		notifier: ntf,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting weather bot",
		zap.String("http", a.cfg.HTTPAddr),
		zap.String("data_file", a.cfg.DataFile),
		zap.Duration("notify_tick", a.cfg.TickEvery),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.log.Info("shutdown signal received")

		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.httpSrv.Shutdown(shCtx); err != nil {
			a.log.Warn("http server shutdown error", zap.Error(err))
		}
		a.bot.StopReceivingUpdates()
		return nil
	})

	g.Go(func() error {
		a.notifier.Run(ctx)
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case upd := <-updCh:
				a.router.HandleUpdate(ctx, upd)
			}
		}
	})

	return g.Wait()
}
