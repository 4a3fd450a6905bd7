package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/durendeer/petcare/config"
	"github.com/durendeer/petcare/internal/api"
	"github.com/durendeer/petcare/internal/app"
	"github.com/durendeer/petcare/internal/webserver"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	h        bool
	initdb   bool
	conffile string
)

func init() {
	flag.StringVar(&conffile, "c", "/etc/petcare.yml", "config file")
	flag.BoolVar(&initdb, "initdb", false, "drop and rebuild the database schema")
	flag.BoolVar(&h, "h", false, "help usage")
}

func main() {
	flag.Parse()
	if h {
		flag.Usage()
		os.Exit(0)
	}

	cfg := config.LoadConfig(conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if initdb {
		application.InitDb()
		fmt.Println("database schema initialized")
		return
	}

	webserver.Init(application)
	api.RegisterRoutes()

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		zap.L().Info("starting petcare server",
			zap.String("host", cfg.Web.Host), zap.Int("port", cfg.Web.Port))
		return webserver.Listen()
	})
	g.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigs:
			return fmt.Errorf("received signal %s", sig)
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err := g.Wait(); err != nil {
		zap.L().Info("petcare server stopped", zap.Error(err))
	}
}
