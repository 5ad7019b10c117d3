package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/resumes-tracker/internal/pipeline"
	"github.com/joseph-ayodele/resumes-tracker/internal/server"
)

var (
	flagHTTPAddr      string
	flagGRPCAddr      string
	flagProbeInterval time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the gRPC health endpoint",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http-addr", "", "HTTP listen address (default $HTTP_ADDR)")
	serveCmd.Flags().StringVar(&flagGRPCAddr, "grpc-addr", "", "gRPC health listen address (default $GRPC_ADDR)")
	serveCmd.Flags().DurationVar(&flagProbeInterval, "probe-interval", 30*time.Second, "retry interval for the destination readiness probe")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.close()
	if flagHTTPAddr != "" {
		a.cfg.Server.HTTPAddr = flagHTTPAddr
	}
	if flagGRPCAddr != "" {
		a.cfg.Server.GRPCAddr = flagGRPCAddr
	}

	var proc *pipeline.Processor
	if ext, err := a.extractor(ctx); err != nil {
		a.log.Warn("serve.extraction_disabled", "error", err)
	} else {
		proc = pipeline.NewProcessor(ext, a.service, a.log)
	}

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(server.Deps{
		Service:   a.service,
		Processor: proc,
		Runs:      a.runs,
		Export:    a.export,
		Defaults: server.Defaults{
			Credential:    a.cfg.Notion.APIKey,
			DatabaseID:    a.cfg.Notion.DatabaseID,
			MaxDocumentMB: a.cfg.LLM.MaxDocumentMB,
		},
		Logger: a.log,
	})
	httpSrv := &http.Server{Addr: a.cfg.Server.HTTPAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	grpcSrv, hs := server.NewGRPCServer()
	lis, err := net.Listen("tcp", a.cfg.Server.GRPCAddr)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	if a.requireDestination() == nil {
		probe := func(ctx context.Context) error {
			_, err := a.service.Connect(ctx, a.cfg.Notion.APIKey, a.cfg.Notion.DatabaseID)
			return err
		}
		g.Go(func() error {
			if err := server.WatchDestination(gctx, hs, probe, flagProbeInterval, a.log); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	} else {
		a.log.Warn("serve.no_default_destination", "hint", "set NOTION_API_KEY and NOTION_DATABASE_ID for readiness")
	}

	g.Go(func() error {
		a.log.Info("serve.http.listening", "addr", a.cfg.Server.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		a.log.Info("serve.grpc.listening", "addr", a.cfg.Server.GRPCAddr)
		return grpcSrv.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("serve.shutting_down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		grpcSrv.GracefulStop()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
