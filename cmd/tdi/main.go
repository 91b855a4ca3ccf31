// Command tdi queries Infinitode 2 leaderboards and player profiles.
//
// Usage:
//
//	tdi leaderboard 5.1 --mode waves --difficulty ENDLESS_I
//	tdi rank 5.1 U-AAAA-BBBB-CCCCCC
//	tdi runtime 5.1 U-AAAA-BBBB-CCCCCC
//	tdi skillpoint --playerid U-AAAA-BBBB-CCCCCC
//	tdi dailyquest --date 2026-10-18
//	tdi seasonal
//	tdi player U-AAAA-BBBB-CCCCCC
//	tdi sweep --maps 1.1,1.2,5.1 --workers 4
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/tdi-leaderboards/internal/app"
	"github.com/riskibarqy/tdi-leaderboards/internal/config"
	"github.com/riskibarqy/tdi-leaderboards/internal/observability"
	"github.com/riskibarqy/tdi-leaderboards/internal/platform/logging"
)

const shutdownTimeout = 5 * time.Second

// session is the state shared by every subcommand of one invocation.
type session struct {
	cfg    config.Config
	app    *app.App
	logger *logging.Logger
	out    io.Writer
	errOut io.Writer
	asJSON bool

	span     trace.Span
	shutdown func(context.Context) error
	closed   bool
}

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &session{out: os.Stdout, errOut: os.Stderr}
	if err := run(ctx, s, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}

// run executes one command and always releases the session, whether or not the command
// succeeded.
func run(ctx context.Context, s *session, args []string) error {
	root := newRootCmd(s)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		s.reportError(ctx, err)
	}
	if closeErr := s.close(); closeErr != nil {
		s.reportError(ctx, closeErr)
		if err == nil {
			err = closeErr
		}
	}
	return err
}

func (s *session) reportError(ctx context.Context, err error) {
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "command failed", "error", err)
		return
	}
	// Config failed to load, so there is no logger yet.
	fmt.Fprintln(s.errOut, "Error:", err)
}

func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:           "tdi",
		Short:         "Infinitode 2 leaderboard and profile client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := s.open(cmd.Context()); err != nil {
				return err
			}
			ctx, span := otel.Tracer("tdi-leaderboards/cmd/tdi").Start(cmd.Context(), "tdi "+cmd.Name())
			s.span = span
			cmd.SetContext(ctx)
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&s.asJSON, "json", false, "Print JSON instead of text rows")

	root.AddCommand(leaderboardCmd(s))
	root.AddCommand(rankCmd(s))
	root.AddCommand(runtimeCmd(s))
	root.AddCommand(skillPointCmd(s))
	root.AddCommand(dailyQuestCmd(s))
	root.AddCommand(seasonalCmd(s))
	root.AddCommand(playerCmd(s))
	root.AddCommand(sweepCmd(s))
	return root
}

func (s *session) open(ctx context.Context) error {
	if s.app != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s.cfg = cfg
	if s.logger == nil {
		if cfg.AppEnv == config.EnvProd {
			s.logger = logging.NewJSON(cfg.LogLevel)
		} else {
			s.logger = logging.NewConsole(cfg.LogLevel)
		}
		logging.SetDefault(s.logger)
	}

	shutdown, err := observability.InitUptrace(cfg, s.logger)
	if err != nil {
		return err
	}
	s.shutdown = shutdown

	a, err := app.New(ctx, cfg, s.logger)
	if err != nil {
		return err
	}
	s.app = a
	return nil
}

// close is safe to call more than once.
func (s *session) close() error {
	if s.app == nil || s.closed {
		return nil
	}
	s.closed = true
	if s.span != nil {
		s.span.End()
	}
	err := s.app.Close()
	if s.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := s.shutdown(ctx); shutdownErr != nil {
			s.logger.Warn("flush traces failed", "error", shutdownErr)
		}
	}
	_ = s.logger.Sync()
	return err
}
