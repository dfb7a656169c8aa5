package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	api "github.com/mind-engage/mindcheck/internal/api/http"
	"github.com/mind-engage/mindcheck/internal/audit"
	"github.com/mind-engage/mindcheck/internal/auth"
	authmw "github.com/mind-engage/mindcheck/internal/auth/middleware"
	"github.com/mind-engage/mindcheck/internal/config"
	"github.com/mind-engage/mindcheck/internal/db"
	"github.com/mind-engage/mindcheck/internal/entry"
	"github.com/mind-engage/mindcheck/internal/questionnaire"
	"github.com/mind-engage/mindcheck/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: [Main] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- DB ---
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	dbh, err := db.Open(openCtx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	cancel()
	if err != nil {
		log.Fatalf("FATAL: [Main] db open failed: %v", err)
	}
	defer dbh.Close()

	// --- Question banks (loaded once, shared read-only) ---
	questions, err := storage.NewFSStore(cfg.QuestionsDir)
	if err != nil {
		log.Fatalf("FATAL: [Main] questions dir: %v", err)
	}
	registry := questionnaire.NewRegistry(ctx, questions)

	// --- Submission audit trail ---
	sink, lister, err := buildSink(cfg, dbh)
	if err != nil {
		log.Fatalf("FATAL: [Main] recorder: %v", err)
	}

	scorer := questionnaire.NewScorer()
	seed := uint64(time.Now().UnixNano())
	sampler := questionnaire.NewSampler(rand.NewPCG(seed, seed>>1|1))
	tests := questionnaire.NewService(registry, sampler, scorer, questionnaire.NewRecorder(sink, scorer))

	// --- Journaling ---
	classifier := entry.NewHTTPClassifier(cfg.ClassifierURL, cfg.ClassifierTimeout)
	entries := entry.NewService(entry.NewSQLStore(dbh), classifier, cfg.EntryMinLength, cfg.ModelVersion)

	authSvc := authmw.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	deps := api.Deps{
		Tests:         tests,
		DefaultCount:  cfg.DefaultQuestionCount,
		Auth:          authSvc,
		AdminUser:     cfg.AdminUser,
		AdminPassHash: cfg.AdminPassHash,
		Entries:       entries,
	}
	if lister != nil {
		deps.Submissions = lister
	}
	if cfg.EnableGoogleAuth {
		deps.Google = auth.NewGoogleVerifier(cfg.GoogleClientID, cfg.GoogleTokenInfoURL)
		deps.Users = auth.NewUserStore(dbh)
	}
	api.Mount(r, deps)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("INFO: [Main] listening on %s (mode=%s, db=%s, recorder=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, cfg.Recorder)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("FATAL: [Main] server error: %v", err)
	}
	log.Println("INFO: [Main] server stopped")
}

// buildSink wires the recorder backend named by cfg.Recorder. lister is non-nil
// only when submissions go to SQL.
func buildSink(cfg config.Config, dbh *sql.DB) (questionnaire.Sink, *audit.SQLSink, error) {
	var fileSink *audit.FileSink
	if cfg.Recorder == "file" || cfg.Recorder == "both" {
		data, err := storage.NewFSStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		fileSink = audit.NewFileSink(data, cfg.ResponsesLog)
	}
	switch cfg.Recorder {
	case "file":
		return fileSink, nil, nil
	case "sql":
		s := audit.NewSQLSink(dbh)
		return s, s, nil
	case "both":
		s := audit.NewSQLSink(dbh)
		return audit.MultiSink{fileSink, s}, s, nil
	}
	return nil, nil, errors.New("unknown recorder " + cfg.Recorder)
}
