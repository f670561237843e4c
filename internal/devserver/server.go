package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jask/petlist/internal/logging"
)

// Options configures Serve.
type Options struct {
	Addr string
	// DB is a SQLite file path; empty keeps pets in memory.
	DB   string
	Seed bool
}

// Serve runs the dev server until ctx is cancelled.
func Serve(ctx context.Context, opts Options) error {
	log := logging.For("devserver")

	var store Store
	if opts.DB != "" {
		s, db, err := NewSQLiteStore(opts.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		store = s
		log.Infof("using sqlite store at %s", opts.DB)
	} else {
		store = NewMemoryStore()
		log.Info("using in-memory store")
	}

	if opts.Seed {
		n, err := Seed(ctx, store)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Infof("seeded %d pets", n)
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           NewHandler(store),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
