package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultShutdownTimeout bounds graceful shutdown when no timeout is given
const DefaultShutdownTimeout = 30 * time.Second

// ServeUntilDone runs server until ctx is cancelled, then shuts it down
// gracefully within timeout. It returns early if the server fails to start.
func ServeUntilDone(ctx context.Context, server *http.Server, timeout time.Duration, log *logrus.Logger) error {
	if timeout == 0 {
		timeout = DefaultShutdownTimeout
	}
	if log == nil {
		log = logrus.New()
	}

	errChan := make(chan error, 1)
	go func() {
		defer RecoverPanicWithCallback(log, "status server", func() {
			errChan <- fmt.Errorf("status server panicked")
			close(errChan)
		})

		log.Infof("Status server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("status server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down status server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Status server shutdown error")
		return fmt.Errorf("status server shutdown failed: %w", err)
	}

	log.Info("Status server shutdown complete")
	return nil
}
