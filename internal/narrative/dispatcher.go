package narrative

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ctd-ild-mcp-server/internal/domain"
)

// Result is the outcome of a dispatched generation.
type Result struct {
	RequestID string
	Text      string
	Err       error
}

// Dispatcher runs generations detached from the caller. A generation outlives the request
// that started it and its outcome is always logged.
type Dispatcher struct {
	generator domain.NarrativeGenerator
	logger    *logrus.Logger
	timeout   time.Duration
	wg        sync.WaitGroup
}

// NewDispatcher creates a dispatcher bounding each generation by timeout.
func NewDispatcher(generator domain.NarrativeGenerator, logger *logrus.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Dispatcher{
		generator: generator,
		logger:    logger,
		timeout:   timeout,
	}
}

// Dispatch starts a generation and returns immediately. The channel receives exactly one Result
// and never blocks the generation when nobody reads it.
func (d *Dispatcher) Dispatch(prompt string) <-chan Result {
	out := make(chan Result, 1)
	requestID := uuid.New().String()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		text, err := d.generator.Generate(ctx, prompt)
		entry := d.logger.WithField("dispatch_id", requestID)
		if err != nil {
			entry.WithError(err).Warn("Dispatched narrative failed")
		} else {
			entry.WithField("length", len(text)).Debug("Dispatched narrative completed")
		}
		out <- Result{RequestID: requestID, Text: text, Err: err}
	}()

	return out
}

// Wait blocks until every dispatched generation has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
