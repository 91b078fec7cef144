package coach

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/utils"
)

// ErrBusy is returned by TryAsk while another request is in flight.
var ErrBusy = errors.New("coach is already answering a request")

// Coach turns the habit collection into a prompt, sends it to a Backend and
// maps every failure to a fixed user-facing message. Requests are serialized.
type Coach struct {
	backend Backend
	apiKey  string
	timeout time.Duration
	now     func() time.Time

	mu sync.Mutex
}

func New(backend Backend, apiKey string, timeout time.Duration) *Coach {
	if timeout <= 0 {
		timeout = constants.DefaultTimeout
	}
	return &Coach{
		backend: backend,
		apiKey:  strings.TrimSpace(apiKey),
		timeout: timeout,
		now:     utils.Now,
	}
}

// HasKey reports whether a credential is configured.
func (c *Coach) HasKey() bool {
	return c.apiKey != ""
}

// Ask blocks until any in-flight request finishes, then answers query.
// A blank query requests the default weekly analysis.
func (c *Coach) Ask(ctx context.Context, habits []models.Habit, query string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ask(ctx, habits, query)
}

// TryAsk is Ask without waiting: it fails with ErrBusy if a request is running.
func (c *Coach) TryAsk(ctx context.Context, habits []models.Habit, query string) (string, error) {
	if !c.mu.TryLock() {
		return "", ErrBusy
	}
	defer c.mu.Unlock()
	return c.ask(ctx, habits, query), nil
}

func (c *Coach) ask(ctx context.Context, habits []models.Habit, query string) string {
	if !c.HasKey() {
		logger.Warn("coach request skipped, no API key configured")
		return constants.CoachMissingKeyMessage
	}

	prompt, err := BuildPrompt(habits, query, c.now())
	if err != nil {
		logger.Error("failed to build coach prompt", "error", err)
		return constants.CoachFallbackMessage
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	reply, err := c.backend.Complete(ctx, SystemInstruction, prompt)
	if err != nil {
		logger.Error("coach request failed", "error", err, "elapsed", time.Since(start))
		return constants.CoachFallbackMessage
	}
	logger.Debug("coach request completed", "elapsed", time.Since(start), "habits", len(habits))

	if strings.TrimSpace(reply) == "" {
		return constants.CoachEmptyReplyMessage
	}
	return reply
}
