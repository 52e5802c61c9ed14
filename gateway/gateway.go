package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/lexkit/lexsync/faults"
	"github.com/lexkit/lexsync/lexmodel"
	"github.com/lexkit/lexsync/resource"
)

// ModelClient is the opaque transport boundary to the remote bot-modeling
// service. Implementations translate one logical operation call into a wire
// request; authentication and retry transport policy live behind it.
type ModelClient interface {
	Invoke(ctx context.Context, operation string, params resource.Props) (resource.Props, error)
}

type Options struct {
	// PollInterval is the fixed delay between wait polls and the base of the
	// build-throttle backoff.
	PollInterval time.Duration
	// MaxWaitAttempts bounds status polling before a wait fails.
	MaxWaitAttempts int
	// RateLimit paces outbound invocations. Zero means unlimited.
	RateLimit rate.Limit
	RateBurst int
}

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = 5 * time.Second
	}
	if o.MaxWaitAttempts <= 0 {
		o.MaxWaitAttempts = 60
	}
	if o.RateLimit <= 0 {
		o.RateLimit = rate.Inf
	}
	if o.RateBurst <= 0 {
		o.RateBurst = 1
	}
	return o
}

// Gateway funnels every remote mutation and lookup through one place:
// parameter projection against the static operation schemas, request pacing,
// metrics, and status polling.
type Gateway struct {
	client  ModelClient
	log     zerolog.Logger
	limiter *rate.Limiter
	opts    Options
}

func New(client ModelClient, log zerolog.Logger, opts Options) *Gateway {
	opts = opts.withDefaults()
	return &Gateway{
		client:  client,
		log:     log.With().Str("component", "gateway").Logger(),
		limiter: rate.NewLimiter(opts.RateLimit, opts.RateBurst),
		opts:    opts,
	}
}

func (g *Gateway) PollInterval() time.Duration {
	return g.opts.PollInterval
}

// Project computes the API-parameter projection of params for operation
// without invoking it. Managers compare projections of new and old
// configuration to decide whether an update call is needed at all.
func (g *Gateway) Project(operation string, params resource.Props, ignore ...string) (resource.Props, error) {
	return lexmodel.Project(operation, params, lexmodel.ProjectOptions{Ignore: ignore})
}

// Invoke projects params onto the operation's input shape and executes it.
func (g *Gateway) Invoke(ctx context.Context, operation string, params resource.Props, ignore ...string) (resource.Props, error) {
	projected, err := g.Project(operation, params, ignore...)
	if err != nil {
		return nil, err
	}
	return g.call(ctx, operation, projected)
}

func (g *Gateway) call(ctx context.Context, operation string, params resource.Props) (resource.Props, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, faults.NewTypedError(faults.InternalError, "rate limiter interrupted", err)
	}

	g.log.Debug().Str("operation", operation).Interface("parameters", params).Msg("invoking operation")

	started := time.Now()
	response, err := g.client.Invoke(ctx, operation, params)
	observeInvocation(operation, err, time.Since(started))
	if err != nil {
		return nil, err
	}

	g.log.Debug().Str("operation", operation).Interface("response", response).Msg("operation response")
	return response, nil
}

// WaitSpec describes one status poll: the describe operation to repeat, the
// field carrying the status, the in-progress values to wait out, and the
// terminal values that count as success. An empty Target means the caller
// waits for the resource to disappear: a not-found answer is success.
type WaitSpec struct {
	Operation   string
	Args        resource.Props
	StatusField string
	InProgress  []string
	Target      []string
}

// WaitForStatus polls at the configured interval up to the configured attempt
// ceiling, returning the final describe response once the status leaves the
// in-progress set. A final status outside the target set fails with a
// wait-timeout fault.
func (g *Gateway) WaitForStatus(ctx context.Context, spec WaitSpec) (resource.Props, error) {
	var (
		response resource.Props
		status   string
	)

	for tries := 0; ; tries++ {
		var err error
		response, err = g.Invoke(ctx, spec.Operation, spec.Args)
		if err != nil {
			if faults.IsCategory(err, faults.NotFoundError) && len(spec.Target) == 0 {
				g.log.Debug().Str("operation", spec.Operation).Msg("resource gone during delete wait")
				return nil, nil
			}
			return nil, err
		}
		observeWaitPoll(spec.Operation)

		status = resource.String(response, spec.StatusField)
		if !containsStatus(spec.InProgress, status) || tries >= g.opts.MaxWaitAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, faults.NewTypedError(faults.InternalError, "wait interrupted", ctx.Err())
		case <-time.After(g.opts.PollInterval):
		}
	}

	if !containsStatus(spec.Target, status) {
		g.log.Error().
			Str("operation", spec.Operation).
			Str("status", status).
			Msg("failed waiting for operation")
		return nil, faults.NewTypedError(
			faults.WaitTimeoutError,
			fmt.Sprintf("failed waiting for operation %s: final status %q", spec.Operation, status),
			nil,
		)
	}

	return response, nil
}

func containsStatus(values []string, status string) bool {
	for _, value := range values {
		if value == status {
			return true
		}
	}
	return false
}
