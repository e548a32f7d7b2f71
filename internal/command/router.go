package command

import (
	"context"
	"time"

	"labbot/internal/metrics"
	"labbot/internal/store"

	"github.com/rs/zerolog"
)

// Router dispatches a tokenized lab invocation to one of the four actions
// and owns the load-mutate-save cycle around the bookings document. A failed
// save discards the in-memory mutation: no state survives an invocation.
type Router struct {
	store   *store.Store
	logger  *zerolog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	onSaved func(context.Context, store.Document)
}

func NewRouter(st *store.Store, logger *zerolog.Logger, m *metrics.Metrics) *Router {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Router{
		store:   st,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// OnSaved installs a hook invoked with the new document after every
// successful save. Used to feed the sheets mirror queue.
func (r *Router) OnSaved(fn func(context.Context, store.Document)) {
	r.onSaved = fn
}

// Dispatch routes args to an action and returns the text reply. Nothing an
// action does may escape uncaught: panics are recovered here, logged, and
// replaced by a generic failure message.
func (r *Router) Dispatch(ctx context.Context, args []string) (reply string) {
	defer func() {
		if rec := recover(); rec != nil {
			if r.metrics != nil {
				r.metrics.ErrorsTotal.Inc()
			}
			r.logger.Error().Interface("panic", rec).Strs("args", args).Msg("Recovered from panic in command handler")
			reply = genericErrorMessage()
		}
	}()

	if len(args) == 0 {
		return helpMessage()
	}

	action, ok := ParseAction(args[0])
	if !ok {
		r.logger.Debug().Str("token", args[0]).Msg("Unknown lab sub-command")
		return unknownCommandMessage()
	}

	start := r.now()
	res := r.run(ctx, action, args[1:])

	if r.metrics != nil {
		r.metrics.CommandsProcessed.WithLabelValues(action.String()).Inc()
		r.metrics.CommandDuration.WithLabelValues(action.String()).Observe(time.Since(start).Seconds())
		if res.created {
			r.metrics.BookingsCreated.Inc()
		}
		if res.cancelled {
			r.metrics.BookingsCancelled.Inc()
		}
	}

	return res.reply
}

func (r *Router) run(ctx context.Context, action Action, args []string) result {
	doc := r.store.Load(ctx)

	res := handlers[action](&doc, args, r.now())
	if !res.mutated {
		return res
	}

	if err := r.store.Save(ctx, doc); err != nil {
		if r.metrics != nil {
			r.metrics.ErrorsTotal.Inc()
		}
		r.logger.Error().Err(err).Str("action", action.String()).Msg("Failed to persist bookings document")
		return result{reply: res.onSaveError}
	}

	if r.onSaved != nil {
		r.onSaved(ctx, doc)
	}

	return res
}
