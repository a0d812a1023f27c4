package tools

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"apigee-gateway/apigee"
	"apigee-gateway/errors"
	"apigee-gateway/logger"
	"apigee-gateway/observability"
	"apigee-gateway/teams"
)

// handlerFunc executes one tool call. It returns the result payload
// and the correlation ID of the upstream call, empty for tools that
// never leave the process.
type handlerFunc func(ctx context.Context, args Arguments) (any, string, error)

type registration struct {
	def     Tool
	handler handlerFunc
}

// Dispatcher routes tool calls to their handlers and records the
// outcome of every call.
type Dispatcher struct {
	client  *apigee.Client
	teams   teams.Repository
	metrics *observability.Metrics
	log     *logger.Logger

	order    []string
	registry map[string]registration
}

// NewDispatcher builds the full tool registry over the given client
// and team repository. metrics may be nil when telemetry is disabled.
func NewDispatcher(client *apigee.Client, repo teams.Repository, metrics *observability.Metrics, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	d := &Dispatcher{
		client:   client,
		teams:    repo,
		metrics:  metrics,
		log:      log.WithComponent("tools"),
		registry: make(map[string]registration),
	}
	d.registerApigeeTools()
	d.registerTeamTools()
	return d
}

func (d *Dispatcher) register(def Tool, h handlerFunc) {
	if _, exists := d.registry[def.Name]; exists {
		panic("tools: duplicate registration for " + def.Name)
	}
	d.order = append(d.order, def.Name)
	d.registry[def.Name] = registration{def: def, handler: h}
}

// Tools returns the catalog in registration order.
func (d *Dispatcher) Tools() []Tool {
	out := make([]Tool, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.registry[name].def)
	}
	return out
}

// Dispatch runs the named tool. Every call, success or failure, gets a
// correlation ID; failures come back as *errors.Error carrying it.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (*Result, error) {
	reg, ok := d.registry[name]
	if !ok {
		return nil, errors.NotFound("tool", name).WithCorrelationID(uuid.NewString())
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanToolDispatch,
		trace.WithAttributes(attribute.String(observability.AttrTool, name)))
	defer span.End()

	start := time.Now()
	data, corrID, err := reg.handler(ctx, Arguments(args))
	elapsed := time.Since(start)

	if corrID == "" {
		corrID = uuid.NewString()
	}
	span.SetAttributes(attribute.String(observability.AttrCorrelationID, corrID))

	if err != nil {
		appErr := errors.FromError(err)
		if appErr.CorrelationID == "" {
			appErr = appErr.WithCorrelationID(corrID)
		}
		observability.SetSpanError(ctx, appErr)
		d.metrics.RecordToolCall(ctx, name, "error", elapsed)
		d.metrics.RecordError(ctx, string(appErr.Kind), "tools")
		d.log.WithCorrelationID(appErr.CorrelationID).WithError(appErr).Error("tool call failed",
			logger.Fields(logger.FieldTool, name, logger.FieldDuration, elapsed.Milliseconds()))
		return nil, appErr
	}

	d.metrics.RecordToolCall(ctx, name, "ok", elapsed)
	d.log.WithCorrelationID(corrID).Debug("tool call completed",
		logger.Fields(logger.FieldTool, name, logger.FieldDuration, elapsed.Milliseconds()))
	return &Result{Tool: name, CorrelationID: corrID, Data: data}, nil
}

// org resolves the organization argument, falling back to the client's
// configured organization.
func (d *Dispatcher) org(args Arguments) (string, error) {
	return args.OptionalString("organization", d.client.Organization())
}
