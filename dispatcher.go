package nameless

import (
	"context"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/namelessmc/go-nameless/apierror"
	"github.com/namelessmc/go-nameless/envelope"
	"github.com/namelessmc/go-nameless/observability"
)

// Dispatcher turns an action call into a decoded payload or exactly one typed
// error. It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	transport *Transport
	endpoint  Endpoint
	logger    observability.Logger
	metrics   observability.MetricsRecorder
}

// NewDispatcher returns a dispatcher sending calls to endpoint through transport.
func NewDispatcher(transport *Transport, endpoint Endpoint, logger observability.Logger, metrics observability.MetricsRecorder) *Dispatcher {
	if logger == nil {
		logger = observability.NoopLogger()
	}
	if metrics == nil {
		metrics = observability.NoopMetricsRecorder()
	}
	return &Dispatcher{
		transport: transport,
		endpoint:  endpoint,
		logger:    logger,
		metrics:   metrics,
	}
}

// Call performs action with params.
//
// Transport and malformed response errors are returned unchanged. An error
// envelope becomes an *apierror.ApplicationError whose Kind is looked up from the
// error code.
func (d *Dispatcher) Call(ctx context.Context, action Action, params ...Param) (envelope.Payload, error) {
	if !action.Valid() {
		return envelope.Payload{}, &apierror.InvalidFormatError{What: "action", Value: strconv.Itoa(int(action)), Reason: "not a known action"}
	}

	raw, err := d.transport.Send(ctx, d.endpoint, action, params)
	if err != nil {
		d.record(action, err)
		return envelope.Payload{}, err
	}

	payload, err := envelope.Decode(action.Route(), raw.Body)
	if err != nil {
		if decoded, ok := envelope.IsDecodedError(err); ok {
			err = apierror.NewApplicationError(action.Route(), decoded.Code, decoded.Message, decoded.Details)
		}
		d.record(action, err)
		return envelope.Payload{}, err
	}

	return payload, nil
}

func (d *Dispatcher) record(action Action, err error) {
	errorType := classifyFailure(err)

	d.metrics.RecordError("call:"+action.Route(), errorType)
	d.logger.Debug("api call failed",
		observability.Action(action.Route()),
		observability.F("type", errorType),
		observability.Err(err),
	)
}

func classifyFailure(err error) string {
	var (
		transportErr *apierror.TransportError
		malformedErr *apierror.MalformedResponseError
		appErr       *apierror.ApplicationError
	)

	switch {
	case errors.Is(err, apierror.ErrCanceled):
		return "canceled"
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &malformedErr):
		return "malformed"
	case errors.As(err, &appErr):
		return appErr.Kind.String()
	default:
		return "other"
	}
}
