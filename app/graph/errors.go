package graph

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/salesdesk/app/services"
	"github.com/shashiranjanraj/salesdesk/pkg/logger"
	"github.com/shashiranjanraj/salesdesk/pkg/metrics"
)

// Error is what a resolver failure looks like to the client. graphql-go
// copies Extensions into errors[].extensions.
type Error struct {
	Message string
	Code    string
}

func (e *Error) Error() string { return e.Message }

// Extensions implements gqlerrors.ExtendedError.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

var errInternal = &Error{
	Message: "internal server error",
	Code:    services.KindInternal.Code(),
}

// publicError maps a service failure to its client form. Infrastructure
// errors are logged with the request logger and replaced by errInternal.
func publicError(ctx context.Context, op string, err error) *Error {
	var se *services.Error
	if errors.As(err, &se) {
		return &Error{Message: se.Message, Code: se.Kind.Code()}
	}
	logger.WithCtx(ctx).Error("graphql: resolver failed", "operation", op, "error", err)
	return errInternal
}

// resolver wraps fn with error mapping and the per-operation counter.
func resolver(op string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		out, err := fn(p)
		if err != nil {
			gerr := publicError(p.Context, op, err)
			metrics.RecordOperation(op, gerr.Code)
			return nil, gerr
		}
		metrics.RecordOperation(op, "ok")
		return out, nil
	}
}

// decodeInput copies the "input" argument into dst through its json tags.
func decodeInput(p graphql.ResolveParams, dst interface{}) error {
	raw, err := json.Marshal(p.Args["input"])
	if err != nil {
		return services.Invalid("Invalid input")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return services.Invalid("Invalid input")
	}
	return nil
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}
