package handler

import (
	"context"

	"github.com/lambda-feedback/azshim/binding"
	"github.com/lambda-feedback/azshim/funcctx"
	"github.com/lambda-feedback/azshim/request"
)

// Func handles a single invocation and returns its response.
type Func = funcctx.HandlerFunc

// Invocation is the document a handler process receives as input.
type Invocation struct {
	Execution funcctx.Execution `json:"execution"`
	Bindings  *binding.Set      `json:"bindings"`
	Req       *request.Request  `json:"req"`
}

// NewInvocation describes the invocation of fc.
func NewInvocation(fc *funcctx.Context) Invocation {
	return Invocation{
		Execution: fc.Execution,
		Bindings:  fc.Bindings,
		Req:       fc.Req,
	}
}

// Respond runs fn and hands its response to Done.
func Respond(ctx context.Context, fc *funcctx.Context, fn Func) error {
	res, err := fn(ctx, fc)
	if err != nil {
		return err
	}

	return fc.Done(res)
}

var _ Func = Echo
