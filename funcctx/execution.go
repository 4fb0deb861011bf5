package funcctx

import (
	"github.com/google/uuid"

	"github.com/lambda-feedback/azshim/request"
)

// Environment variables describing the invocation, set by the host.
const (
	InvocationIDVar      = "EXECUTION_CONTEXT_INVOCATIONID"
	FunctionNameVar      = "EXECUTION_CONTEXT_FUNCTIONNAME"
	FunctionDirectoryVar = "EXECUTION_CONTEXT_FUNCTIONDIRECTORY"
)

// Execution describes a function invocation.
type Execution struct {
	InvocationID      string `json:"invocationId"`
	FunctionName      string `json:"functionName"`
	FunctionDirectory string `json:"functionDirectory"`
}

func newExecution(env request.Environ) Execution {
	id := env.Get(InvocationIDVar)
	if id == "" {
		id = uuid.NewString()
	}

	return Execution{
		InvocationID:      id,
		FunctionName:      env.Get(FunctionNameVar),
		FunctionDirectory: env.Get(FunctionDirectoryVar),
	}
}
