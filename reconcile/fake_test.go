package reconcile

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/gateway"
	"github.com/lexkit/lexsync/resource"
)

// fakeModel is a scripted remote service: each operation maps to a handler,
// and every call is recorded with its projected parameters.
type fakeModel struct {
	mu       sync.Mutex
	calls    []recordedCall
	handlers map[string]func(params resource.Props) (resource.Props, error)
}

type recordedCall struct {
	operation string
	params    resource.Props
}

func newFakeModel() *fakeModel {
	return &fakeModel{handlers: map[string]func(resource.Props) (resource.Props, error){}}
}

func (f *fakeModel) Invoke(_ context.Context, operation string, params resource.Props) (resource.Props, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, recordedCall{operation: operation, params: params})
	if handler, found := f.handlers[operation]; found {
		return handler(params)
	}
	return resource.Props{}, nil
}

func (f *fakeModel) handle(operation string, handler func(resource.Props) (resource.Props, error)) {
	f.handlers[operation] = handler
}

func (f *fakeModel) respond(operation string, response resource.Props) {
	f.handle(operation, func(resource.Props) (resource.Props, error) {
		return response, nil
	})
}

func (f *fakeModel) operations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	ops := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		ops = append(ops, call.operation)
	}
	return ops
}

func (f *fakeModel) paramsOf(operation string) []resource.Props {
	f.mu.Lock()
	defer f.mu.Unlock()

	var params []resource.Props
	for _, call := range f.calls {
		if call.operation == operation {
			params = append(params, call.params)
		}
	}
	return params
}

// mutations lists the calls that change remote state, in order.
func (f *fakeModel) mutations() []string {
	var ops []string
	for _, op := range f.operations() {
		for _, prefix := range []string{"Create", "Update", "Delete", "Build"} {
			if strings.HasPrefix(op, prefix) {
				ops = append(ops, op)
				break
			}
		}
	}
	return ops
}

// filterValue extracts the value of the single equality filter a list call
// carries.
func filterValue(params resource.Props) string {
	filters, _ := params["filters"].([]any)
	if len(filters) == 0 {
		return ""
	}
	filter, _ := filters[0].(map[string]any)
	values, _ := filter["values"].([]any)
	if len(values) == 0 {
		return ""
	}
	value, _ := values[0].(string)
	return value
}

func testGateway(model *fakeModel) *gateway.Gateway {
	return gateway.New(model, zerolog.Nop(), gateway.Options{
		PollInterval:    time.Millisecond,
		MaxWaitAttempts: 5,
	})
}
