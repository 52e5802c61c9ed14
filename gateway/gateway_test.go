package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/faults"
	"github.com/lexkit/lexsync/resource"
)

type scriptedClient struct {
	responses []resource.Props
	errs      []error
	calls     []string
}

func (c *scriptedClient) Invoke(_ context.Context, operation string, _ resource.Props) (resource.Props, error) {
	c.calls = append(c.calls, operation)
	idx := len(c.calls) - 1
	var err error
	if idx < len(c.errs) {
		err = c.errs[idx]
	}
	var response resource.Props
	if idx < len(c.responses) {
		response = c.responses[idx]
	}
	return response, err
}

func testOptions() Options {
	return Options{PollInterval: time.Millisecond, MaxWaitAttempts: 3}
}

func TestInvokeProjectsParameters(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{responses: []resource.Props{{"botId": "B123"}}}
	gw := New(client, zerolog.Nop(), testOptions())

	params := resource.Props{"botId": "B123"}
	params[resource.AttrBotLocales] = []any{}

	response, err := gw.Invoke(context.Background(), "DescribeBot", params)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if response["botId"] != "B123" {
		t.Fatalf("unexpected response: %#v", response)
	}
	if len(client.calls) != 1 || client.calls[0] != "DescribeBot" {
		t.Fatalf("unexpected calls: %v", client.calls)
	}
}

func TestWaitForStatusReachesTarget(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{responses: []resource.Props{
		{"botStatus": "Creating"},
		{"botStatus": "Creating"},
		{"botStatus": "Available"},
	}}
	gw := New(client, zerolog.Nop(), testOptions())

	response, err := gw.WaitForStatus(context.Background(), WaitSpec{
		Operation:   "DescribeBot",
		Args:        resource.Props{"botId": "B123"},
		StatusField: "botStatus",
		InProgress:  []string{"Creating"},
		Target:      []string{"Available"},
	})
	if err != nil {
		t.Fatalf("WaitForStatus: %v", err)
	}
	if response["botStatus"] != "Available" {
		t.Fatalf("unexpected final response: %#v", response)
	}
	if len(client.calls) != 3 {
		t.Fatalf("expected 3 polls, got %d", len(client.calls))
	}
}

func TestWaitForStatusFailsOnUnexpectedTerminal(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{responses: []resource.Props{
		{"botLocaleStatus": "Creating"},
		{"botLocaleStatus": "Failed"},
	}}
	gw := New(client, zerolog.Nop(), testOptions())

	_, err := gw.WaitForStatus(context.Background(), WaitSpec{
		Operation:   "DescribeBotLocale",
		Args:        resource.Props{"botId": "B123", "botVersion": "DRAFT", "localeId": "en_US"},
		StatusField: "botLocaleStatus",
		InProgress:  []string{"Creating"},
		Target:      []string{"NotBuilt"},
	})
	if !faults.IsCategory(err, faults.WaitTimeoutError) {
		t.Fatalf("expected wait-timeout fault, got %v", err)
	}
}

func TestWaitForStatusTimesOutInProgress(t *testing.T) {
	t.Parallel()

	responses := make([]resource.Props, 10)
	for idx := range responses {
		responses[idx] = resource.Props{"botStatus": "Creating"}
	}
	client := &scriptedClient{responses: responses}
	gw := New(client, zerolog.Nop(), testOptions())

	_, err := gw.WaitForStatus(context.Background(), WaitSpec{
		Operation:   "DescribeBot",
		Args:        resource.Props{"botId": "B123"},
		StatusField: "botStatus",
		InProgress:  []string{"Creating"},
		Target:      []string{"Available"},
	})
	if !faults.IsCategory(err, faults.WaitTimeoutError) {
		t.Fatalf("expected wait-timeout fault, got %v", err)
	}
	if len(client.calls) != 4 {
		t.Fatalf("expected max attempts + 1 polls, got %d", len(client.calls))
	}
}

func TestWaitForStatusNotFoundIsDeleteSuccess(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{
		responses: []resource.Props{{"botStatus": "Deleting"}, nil},
		errs:      []error{nil, faults.NewTypedError(faults.NotFoundError, "gone", nil)},
	}
	gw := New(client, zerolog.Nop(), testOptions())

	response, err := gw.WaitForStatus(context.Background(), WaitSpec{
		Operation:   "DescribeBot",
		Args:        resource.Props{"botId": "B123"},
		StatusField: "botStatus",
		InProgress:  []string{"Deleting"},
	})
	if err != nil {
		t.Fatalf("expected delete-wait success, got %v", err)
	}
	if response != nil {
		t.Fatalf("expected empty response on disappearance, got %#v", response)
	}
}

func TestWaitForStatusNotFoundFailsWithTarget(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{
		errs: []error{faults.NewTypedError(faults.NotFoundError, "gone", nil)},
	}
	gw := New(client, zerolog.Nop(), testOptions())

	_, err := gw.WaitForStatus(context.Background(), WaitSpec{
		Operation:   "DescribeBot",
		Args:        resource.Props{"botId": "B123"},
		StatusField: "botStatus",
		InProgress:  []string{"Creating"},
		Target:      []string{"Available"},
	})
	if !faults.IsCategory(err, faults.NotFoundError) {
		t.Fatalf("expected not-found to propagate when a target is expected, got %v", err)
	}
}
