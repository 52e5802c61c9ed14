package reconcile

import (
	"context"

	"github.com/lexkit/lexsync/gateway"
	"github.com/lexkit/lexsync/resource"
)

// listSummaries drains a paginated list operation, following nextToken until
// the service stops returning one.
func listSummaries(ctx context.Context, gw *gateway.Gateway, operation string, args resource.Props, summaryKey string) ([]resource.Props, error) {
	var summaries []resource.Props
	params := resource.Clone(args)
	for {
		response, err := gw.Invoke(ctx, operation, params)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, resource.List(response, summaryKey)...)

		token := resource.String(response, "nextToken")
		if token == "" {
			return summaries, nil
		}
		params["nextToken"] = token
	}
}

// nameFilter builds the single equality filter the list operations accept.
func nameFilter(field string, value string) []any {
	return []any{resource.Props{
		"name":     field,
		"values":   []any{value},
		"operator": "EQ",
	}}
}
