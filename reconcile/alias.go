package reconcile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/gateway"
	"github.com/lexkit/lexsync/resource"
)

// AliasManager handles bot aliases. The service provisions a reserved test
// alias with every bot under a fixed identifier; that alias can neither be
// created nor deleted, only pointed at the draft.
type AliasManager struct {
	gw  *gateway.Gateway
	log zerolog.Logger
}

func NewAliasManager(gw *gateway.Gateway, log zerolog.Logger) *AliasManager {
	return &AliasManager{
		gw:  gw,
		log: log.With().Str("component", "alias-manager").Logger(),
	}
}

// Create creates the alias and waits for it to become available. Declaring
// the reserved test alias adopts the existing one via an in-place update
// instead of a create call.
func (m *AliasManager) Create(ctx context.Context, props resource.Props) (resource.Props, error) {
	if resource.String(props, "botAliasName") == resource.TestBotAliasName {
		return m.Update(ctx, resource.TestBotAliasID, props, resource.Props{})
	}

	response, err := m.gw.Invoke(ctx, "CreateBotAlias", props)
	if err != nil {
		return nil, err
	}

	_, err = m.gw.WaitForStatus(ctx, gateway.WaitSpec{
		Operation: "DescribeBotAlias",
		Args: resource.Props{
			"botId":      resource.String(props, "botId"),
			"botAliasId": resource.String(response, "botAliasId"),
		},
		StatusField: "botAliasStatus",
		InProgress:  []string{"Creating"},
		Target:      []string{"Available"},
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// Update updates the alias in place and waits for it to become available
// again. The reserved test alias is forced onto its fixed identifier and
// pinned to the draft regardless of the declared version.
func (m *AliasManager) Update(ctx context.Context, aliasID string, props, oldProps resource.Props) (resource.Props, error) {
	input := resource.Merge(resource.Props{"botAliasId": aliasID}, props)
	if resource.String(props, "botAliasName") == resource.TestBotAliasName {
		input["botAliasId"] = resource.TestBotAliasID
		input["botVersion"] = resource.DraftVersion
	}

	if resource.Equal(props, oldProps) {
		m.log.Warn().Str("botAliasId", resource.String(input, "botAliasId")).Msg("alias properties unchanged")
	}

	response, err := m.gw.Invoke(ctx, "UpdateBotAlias", input)
	if err != nil {
		return nil, err
	}

	_, err = m.gw.WaitForStatus(ctx, gateway.WaitSpec{
		Operation: "DescribeBotAlias",
		Args: resource.Props{
			"botId":      resource.String(props, "botId"),
			"botAliasId": resource.String(input, "botAliasId"),
		},
		StatusField: "botAliasStatus",
		InProgress:  []string{"Creating"},
		Target:      []string{"Available"},
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetAliasID resolves an alias name to its id, or "" when the bot has no
// alias by that name. The list operation has no server-side filter, so the
// match happens here.
func (m *AliasManager) GetAliasID(ctx context.Context, botID, aliasName string) (string, error) {
	if aliasName == resource.TestBotAliasName {
		return resource.TestBotAliasID, nil
	}

	summaries, err := listSummaries(ctx, m.gw, "ListBotAliases", resource.Props{
		"botId": botID,
	}, "botAliasSummaries")
	if err != nil {
		return "", err
	}

	for _, summary := range summaries {
		if resource.String(summary, "botAliasName") == aliasName {
			return resource.String(summary, "botAliasId"), nil
		}
	}
	m.log.Warn().Str("botAliasName", aliasName).Msg("alias not found")
	return "", nil
}

// Delete removes the alias. Deleting the reserved test alias is a no-op.
func (m *AliasManager) Delete(ctx context.Context, botID, aliasID string) error {
	if aliasID == resource.TestBotAliasID {
		m.log.Warn().Msg("test alias cannot be deleted")
		return nil
	}
	_, err := m.gw.Invoke(ctx, "DeleteBotAlias", resource.Props{
		"botId":                  botID,
		"botAliasId":             aliasID,
		"skipResourceInUseCheck": true,
	})
	return err
}

// WaitForDelete polls until the service no longer reports the alias.
func (m *AliasManager) WaitForDelete(ctx context.Context, botID, aliasID string) error {
	if aliasID == resource.TestBotAliasID {
		return nil
	}
	_, err := m.gw.WaitForStatus(ctx, gateway.WaitSpec{
		Operation:   "DescribeBotAlias",
		Args:        resource.Props{"botId": botID, "botAliasId": aliasID},
		StatusField: "botAliasStatus",
		InProgress:  []string{"Deleting"},
	})
	return err
}
