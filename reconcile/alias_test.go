package reconcile

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/resource"
)

func TestAliasCreateReservedTestAliasUpdatesInPlace(t *testing.T) {
	t.Parallel()

	model := newFakeModel()
	model.respond("DescribeBotAlias", resource.Props{"botAliasStatus": "Available"})
	manager := NewAliasManager(testGateway(model), zerolog.Nop())

	props := resource.Props{
		"botId":        "B1",
		"botAliasName": resource.TestBotAliasName,
		"botVersion":   "3",
	}
	if _, err := manager.Create(context.Background(), props); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if mutations := model.mutations(); len(mutations) != 1 || mutations[0] != "UpdateBotAlias" {
		t.Fatalf("expected a single in-place update, got %v", mutations)
	}
	update := model.paramsOf("UpdateBotAlias")[0]
	if update["botAliasId"] != resource.TestBotAliasID {
		t.Fatalf("unexpected alias id: %#v", update)
	}
	if update["botVersion"] != resource.DraftVersion {
		t.Fatalf("test alias must stay pinned to the draft: %#v", update)
	}
}

func TestAliasCreateRegularWaitsForAvailability(t *testing.T) {
	t.Parallel()

	model := newFakeModel()
	model.respond("CreateBotAlias", resource.Props{"botAliasId": "A1", "botAliasName": "prod"})
	model.respond("DescribeBotAlias", resource.Props{"botAliasStatus": "Available"})

	manager := NewAliasManager(testGateway(model), zerolog.Nop())
	response, err := manager.Create(context.Background(), resource.Props{
		"botId":        "B1",
		"botAliasName": "prod",
		"botVersion":   "1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if response["botAliasId"] != "A1" {
		t.Fatalf("unexpected response: %#v", response)
	}

	ops := model.operations()
	if len(ops) != 2 || ops[0] != "CreateBotAlias" || ops[1] != "DescribeBotAlias" {
		t.Fatalf("unexpected calls: %v", ops)
	}
}

func TestAliasUpdateWaitsForAvailability(t *testing.T) {
	t.Parallel()

	model := newFakeModel()
	model.respond("UpdateBotAlias", resource.Props{"botAliasId": "A1"})
	describes := 0
	model.handle("DescribeBotAlias", func(resource.Props) (resource.Props, error) {
		describes++
		if describes == 1 {
			return resource.Props{"botAliasStatus": "Creating"}, nil
		}
		return resource.Props{"botAliasStatus": "Available"}, nil
	})

	manager := NewAliasManager(testGateway(model), zerolog.Nop())
	_, err := manager.Update(context.Background(), "A1", resource.Props{
		"botId":        "B1",
		"botAliasName": "prod",
		"botVersion":   "2",
	}, resource.Props{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	ops := model.operations()
	expected := []string{"UpdateBotAlias", "DescribeBotAlias", "DescribeBotAlias"}
	if len(ops) != len(expected) {
		t.Fatalf("unexpected calls: %v", ops)
	}
	for i, op := range expected {
		if ops[i] != op {
			t.Fatalf("unexpected calls: %v", ops)
		}
	}
	describe := model.paramsOf("DescribeBotAlias")[0]
	if describe["botId"] != "B1" || describe["botAliasId"] != "A1" {
		t.Fatalf("unexpected describe scope: %#v", describe)
	}
}

func TestAliasDeleteReservedTestAliasIsNoOp(t *testing.T) {
	t.Parallel()

	model := newFakeModel()
	manager := NewAliasManager(testGateway(model), zerolog.Nop())

	if err := manager.Delete(context.Background(), "B1", resource.TestBotAliasID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := manager.WaitForDelete(context.Background(), "B1", resource.TestBotAliasID); err != nil {
		t.Fatalf("WaitForDelete: %v", err)
	}
	if ops := model.operations(); len(ops) != 0 {
		t.Fatalf("expected no remote calls, got %v", ops)
	}
}

func TestAliasGetIDResolvesByName(t *testing.T) {
	t.Parallel()

	model := newFakeModel()
	model.respond("ListBotAliases", resource.Props{
		"botAliasSummaries": []any{
			resource.Props{"botAliasName": "staging", "botAliasId": "A2"},
			resource.Props{"botAliasName": "prod", "botAliasId": "A1"},
		},
	})

	manager := NewAliasManager(testGateway(model), zerolog.Nop())
	aliasID, err := manager.GetAliasID(context.Background(), "B1", "prod")
	if err != nil {
		t.Fatalf("GetAliasID: %v", err)
	}
	if aliasID != "A1" {
		t.Fatalf("unexpected alias id: %q", aliasID)
	}

	reserved, err := manager.GetAliasID(context.Background(), "B1", resource.TestBotAliasName)
	if err != nil {
		t.Fatalf("GetAliasID: %v", err)
	}
	if reserved != resource.TestBotAliasID {
		t.Fatalf("unexpected reserved alias id: %q", reserved)
	}
}
