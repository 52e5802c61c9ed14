package reconcile

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/faults"
	"github.com/lexkit/lexsync/resource"
)

func TestVersionCreateWaitsThroughVisibilityLag(t *testing.T) {
	t.Parallel()

	model := newFakeModel()
	model.respond("CreateBotVersion", resource.Props{"botId": "B1", "botVersion": "1"})
	describes := 0
	model.handle("DescribeBotVersion", func(resource.Props) (resource.Props, error) {
		describes++
		if describes == 1 {
			return nil, faults.NewTypedError(faults.NotFoundError, "not visible yet", nil)
		}
		return resource.Props{"botStatus": "Available"}, nil
	})

	manager := NewVersionManager(testGateway(model), zerolog.Nop())
	props := resource.Props{"botId": "B1"}
	props[resource.AttrBotLocaleIDs] = []any{"en_US", "de_DE"}
	props[resource.AttrLastUpdatedDateTime] = "2026-08-23T10:00:00Z"

	response, err := manager.Create(context.Background(), props)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if response["botVersion"] != "1" {
		t.Fatalf("unexpected version: %#v", response)
	}
	if describes != 2 {
		t.Fatalf("expected the describe to be retried, got %d calls", describes)
	}

	create := model.paramsOf("CreateBotVersion")[0]
	spec, ok := create["botVersionLocaleSpecification"].(map[string]any)
	if !ok || len(spec) != 2 {
		t.Fatalf("unexpected locale specification: %#v", create)
	}
	for _, localeID := range []string{"en_US", "de_DE"} {
		entry, ok := spec[localeID].(map[string]any)
		if !ok || entry["sourceBotVersion"] != resource.DraftVersion {
			t.Fatalf("locale %s not sourced from draft: %#v", localeID, spec)
		}
	}
}

func TestVersionDeleteAndWait(t *testing.T) {
	t.Parallel()

	model := newFakeModel()
	model.handle("DescribeBotVersion", func(resource.Props) (resource.Props, error) {
		return nil, faults.NewTypedError(faults.NotFoundError, "gone", nil)
	})

	manager := NewVersionManager(testGateway(model), zerolog.Nop())
	if err := manager.Delete(context.Background(), "B1", "2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := manager.WaitForDelete(context.Background(), "B1", "2"); err != nil {
		t.Fatalf("WaitForDelete: %v", err)
	}

	deleted := model.paramsOf("DeleteBotVersion")[0]
	if deleted["botVersion"] != "2" || deleted["skipResourceInUseCheck"] != true {
		t.Fatalf("unexpected delete parameters: %#v", deleted)
	}
}
