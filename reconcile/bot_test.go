package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/faults"
	"github.com/lexkit/lexsync/resource"
)

func testLocale(localeID string) resource.Props {
	return resource.Props{"localeId": localeID, "nluIntentConfidenceThreshold": "0.4"}
}

func testBotProps(locales ...resource.Props) resource.Props {
	props := resource.Props{
		"botName":                 "OrderFlowersBot",
		"roleArn":                 "arn:aws:iam::123456789012:role/bot",
		"dataPrivacy":             resource.Props{"childDirected": "false"},
		"idleSessionTTLInSeconds": "300",
	}
	items := make([]any, 0, len(locales))
	for _, locale := range locales {
		items = append(items, locale)
	}
	props[resource.AttrBotLocales] = items
	return props
}

func TestBotCreateEndToEndOrder(t *testing.T) {
	t.Parallel()

	model := newFakeModel()
	model.respond("CreateBot", resource.Props{"botId": "B1"})
	model.respond("DescribeBot", resource.Props{"botStatus": "Available"})
	model.respond("CreateBotLocale", resource.Props{"botId": "B1", "botVersion": "DRAFT", "localeId": "en_US"})
	model.respond("DescribeBotLocale", resource.Props{"botLocaleStatus": "NotBuilt"})
	model.respond("CreateSlotType", resource.Props{"slotTypeId": "ST1"})
	model.respond("CreateIntent", resource.Props{"botId": "B1", "botVersion": "DRAFT", "localeId": "en_US", "intentId": "I1"})
	model.respond("ListSlotTypes", resource.Props{
		"slotTypeSummaries": []any{resource.Props{"slotTypeName": "FlowerType", "slotTypeId": "ST1"}},
	})
	model.respond("CreateSlot", resource.Props{"slotId": "SL1"})

	locale := testLocale("en_US")
	locale[resource.AttrSlotTypes] = []any{resource.Props{
		"slotTypeName":          "FlowerType",
		"valueSelectionSetting": resource.Props{"resolutionStrategy": "OriginalValue"},
	}}
	intent := resource.Props{"intentName": "OrderFlowers"}
	intent[resource.AttrSlots] = []any{testSlot("flower")}
	locale[resource.AttrIntents] = []any{intent}

	service := NewService(testGateway(model), zerolog.Nop(), Options{})
	result, err := service.CreateBot(context.Background(), testBotProps(locale))
	if err != nil {
		t.Fatalf("CreateBot: %v", err)
	}

	expected := []string{
		"CreateBot", "DescribeBot",
		"CreateBotLocale", "DescribeBotLocale",
		"CreateSlotType",
		"CreateIntent", "ListSlotTypes", "CreateSlot", "UpdateIntent",
	}
	ops := model.operations()
	if len(ops) != len(expected) {
		t.Fatalf("expected %d calls, got %v", len(expected), ops)
	}
	for idx, op := range expected {
		if ops[idx] != op {
			t.Fatalf("call %d: expected %s, got %s (full: %v)", idx, op, ops[idx], ops)
		}
	}

	if result.BotID != "B1" {
		t.Fatalf("unexpected bot id: %q", result.BotID)
	}
	if len(result.BotLocaleIDs) != 1 || result.BotLocaleIDs[0] != "en_US" {
		t.Fatalf("unexpected locale ids: %v", result.BotLocaleIDs)
	}
	if result.Err != nil {
		t.Fatalf("unexpected partial failure: %v", result.Err)
	}
	if result.LastUpdated.IsZero() {
		t.Fatal("expected a last-updated timestamp")
	}
}

func TestBotCreateCapturesLocaleFailure(t *testing.T) {
	t.Parallel()

	model := newFakeModel()
	model.respond("CreateBot", resource.Props{"botId": "B1"})
	model.respond("DescribeBot", resource.Props{"botStatus": "Available"})
	model.respond("DescribeBotLocale", resource.Props{"botLocaleStatus": "NotBuilt"})
	model.handle("CreateBotLocale", func(params resource.Props) (resource.Props, error) {
		localeID, _ := params["localeId"].(string)
		if localeID == "de_DE" {
			return nil, faults.NewTypedError(faults.TransportError, "locale create failed", nil)
		}
		return resource.Props{"botId": "B1", "botVersion": "DRAFT", "localeId": localeID}, nil
	})

	service := NewService(testGateway(model), zerolog.Nop(), Options{})
	result, err := service.CreateBot(context.Background(), testBotProps(testLocale("en_US"), testLocale("de_DE")))
	if err != nil {
		t.Fatalf("CreateBot: %v", err)
	}

	if result.Err == nil {
		t.Fatal("expected the locale failure to be captured")
	}
	if len(result.BotLocaleIDs) != 1 || result.BotLocaleIDs[0] != "en_US" {
		t.Fatalf("expected only the succeeded locale, got %v", result.BotLocaleIDs)
	}
}

func TestBotUpdateIdempotentIssuesNoCalls(t *testing.T) {
	t.Parallel()

	model := newFakeModel()
	service := NewService(testGateway(model), zerolog.Nop(), Options{})

	result, err := service.UpdateBot(context.Background(), "B1",
		testBotProps(testLocale("en_US")),
		testBotProps(testLocale("en_US")))
	if err != nil {
		t.Fatalf("UpdateBot: %v", err)
	}

	if ops := model.operations(); len(ops) != 0 {
		t.Fatalf("expected no remote calls for an unchanged bot, got %v", ops)
	}
	if result.Err != nil {
		t.Fatalf("unexpected captured failure: %v", result.Err)
	}
	if len(result.BotLocaleIDs) != 0 {
		t.Fatalf("expected no reconciled locales, got %v", result.BotLocaleIDs)
	}
}

func TestBotUpdateDeletesRemovedLocale(t *testing.T) {
	t.Parallel()

	model := newFakeModel()
	model.respond("DeleteBotLocale", resource.Props{"botId": "B1", "botVersion": "DRAFT", "localeId": "de_DE"})
	model.handle("DescribeBotLocale", func(resource.Props) (resource.Props, error) {
		return nil, faults.NewTypedError(faults.NotFoundError, "gone", nil)
	})

	service := NewService(testGateway(model), zerolog.Nop(), Options{})
	result, err := service.UpdateBot(context.Background(), "B1",
		testBotProps(testLocale("en_US")),
		testBotProps(testLocale("en_US"), testLocale("de_DE")))
	if err != nil {
		t.Fatalf("UpdateBot: %v", err)
	}
	if result.Err != nil {
		t.Fatalf("unexpected captured failure: %v", result.Err)
	}

	ops := model.operations()
	if len(ops) != 2 || ops[0] != "DeleteBotLocale" || ops[1] != "DescribeBotLocale" {
		t.Fatalf("unexpected calls: %v", ops)
	}
	if deleted := model.paramsOf("DeleteBotLocale")[0]; deleted["localeId"] != "de_DE" {
		t.Fatalf("unexpected delete parameters: %#v", deleted)
	}
}

func TestBotUpdateCreatesNewLocale(t *testing.T) {
	t.Parallel()

	model := newFakeModel()
	model.respond("ListBotLocales", resource.Props{
		"botLocaleSummaries": []any{resource.Props{"localeId": "en_US"}},
	})
	model.respond("CreateBotLocale", resource.Props{"botId": "B1", "botVersion": "DRAFT", "localeId": "fr_FR"})
	model.respond("DescribeBotLocale", resource.Props{"botLocaleStatus": "NotBuilt"})

	service := NewService(testGateway(model), zerolog.Nop(), Options{})
	result, err := service.UpdateBot(context.Background(), "B1",
		testBotProps(testLocale("en_US"), testLocale("fr_FR")),
		testBotProps(testLocale("en_US")))
	if err != nil {
		t.Fatalf("UpdateBot: %v", err)
	}

	ops := model.operations()
	expected := []string{"ListBotLocales", "CreateBotLocale", "DescribeBotLocale"}
	if len(ops) != len(expected) {
		t.Fatalf("unexpected calls: %v", ops)
	}
	for idx, op := range expected {
		if ops[idx] != op {
			t.Fatalf("call %d: expected %s, got %v", idx, op, ops)
		}
	}
	if len(result.BotLocaleIDs) != 1 || result.BotLocaleIDs[0] != "fr_FR" {
		t.Fatalf("unexpected reconciled locales: %v", result.BotLocaleIDs)
	}
}

func TestBuildLocalesRunsInBatches(t *testing.T) {
	t.Parallel()

	model := newFakeModel()
	model.respond("DescribeBotLocale", resource.Props{"botLocaleStatus": "Built"})

	localeIDs := make([]string, 12)
	for idx := range localeIDs {
		localeIDs[idx] = fmt.Sprintf("L%02d", idx+1)
	}

	bots := NewBotManager(testGateway(model), zerolog.Nop())
	if err := bots.BuildLocales(context.Background(), "B1", localeIDs, 5); err != nil {
		t.Fatalf("BuildLocales: %v", err)
	}

	ops := model.operations()
	idx := 0
	for _, batchSize := range []int{5, 5, 2} {
		for i := 0; i < batchSize; i++ {
			if ops[idx] != "BuildBotLocale" {
				t.Fatalf("call %d: expected build, got %v", idx, ops)
			}
			idx++
		}
		for i := 0; i < batchSize; i++ {
			if ops[idx] != "DescribeBotLocale" {
				t.Fatalf("call %d: expected status poll, got %v", idx, ops)
			}
			idx++
		}
	}
	if idx != len(ops) {
		t.Fatalf("unexpected extra calls: %v", ops[idx:])
	}

	builds := model.paramsOf("BuildBotLocale")
	for i, build := range builds {
		if build["localeId"] != localeIDs[i] {
			t.Fatalf("build %d out of order: %#v", i, build)
		}
	}
}

func TestBuildLocalesRetriesOnThrottle(t *testing.T) {
	t.Parallel()

	model := newFakeModel()
	attempts := 0
	model.handle("BuildBotLocale", func(resource.Props) (resource.Props, error) {
		attempts++
		if attempts == 1 {
			return nil, faults.NewTypedError(faults.ThrottlingError, "throttled", nil)
		}
		return resource.Props{}, nil
	})
	model.respond("DescribeBotLocale", resource.Props{"botLocaleStatus": "Built"})

	bots := NewBotManager(testGateway(model), zerolog.Nop())
	if err := bots.BuildLocales(context.Background(), "B1", []string{"en_US"}, 5); err != nil {
		t.Fatalf("BuildLocales: %v", err)
	}
	if builds := model.paramsOf("BuildBotLocale"); len(builds) != 2 {
		t.Fatalf("expected a retried build, got %d attempts", len(builds))
	}
}

func TestGetBotIDFollowsPagination(t *testing.T) {
	t.Parallel()

	model := newFakeModel()
	pages := 0
	model.handle("ListBots", func(resource.Props) (resource.Props, error) {
		pages++
		if pages == 1 {
			return resource.Props{
				"botSummaries": []any{resource.Props{"botName": "other", "botId": "BX"}},
				"nextToken":    "t1",
			}, nil
		}
		return resource.Props{
			"botSummaries": []any{resource.Props{"botName": "OrderFlowersBot", "botId": "B1"}},
		}, nil
	})

	service := NewService(testGateway(model), zerolog.Nop(), Options{})
	botID, err := service.LookupBotID(context.Background(), "OrderFlowersBot")
	if err != nil {
		t.Fatalf("LookupBotID: %v", err)
	}
	if botID != "B1" {
		t.Fatalf("unexpected bot id: %q", botID)
	}

	lists := model.paramsOf("ListBots")
	if len(lists) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(lists))
	}
	if lists[1]["nextToken"] != "t1" {
		t.Fatalf("second page missing token: %#v", lists[1])
	}
}
