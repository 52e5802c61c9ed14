package reconcile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/gateway"
	"github.com/lexkit/lexsync/resource"
)

// LocaleManager handles a bot locale and its two child collections, slot
// types and intents. Slot types are reconciled before intents so that slot
// declarations can resolve their types by name.
type LocaleManager struct {
	gw        *gateway.Gateway
	log       zerolog.Logger
	slotTypes *SlotTypeManager
	intents   *IntentManager
}

func NewLocaleManager(gw *gateway.Gateway, log zerolog.Logger) *LocaleManager {
	return &LocaleManager{
		gw:        gw,
		log:       log.With().Str("component", "locale-manager").Logger(),
		slotTypes: NewSlotTypeManager(gw, log),
		intents:   NewIntentManager(gw, log),
	}
}

// Create creates the locale, waits for it to settle, then creates declared
// slot types and intents in that order.
func (m *LocaleManager) Create(ctx context.Context, params resource.Props) (resource.Props, error) {
	response, err := m.gw.Invoke(ctx, "CreateBotLocale", params)
	if err != nil {
		return nil, err
	}

	botID := resource.String(response, "botId")
	botVersion := resource.String(response, "botVersion")
	localeID := resource.String(response, "localeId")

	_, err = m.gw.WaitForStatus(ctx, gateway.WaitSpec{
		Operation:   "DescribeBotLocale",
		Args:        resource.Props{"botId": botID, "botVersion": botVersion, "localeId": localeID},
		StatusField: "botLocaleStatus",
		InProgress:  []string{"Creating"},
		Target:      []string{"NotBuilt"},
	})
	if err != nil {
		return nil, err
	}

	scope := resource.Props{"botId": botID, "botVersion": botVersion, "localeId": localeID}
	for _, slotType := range resource.List(params, resource.AttrSlotTypes) {
		if _, err := m.slotTypes.Create(ctx, resource.Merge(scope, slotType)); err != nil {
			return nil, err
		}
	}
	for _, intent := range resource.List(params, resource.AttrIntents) {
		if _, err := m.intents.Create(ctx, resource.Merge(scope, intent)); err != nil {
			return nil, err
		}
	}
	return response, nil
}

// Update reconciles the locale in place: the locale's own parameters are
// updated only when their projection changed, then slot types and intents are
// diffed against the previous declaration.
func (m *LocaleManager) Update(ctx context.Context, botID string, locale, oldLocale resource.Props) error {
	localeID := resource.String(locale, "localeId")
	scope := resource.Props{"botId": botID, "botVersion": resource.DraftVersion}
	input := resource.Merge(scope, locale)

	newParams, err := m.gw.Project("UpdateBotLocale", input)
	if err != nil {
		return err
	}
	oldParams, oldErr := m.gw.Project("UpdateBotLocale", resource.Merge(scope, oldLocale))
	if oldErr != nil || !resource.Equal(newParams, oldParams) {
		if _, err := m.gw.Invoke(ctx, "UpdateBotLocale", input); err != nil {
			return err
		}
	}

	newSlotTypes := resource.List(locale, resource.AttrSlotTypes)
	oldSlotTypes := resource.List(oldLocale, resource.AttrSlotTypes)
	if len(newSlotTypes) > 0 || len(oldSlotTypes) > 0 {
		if err := m.reconcileSlotTypes(ctx, botID, resource.DraftVersion, localeID, newSlotTypes, oldSlotTypes); err != nil {
			return err
		}
	}

	return m.reconcileIntents(ctx, botID, resource.DraftVersion, localeID,
		resource.List(locale, resource.AttrIntents),
		resource.List(oldLocale, resource.AttrIntents))
}

// Delete removes the locale and waits until the service no longer reports it.
func (m *LocaleManager) Delete(ctx context.Context, params resource.Props) error {
	response, err := m.gw.Invoke(ctx, "DeleteBotLocale", params)
	if err != nil {
		return err
	}

	_, err = m.gw.WaitForStatus(ctx, gateway.WaitSpec{
		Operation: "DescribeBotLocale",
		Args: resource.Props{
			"botId":      resource.String(response, "botId"),
			"botVersion": resource.String(response, "botVersion"),
			"localeId":   resource.String(response, "localeId"),
		},
		StatusField: "botLocaleStatus",
		InProgress:  []string{"Deleting"},
	})
	return err
}

func (m *LocaleManager) reconcileSlotTypes(ctx context.Context, botID, botVersion, localeID string, newSlotTypes, oldSlotTypes []resource.Props) error {
	set := diffByName(newSlotTypes, oldSlotTypes, "slotTypeName")
	scope := resource.Props{"botId": botID, "botVersion": botVersion, "localeId": localeID}

	for _, slotType := range append(append([]resource.Props{}, set.toCreate...), set.toUpdate...) {
		name := resource.String(slotType, "slotTypeName")
		slotTypeID, err := m.slotTypes.GetSlotTypeID(ctx, botID, botVersion, localeID, name)
		if err != nil {
			return err
		}
		input := resource.Merge(scope, slotType)
		if slotTypeID == "" {
			if _, err := m.slotTypes.Create(ctx, input); err != nil {
				return err
			}
			continue
		}
		input["slotTypeId"] = slotTypeID
		if _, err := m.slotTypes.Update(ctx, input); err != nil {
			return err
		}
	}

	for _, slotType := range set.toDelete {
		name := resource.String(slotType, "slotTypeName")
		slotTypeID, err := m.slotTypes.GetSlotTypeID(ctx, botID, botVersion, localeID, name)
		if err != nil {
			return err
		}
		if slotTypeID == "" {
			m.log.Warn().Str("slotTypeName", name).Msg("slot type to delete already absent")
			continue
		}
		err = m.slotTypes.Delete(ctx, resource.Merge(scope, resource.Props{
			"slotTypeId":             slotTypeID,
			"skipResourceInUseCheck": true,
		}))
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *LocaleManager) reconcileIntents(ctx context.Context, botID, botVersion, localeID string, newIntents, oldIntents []resource.Props) error {
	set := diffByName(newIntents, oldIntents, "intentName")
	scope := resource.Props{"botId": botID, "botVersion": botVersion, "localeId": localeID}

	oldByName := make(map[string]resource.Props, len(oldIntents))
	for _, intent := range oldIntents {
		oldByName[resource.String(intent, "intentName")] = intent
	}

	for _, intent := range append(append([]resource.Props{}, set.toCreate...), set.toUpdate...) {
		name := resource.String(intent, "intentName")
		intentID, err := m.intents.GetIntentID(ctx, botID, botVersion, localeID, name)
		if err != nil {
			return err
		}
		if intentID == "" {
			if _, err := m.intents.Create(ctx, resource.Merge(scope, intent)); err != nil {
				return err
			}
			continue
		}
		old, hadOld := oldByName[name]
		if !hadOld {
			// Exists remotely but was never declared before; leave it to the
			// next full reconcile rather than clobbering unknown state.
			m.log.Debug().Str("intentName", name).Msg("existing intent has no previous declaration")
			continue
		}
		if _, err := m.intents.Update(ctx, botID, botVersion, localeID, intentID, intent, old); err != nil {
			return err
		}
	}

	for _, intent := range set.toDelete {
		name := resource.String(intent, "intentName")
		if name == resource.FallbackIntentName {
			m.log.Debug().Msg("fallback intent cannot be deleted")
			continue
		}
		intentID, err := m.intents.GetIntentID(ctx, botID, botVersion, localeID, name)
		if err != nil {
			return err
		}
		if intentID == "" {
			m.log.Warn().Str("intentName", name).Msg("intent to delete already absent")
			continue
		}
		err = m.intents.Delete(ctx, resource.Merge(scope, resource.Props{"intentId": intentID}))
		if err != nil {
			return err
		}
	}
	return nil
}
