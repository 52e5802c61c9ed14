package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/faults"
	"github.com/lexkit/lexsync/gateway"
	"github.com/lexkit/lexsync/resource"
)

// IntentManager handles intents and their slot children. Slot ordering is
// significant: the service requires an explicit priority list, which is
// derived from the declared slot order.
type IntentManager struct {
	gw        *gateway.Gateway
	log       zerolog.Logger
	slotTypes *SlotTypeManager
	slots     *SlotManager
}

func NewIntentManager(gw *gateway.Gateway, log zerolog.Logger) *IntentManager {
	return &IntentManager{
		gw:        gw,
		log:       log.With().Str("component", "intent-manager").Logger(),
		slotTypes: NewSlotTypeManager(gw, log),
		slots:     NewSlotManager(gw, log),
	}
}

// GetIntentID resolves an intent name to its remote identifier, or "" when
// the locale has no intent by that name.
func (m *IntentManager) GetIntentID(ctx context.Context, botID, botVersion, localeID, intentName string) (string, error) {
	summaries, err := listSummaries(ctx, m.gw, "ListIntents", resource.Props{
		"botId":      botID,
		"botVersion": botVersion,
		"localeId":   localeID,
		"filters":    nameFilter("IntentName", intentName),
	}, "intentSummaries")
	if err != nil {
		return "", err
	}

	for _, summary := range summaries {
		if resource.String(summary, "intentName") == intentName {
			return resource.String(summary, "intentId"), nil
		}
	}
	m.log.Warn().Str("intentName", intentName).Str("localeId", localeID).Msg("intent not found")
	return "", nil
}

// Create creates an intent and its declared slots, then reapplies slot
// priorities in declared order. The fallback intent is provisioned by the
// service with every locale under a fixed identifier, so declaring it turns
// the create into an in-place update.
func (m *IntentManager) Create(ctx context.Context, params resource.Props) (resource.Props, error) {
	if resource.String(params, "intentName") == resource.FallbackIntentName {
		merged := resource.Merge(resource.Props{
			"intentId":              resource.FallbackIntentID,
			"parentIntentSignature": resource.FallbackIntentSignature,
		}, params)
		return m.gw.Invoke(ctx, "UpdateIntent", merged)
	}

	response, err := m.gw.Invoke(ctx, "CreateIntent", params)
	if err != nil {
		return nil, err
	}

	botID := resource.String(response, "botId")
	botVersion := resource.String(response, "botVersion")
	localeID := resource.String(response, "localeId")
	intentID := resource.String(response, "intentId")

	slots := resource.List(params, resource.AttrSlots)
	if len(slots) == 0 {
		return response, nil
	}

	created, err := m.createSlots(ctx, botID, botVersion, localeID, intentID, slots)
	if err != nil {
		return nil, err
	}

	priorities := make([]any, 0, len(created))
	for idx, slot := range created {
		priorities = append(priorities, resource.Props{
			"priority": idx + 1,
			"slotId":   resource.String(slot, "slotId"),
		})
	}

	update := resource.Merge(resource.Props{
		"intentId":       intentID,
		"slotPriorities": priorities,
	}, params)
	return m.gw.Invoke(ctx, "UpdateIntent", update)
}

// Update reconciles an intent in place: slots are diffed against the previous
// declaration first, then the intent itself is updated when its projected API
// parameters changed or the slot set moved. Priorities are re-resolved from
// the service for every declared slot so adds and re-orders take effect.
func (m *IntentManager) Update(ctx context.Context, botID, botVersion, localeID, intentID string, intent, oldIntent resource.Props) (resource.Props, error) {
	scope := resource.Props{
		"botId":      botID,
		"botVersion": botVersion,
		"localeId":   localeID,
		"intentId":   intentID,
	}
	input := resource.Merge(scope, intent)

	if resource.String(intent, "intentName") == resource.FallbackIntentName {
		merged := resource.Merge(resource.Props{
			"parentIntentSignature": resource.FallbackIntentSignature,
		}, input)
		return m.gw.Invoke(ctx, "UpdateIntent", merged)
	}

	newSlots := resource.List(intent, resource.AttrSlots)
	oldSlots := resource.List(oldIntent, resource.AttrSlots)
	slotsChanged := false
	if len(newSlots) > 0 || len(oldSlots) > 0 {
		changed, err := m.reconcileSlots(ctx, botID, botVersion, localeID, intentID, newSlots, oldSlots)
		if err != nil {
			return nil, err
		}
		slotsChanged = changed
	}

	if len(newSlots) > 0 {
		priorities, err := m.resolvePriorities(ctx, botID, botVersion, localeID, intentID, newSlots)
		if err != nil {
			return nil, err
		}
		input["slotPriorities"] = priorities
	}

	newParams, err := m.gw.Project("UpdateIntent", input)
	if err != nil {
		return nil, err
	}
	oldParams, oldErr := m.gw.Project("UpdateIntent", resource.Merge(scope, oldIntent))
	if oldErr == nil && resource.Equal(newParams, oldParams) && !slotsChanged {
		m.log.Debug().Str("intentId", intentID).Msg("intent unchanged")
		return nil, nil
	}

	return m.gw.Invoke(ctx, "UpdateIntent", input)
}

func (m *IntentManager) Delete(ctx context.Context, params resource.Props) error {
	_, err := m.gw.Invoke(ctx, "DeleteIntent", params)
	return err
}

func (m *IntentManager) createSlots(ctx context.Context, botID, botVersion, localeID, intentID string, slots []resource.Props) ([]resource.Props, error) {
	created := make([]resource.Props, 0, len(slots))
	for _, slot := range slots {
		input, err := m.slotInput(ctx, botID, botVersion, localeID, intentID, slot)
		if err != nil {
			return nil, err
		}
		response, err := m.slots.Create(ctx, input)
		if err != nil {
			return nil, err
		}
		created = append(created, response)
	}
	return created, nil
}

// reconcileSlots applies the slot set-diff and reports whether any mutation
// was issued.
func (m *IntentManager) reconcileSlots(ctx context.Context, botID, botVersion, localeID, intentID string, newSlots, oldSlots []resource.Props) (bool, error) {
	set := diffByName(newSlots, oldSlots, "slotName")
	if set.empty() {
		return false, nil
	}

	for _, slot := range append(append([]resource.Props{}, set.toCreate...), set.toUpdate...) {
		slotName := resource.String(slot, "slotName")
		slotID, err := m.slots.GetSlotID(ctx, botID, botVersion, localeID, intentID, slotName)
		if err != nil {
			return false, err
		}
		input, err := m.slotInput(ctx, botID, botVersion, localeID, intentID, slot)
		if err != nil {
			return false, err
		}
		if slotID == "" {
			if _, err := m.slots.Create(ctx, input); err != nil {
				return false, err
			}
			continue
		}
		input["slotId"] = slotID
		if _, err := m.slots.Update(ctx, input); err != nil {
			return false, err
		}
	}

	for _, slot := range set.toDelete {
		slotName := resource.String(slot, "slotName")
		slotID, err := m.slots.GetSlotID(ctx, botID, botVersion, localeID, intentID, slotName)
		if err != nil {
			return false, err
		}
		if slotID == "" {
			m.log.Warn().Str("slotName", slotName).Msg("slot to delete already absent")
			continue
		}
		err = m.slots.Delete(ctx, resource.Props{
			"botId":      botID,
			"botVersion": botVersion,
			"localeId":   localeID,
			"intentId":   intentID,
			"slotId":     slotID,
		})
		if err != nil {
			return false, err
		}
	}

	return true, nil
}

// resolvePriorities maps the declared slot order onto remote slot ids.
// Declared slots missing remotely keep their position; they are skipped with
// a warning rather than failing the whole update.
func (m *IntentManager) resolvePriorities(ctx context.Context, botID, botVersion, localeID, intentID string, slots []resource.Props) ([]any, error) {
	priorities := make([]any, 0, len(slots))
	for idx, slot := range slots {
		slotName := resource.String(slot, "slotName")
		slotID, err := m.slots.GetSlotID(ctx, botID, botVersion, localeID, intentID, slotName)
		if err != nil {
			return nil, err
		}
		if slotID == "" {
			m.log.Warn().Str("slotName", slotName).Msg("skipping priority for unresolved slot")
			continue
		}
		priorities = append(priorities, resource.Props{
			"priority": idx + 1,
			"slotId":   slotID,
		})
	}
	return priorities, nil
}

func (m *IntentManager) slotInput(ctx context.Context, botID, botVersion, localeID, intentID string, slot resource.Props) (resource.Props, error) {
	slotTypeID, err := m.resolveSlotTypeID(ctx, botID, botVersion, localeID, slot)
	if err != nil {
		return nil, err
	}
	return resource.Merge(resource.Props{
		"botId":      botID,
		"botVersion": botVersion,
		"localeId":   localeID,
		"intentId":   intentID,
		"slotTypeId": slotTypeID,
	}, slot), nil
}

// resolveSlotTypeID turns a slot declaration into a usable slot-type id.
// Custom slot types are referenced by name and resolved through a listing;
// built-in slot types may be referenced directly by their namespaced id.
func (m *IntentManager) resolveSlotTypeID(ctx context.Context, botID, botVersion, localeID string, slot resource.Props) (string, error) {
	slotName := resource.String(slot, "slotName")
	slotTypeName := resource.String(slot, resource.AttrSlotTypeName)

	switch {
	case slotTypeName != "":
		slotTypeID, err := m.slotTypes.GetSlotTypeID(ctx, botID, botVersion, localeID, slotTypeName)
		if err != nil {
			return "", err
		}
		if slotTypeID == "" {
			return "", faults.NewTypedError(
				faults.ValidationError,
				fmt.Sprintf("unable to resolve slot type %q for slot %q", slotTypeName, slotName),
				nil,
			)
		}
		return slotTypeID, nil
	case strings.HasPrefix(resource.String(slot, "slotTypeId"), resource.BuiltinPrefix):
		return resource.String(slot, "slotTypeId"), nil
	default:
		return "", faults.NewTypedError(
			faults.ValidationError,
			fmt.Sprintf("slot %q needs a %s attribute or a built-in slotTypeId", slotName, resource.AttrSlotTypeName),
			nil,
		)
	}
}
