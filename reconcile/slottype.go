package reconcile

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/gateway"
	"github.com/lexkit/lexsync/resource"
)

// SlotTypeManager handles the slot-type leaf of the resource tree. Slot types
// are identified by name in configuration and by a service-assigned id on the
// wire, so every mutation starts with a name lookup.
type SlotTypeManager struct {
	gw  *gateway.Gateway
	log zerolog.Logger
}

func NewSlotTypeManager(gw *gateway.Gateway, log zerolog.Logger) *SlotTypeManager {
	return &SlotTypeManager{
		gw:  gw,
		log: log.With().Str("component", "slot-type-manager").Logger(),
	}
}

// GetSlotTypeID resolves a slot-type name to its remote identifier, or ""
// when the locale has no slot type by that name. Built-in slot types live in
// a reserved namespace that cannot be listed; their name doubles as their id.
func (m *SlotTypeManager) GetSlotTypeID(ctx context.Context, botID, botVersion, localeID, slotTypeName string) (string, error) {
	if strings.HasPrefix(slotTypeName, resource.BuiltinPrefix) {
		return slotTypeName, nil
	}

	summaries, err := listSummaries(ctx, m.gw, "ListSlotTypes", resource.Props{
		"botId":      botID,
		"botVersion": botVersion,
		"localeId":   localeID,
		"filters":    nameFilter("SlotTypeName", slotTypeName),
	}, "slotTypeSummaries")
	if err != nil {
		return "", err
	}

	for _, summary := range summaries {
		if resource.String(summary, "slotTypeName") == slotTypeName {
			return resource.String(summary, "slotTypeId"), nil
		}
	}
	m.log.Debug().Str("slotTypeName", slotTypeName).Str("localeId", localeID).Msg("slot type not found")
	return "", nil
}

func (m *SlotTypeManager) Create(ctx context.Context, params resource.Props) (resource.Props, error) {
	return m.gw.Invoke(ctx, "CreateSlotType", params)
}

func (m *SlotTypeManager) Update(ctx context.Context, params resource.Props) (resource.Props, error) {
	return m.gw.Invoke(ctx, "UpdateSlotType", params)
}

func (m *SlotTypeManager) Delete(ctx context.Context, params resource.Props) error {
	_, err := m.gw.Invoke(ctx, "DeleteSlotType", params)
	return err
}
