package reconcile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/gateway"
	"github.com/lexkit/lexsync/resource"
)

// SlotManager handles the slot leaf under an intent.
type SlotManager struct {
	gw  *gateway.Gateway
	log zerolog.Logger
}

func NewSlotManager(gw *gateway.Gateway, log zerolog.Logger) *SlotManager {
	return &SlotManager{
		gw:  gw,
		log: log.With().Str("component", "slot-manager").Logger(),
	}
}

// GetSlotID resolves a slot name within an intent to its remote identifier,
// or "" when the intent has no slot by that name.
func (m *SlotManager) GetSlotID(ctx context.Context, botID, botVersion, localeID, intentID, slotName string) (string, error) {
	summaries, err := listSummaries(ctx, m.gw, "ListSlots", resource.Props{
		"botId":      botID,
		"botVersion": botVersion,
		"localeId":   localeID,
		"intentId":   intentID,
		"filters":    nameFilter("SlotName", slotName),
	}, "slotSummaries")
	if err != nil {
		return "", err
	}

	for _, summary := range summaries {
		if resource.String(summary, "slotName") == slotName {
			return resource.String(summary, "slotId"), nil
		}
	}
	m.log.Debug().Str("slotName", slotName).Str("intentId", intentID).Msg("slot not found")
	return "", nil
}

func (m *SlotManager) Create(ctx context.Context, params resource.Props) (resource.Props, error) {
	return m.gw.Invoke(ctx, "CreateSlot", params)
}

func (m *SlotManager) Update(ctx context.Context, params resource.Props) (resource.Props, error) {
	return m.gw.Invoke(ctx, "UpdateSlot", params)
}

func (m *SlotManager) Delete(ctx context.Context, params resource.Props) error {
	_, err := m.gw.Invoke(ctx, "DeleteSlot", params)
	return err
}
