package reconcile

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/faults"
	"github.com/lexkit/lexsync/gateway"
	"github.com/lexkit/lexsync/resource"
)

// A freshly created version can take a few polls to become describable at
// all; the describe is retried through that window.
const defaultVersionCreateTries = 5

// VersionManager snapshots the draft into a numbered immutable version.
type VersionManager struct {
	gw             *gateway.Gateway
	log            zerolog.Logger
	maxCreateTries int
}

func NewVersionManager(gw *gateway.Gateway, log zerolog.Logger) *VersionManager {
	return &VersionManager{
		gw:             gw,
		log:            log.With().Str("component", "version-manager").Logger(),
		maxCreateTries: defaultVersionCreateTries,
	}
}

// Create snapshots the draft of every listed locale into a new version and
// waits for the version to become available. The version number is assigned
// by the service.
func (m *VersionManager) Create(ctx context.Context, props resource.Props) (resource.Props, error) {
	botID := resource.String(props, "botId")

	localeSpec := resource.Props{}
	for _, localeID := range resource.StringList(props, resource.AttrBotLocaleIDs) {
		localeSpec[localeID] = resource.Props{"sourceBotVersion": resource.DraftVersion}
	}

	description := "Automated snapshot"
	if updated := resource.String(props, resource.AttrLastUpdatedDateTime); updated != "" {
		description += " of " + updated
	}

	response, err := m.gw.Invoke(ctx, "CreateBotVersion", resource.Props{
		"botId":                         botID,
		"description":                   description,
		"botVersionLocaleSpecification": localeSpec,
	})
	if err != nil {
		return nil, err
	}
	botVersion := resource.String(response, "botVersion")

	if err := m.waitForCreate(ctx, botID, botVersion); err != nil {
		return nil, err
	}
	return resource.Props{"botId": botID, "botVersion": botVersion}, nil
}

func (m *VersionManager) waitForCreate(ctx context.Context, botID, botVersion string) error {
	args := resource.Props{"botId": botID, "botVersion": botVersion}

	var lastErr error
	for tries := 0; tries < m.maxCreateTries; tries++ {
		_, err := m.gw.WaitForStatus(ctx, gateway.WaitSpec{
			Operation:   "DescribeBotVersion",
			Args:        args,
			StatusField: "botStatus",
			InProgress:  []string{"Creating", "Versioning"},
			Target:      []string{"Available"},
		})
		if err == nil {
			return nil
		}
		if !faults.IsCategory(err, faults.NotFoundError) {
			return err
		}
		lastErr = err
		m.log.Debug().Str("botVersion", botVersion).Msg("version not yet visible")

		select {
		case <-ctx.Done():
			return faults.NewTypedError(faults.InternalError, "version wait interrupted", ctx.Err())
		case <-time.After(m.gw.PollInterval()):
		}
	}
	return lastErr
}

func (m *VersionManager) Delete(ctx context.Context, botID, botVersion string) error {
	_, err := m.gw.Invoke(ctx, "DeleteBotVersion", resource.Props{
		"botId":                  botID,
		"botVersion":             botVersion,
		"skipResourceInUseCheck": true,
	})
	return err
}

// WaitForDelete polls until the service no longer reports the version.
func (m *VersionManager) WaitForDelete(ctx context.Context, botID, botVersion string) error {
	_, err := m.gw.WaitForStatus(ctx, gateway.WaitSpec{
		Operation:   "DescribeBotVersion",
		Args:        resource.Props{"botId": botID, "botVersion": botVersion},
		StatusField: "botStatus",
		InProgress:  []string{"Deleting"},
	})
	if err != nil {
		return err
	}
	m.log.Info().Str("botId", botID).Str("botVersion", botVersion).Msg("version removal confirmed")
	return nil
}
