package reconcile

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/faults"
	"github.com/lexkit/lexsync/gateway"
	"github.com/lexkit/lexsync/resource"
)

const (
	defaultMaxConcurrentBuilds = 5
	defaultBuildRetryLimit     = 5
)

// BotResult reports the outcome of a bot create or update. Locale failures do
// not abort the whole operation: Err carries the first locale-level failure
// while BotLocaleIDs lists the locales that were reconciled successfully.
type BotResult struct {
	BotID        string
	BotLocaleIDs []string
	LastUpdated  time.Time
	Err          error
}

// BotManager handles the bot root and orchestrates its locale children,
// including locale builds.
type BotManager struct {
	gw              *gateway.Gateway
	log             zerolog.Logger
	locales         *LocaleManager
	buildRetryLimit int
}

func NewBotManager(gw *gateway.Gateway, log zerolog.Logger) *BotManager {
	return &BotManager{
		gw:              gw,
		log:             log.With().Str("component", "bot-manager").Logger(),
		locales:         NewLocaleManager(gw, log),
		buildRetryLimit: defaultBuildRetryLimit,
	}
}

// Create creates the bot, waits for it to become available, then creates the
// declared locales sequentially. The first locale failure stops locale
// creation and is captured on the result.
func (m *BotManager) Create(ctx context.Context, props resource.Props) (BotResult, error) {
	response, err := m.gw.Invoke(ctx, "CreateBot", props)
	if err != nil {
		return BotResult{}, err
	}
	botID := resource.String(response, "botId")

	if err := m.waitAvailable(ctx, botID); err != nil {
		return BotResult{}, err
	}

	result := BotResult{BotID: botID, LastUpdated: time.Now().UTC()}
	for _, locale := range resource.List(props, resource.AttrBotLocales) {
		input := resource.Merge(resource.Props{
			"botId":      botID,
			"botVersion": resource.DraftVersion,
		}, locale)
		if _, err := m.locales.Create(ctx, input); err != nil {
			m.log.Error().Err(err).Str("localeId", resource.String(locale, "localeId")).Msg("locale creation failed")
			result.Err = err
			break
		}
		result.BotLocaleIDs = append(result.BotLocaleIDs, resource.String(locale, "localeId"))
	}
	return result, nil
}

// Update updates the bot's own parameters when their projection changed, then
// reconciles the locale set. Locale-level failures are captured on the result
// alongside the locales that did reconcile.
func (m *BotManager) Update(ctx context.Context, botID string, props, oldProps resource.Props) (BotResult, error) {
	input := resource.Merge(resource.Props{"botId": botID}, props)

	newParams, err := m.gw.Project("UpdateBot", input, "botTags", "testBotAliasTags")
	if err != nil {
		return BotResult{}, err
	}
	oldParams, oldErr := m.gw.Project("UpdateBot", resource.Merge(resource.Props{"botId": botID}, oldProps), "botTags", "testBotAliasTags")
	if oldErr != nil || !resource.Equal(newParams, oldParams) {
		if _, err := m.gw.Invoke(ctx, "UpdateBot", input, "botTags", "testBotAliasTags"); err != nil {
			return BotResult{}, err
		}
		if err := m.waitAvailable(ctx, botID); err != nil {
			return BotResult{}, err
		}
	}

	result := BotResult{BotID: botID, LastUpdated: time.Now().UTC()}
	localeIDs, err := m.reconcileLocales(ctx, botID,
		resource.List(props, resource.AttrBotLocales),
		resource.List(oldProps, resource.AttrBotLocales))
	result.BotLocaleIDs = localeIDs
	if err != nil {
		m.log.Error().Err(err).Str("botId", botID).Msg("locale reconciliation failed")
		result.Err = err
	}
	return result, nil
}

// Delete issues the bot deletion. Waiting for removal is a separate step so
// callers can acknowledge early and poll afterwards.
func (m *BotManager) Delete(ctx context.Context, botID string) error {
	_, err := m.gw.Invoke(ctx, "DeleteBot", resource.Props{
		"botId":                  botID,
		"skipResourceInUseCheck": true,
	})
	return err
}

// WaitForDelete polls until the service no longer reports the bot.
func (m *BotManager) WaitForDelete(ctx context.Context, botID string) error {
	_, err := m.gw.WaitForStatus(ctx, gateway.WaitSpec{
		Operation:   "DescribeBot",
		Args:        resource.Props{"botId": botID},
		StatusField: "botStatus",
		InProgress:  []string{"Deleting"},
	})
	if err != nil {
		return err
	}
	m.log.Info().Str("botId", botID).Msg("bot removal confirmed")
	return nil
}

// GetBotID resolves a bot name to its id, or "" when no bot carries the name.
func (m *BotManager) GetBotID(ctx context.Context, botName string) (string, error) {
	summaries, err := listSummaries(ctx, m.gw, "ListBots", resource.Props{
		"filters": nameFilter("BotName", botName),
	}, "botSummaries")
	if err != nil {
		return "", err
	}

	for _, summary := range summaries {
		if resource.String(summary, "botName") == botName {
			return resource.String(summary, "botId"), nil
		}
	}
	m.log.Warn().Str("botName", botName).Msg("bot not found")
	return "", nil
}

// BuildLocales builds the given locales in batches of at most maxConcurrent:
// each batch is started in full, then every build in it is awaited before the
// next batch starts.
func (m *BotManager) BuildLocales(ctx context.Context, botID string, localeIDs []string, maxConcurrent int) error {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentBuilds
	}

	for start := 0; start < len(localeIDs); start += maxConcurrent {
		batch := localeIDs[start:min(start+maxConcurrent, len(localeIDs))]

		for _, localeID := range batch {
			if err := m.startBuild(ctx, botID, localeID); err != nil {
				return err
			}
		}
		for _, localeID := range batch {
			_, err := m.gw.WaitForStatus(ctx, gateway.WaitSpec{
				Operation: "DescribeBotLocale",
				Args: resource.Props{
					"botId":      botID,
					"botVersion": resource.DraftVersion,
					"localeId":   localeID,
				},
				StatusField: "botLocaleStatus",
				InProgress:  []string{"Building", "ReadyExpressTesting"},
				Target:      []string{"Built"},
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// startBuild issues one build request, backing off exponentially on
// throttling. The backoff is the poll interval raised to the retry count.
func (m *BotManager) startBuild(ctx context.Context, botID, localeID string) error {
	args := resource.Props{
		"botId":      botID,
		"botVersion": resource.DraftVersion,
		"localeId":   localeID,
	}

	for retries := 0; ; retries++ {
		_, err := m.gw.Invoke(ctx, "BuildBotLocale", args)
		if err == nil {
			return nil
		}
		if !faults.IsCategory(err, faults.ThrottlingError) || retries >= m.buildRetryLimit {
			return err
		}

		backoff := time.Duration(math.Pow(m.gw.PollInterval().Seconds(), float64(retries+1)) * float64(time.Second))
		m.log.Warn().
			Str("localeId", localeID).
			Int("retry", retries+1).
			Dur("backoff", backoff).
			Msg("build request throttled")

		select {
		case <-ctx.Done():
			return faults.NewTypedError(faults.InternalError, "build backoff interrupted", ctx.Err())
		case <-time.After(backoff):
		}
	}
}

func (m *BotManager) waitAvailable(ctx context.Context, botID string) error {
	_, err := m.gw.WaitForStatus(ctx, gateway.WaitSpec{
		Operation:   "DescribeBot",
		Args:        resource.Props{"botId": botID},
		StatusField: "botStatus",
		InProgress:  []string{"Creating", "Updating"},
		Target:      []string{"Available"},
	})
	return err
}

// reconcileLocales applies the locale set-diff, classifying upserts against
// the locales the service actually has. It returns the locale ids reconciled
// before any failure.
func (m *BotManager) reconcileLocales(ctx context.Context, botID string, newLocales, oldLocales []resource.Props) ([]string, error) {
	set := diffByName(newLocales, oldLocales, "localeId")
	var reconciled []string

	upserts := append(append([]resource.Props{}, set.toCreate...), set.toUpdate...)
	if len(upserts) > 0 {
		existing, err := m.listLocaleIDs(ctx, botID)
		if err != nil {
			return reconciled, err
		}

		oldByID := make(map[string]resource.Props, len(oldLocales))
		for _, locale := range oldLocales {
			oldByID[resource.String(locale, "localeId")] = locale
		}

		for _, locale := range upserts {
			localeID := resource.String(locale, "localeId")
			if _, found := existing[localeID]; found {
				if err := m.locales.Update(ctx, botID, locale, oldByID[localeID]); err != nil {
					return reconciled, err
				}
			} else {
				input := resource.Merge(resource.Props{
					"botId":      botID,
					"botVersion": resource.DraftVersion,
				}, locale)
				if _, err := m.locales.Create(ctx, input); err != nil {
					return reconciled, err
				}
			}
			reconciled = append(reconciled, localeID)
		}
	}

	for _, locale := range set.toDelete {
		localeID := resource.String(locale, "localeId")
		err := m.locales.Delete(ctx, resource.Props{
			"botId":      botID,
			"botVersion": resource.DraftVersion,
			"localeId":   localeID,
		})
		if err != nil {
			if faults.IsCategory(err, faults.NotFoundError) || faults.IsCategory(err, faults.ConflictError) {
				m.log.Info().Str("localeId", localeID).Msg("locale to delete already absent")
				continue
			}
			return reconciled, err
		}
	}

	return reconciled, nil
}

func (m *BotManager) listLocaleIDs(ctx context.Context, botID string) (map[string]struct{}, error) {
	summaries, err := listSummaries(ctx, m.gw, "ListBotLocales", resource.Props{
		"botId":      botID,
		"botVersion": resource.DraftVersion,
	}, "botLocaleSummaries")
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{}, len(summaries))
	for _, summary := range summaries {
		ids[resource.String(summary, "localeId")] = struct{}{}
	}
	return ids, nil
}
