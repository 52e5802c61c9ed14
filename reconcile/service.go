package reconcile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/gateway"
	"github.com/lexkit/lexsync/resource"
)

// Options tunes the orchestration knobs that are not per-request.
type Options struct {
	// MaxConcurrentBuilds caps how many locale builds run in one batch.
	MaxConcurrentBuilds int
	// BuildRetryLimit caps throttle retries when starting a build.
	BuildRetryLimit int
}

// Service is the entry point lifecycle handlers talk to. It owns one manager
// per resource kind and fans requests out to them.
type Service struct {
	log                 zerolog.Logger
	bots                *BotManager
	versions            *VersionManager
	aliases             *AliasManager
	maxConcurrentBuilds int
}

func NewService(gw *gateway.Gateway, log zerolog.Logger, opts Options) *Service {
	bots := NewBotManager(gw, log)
	if opts.BuildRetryLimit > 0 {
		bots.buildRetryLimit = opts.BuildRetryLimit
	}
	maxBuilds := opts.MaxConcurrentBuilds
	if maxBuilds <= 0 {
		maxBuilds = defaultMaxConcurrentBuilds
	}
	return &Service{
		log:                 log.With().Str("component", "reconcile-service").Logger(),
		bots:                bots,
		versions:            NewVersionManager(gw, log),
		aliases:             NewAliasManager(gw, log),
		maxConcurrentBuilds: maxBuilds,
	}
}

func (s *Service) CreateBot(ctx context.Context, props resource.Props) (BotResult, error) {
	return s.bots.Create(ctx, props)
}

func (s *Service) UpdateBot(ctx context.Context, botID string, props, oldProps resource.Props) (BotResult, error) {
	return s.bots.Update(ctx, botID, props, oldProps)
}

func (s *Service) DeleteBot(ctx context.Context, botID string) error {
	return s.bots.Delete(ctx, botID)
}

func (s *Service) WaitForBotDeletion(ctx context.Context, botID string) error {
	return s.bots.WaitForDelete(ctx, botID)
}

func (s *Service) LookupBotID(ctx context.Context, botName string) (string, error) {
	return s.bots.GetBotID(ctx, botName)
}

// BuildBotLocales builds the given locales of the draft in bounded batches.
func (s *Service) BuildBotLocales(ctx context.Context, botID string, localeIDs []string) error {
	return s.bots.BuildLocales(ctx, botID, localeIDs, s.maxConcurrentBuilds)
}

func (s *Service) CreateBotVersion(ctx context.Context, props resource.Props) (resource.Props, error) {
	return s.versions.Create(ctx, props)
}

func (s *Service) DeleteBotVersion(ctx context.Context, botID, botVersion string) error {
	return s.versions.Delete(ctx, botID, botVersion)
}

func (s *Service) WaitForVersionDeletion(ctx context.Context, botID, botVersion string) error {
	return s.versions.WaitForDelete(ctx, botID, botVersion)
}

func (s *Service) CreateBotAlias(ctx context.Context, props resource.Props) (resource.Props, error) {
	return s.aliases.Create(ctx, props)
}

func (s *Service) UpdateBotAlias(ctx context.Context, aliasID string, props, oldProps resource.Props) (resource.Props, error) {
	return s.aliases.Update(ctx, aliasID, props, oldProps)
}

func (s *Service) DeleteBotAlias(ctx context.Context, botID, aliasID string) error {
	return s.aliases.Delete(ctx, botID, aliasID)
}

func (s *Service) WaitForAliasDeletion(ctx context.Context, botID, aliasID string) error {
	return s.aliases.WaitForDelete(ctx, botID, aliasID)
}

func (s *Service) LookupBotAliasID(ctx context.Context, botID, aliasName string) (string, error) {
	return s.aliases.GetAliasID(ctx, botID, aliasName)
}
