package lifecycle

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lexkit/lexsync/faults"
	"github.com/lexkit/lexsync/reconcile"
	"github.com/lexkit/lexsync/resource"
)

// Reconciler is the slice of the reconcile facade the lifecycle dispatcher
// needs. Satisfied by *reconcile.Service.
type Reconciler interface {
	CreateBot(ctx context.Context, props resource.Props) (reconcile.BotResult, error)
	UpdateBot(ctx context.Context, botID string, props, oldProps resource.Props) (reconcile.BotResult, error)
	DeleteBot(ctx context.Context, botID string) error
	WaitForBotDeletion(ctx context.Context, botID string) error
	LookupBotID(ctx context.Context, botName string) (string, error)
	BuildBotLocales(ctx context.Context, botID string, localeIDs []string) error

	CreateBotVersion(ctx context.Context, props resource.Props) (resource.Props, error)

	CreateBotAlias(ctx context.Context, props resource.Props) (resource.Props, error)
	UpdateBotAlias(ctx context.Context, aliasID string, props, oldProps resource.Props) (resource.Props, error)
	DeleteBotAlias(ctx context.Context, botID, aliasID string) error
	WaitForAliasDeletion(ctx context.Context, botID, aliasID string) error
	LookupBotAliasID(ctx context.Context, botID, aliasName string) (string, error)
}

// Service-assigned identifiers are 10 alphanumeric characters. Anything else
// in the physical id field is a placeholder from an earlier failed request.
var physicalIDPattern = regexp.MustCompile(`^[0-9A-Za-z]{10}$`)

// Handler routes lifecycle events to the reconcile facade per resource type.
type Handler struct {
	log zerolog.Logger
	svc Reconciler
}

func NewHandler(svc Reconciler, log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("component", "lifecycle").Logger(),
		svc: svc,
	}
}

// Handle processes one event and always returns a response; errors are folded
// into a FAILED status with the reason attached.
func (h *Handler) Handle(ctx context.Context, event Event) Response {
	requestID := event.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := h.log.With().
		Str("requestId", requestID).
		Str("resourceType", event.ResourceType).
		Str("requestType", event.RequestType).
		Logger()
	log.Info().Msg("handling lifecycle request")

	physicalID, data, err := h.dispatch(ctx, log, event)
	if physicalID == "" {
		physicalID = event.PhysicalResourceID
	}
	if err != nil {
		log.Error().Err(err).Msg("lifecycle request failed")
		return Response{
			Status:             StatusFailed,
			Reason:             err.Error(),
			RequestID:          requestID,
			PhysicalResourceID: physicalID,
			Data:               data,
		}
	}

	log.Info().Str("physicalId", physicalID).Msg("lifecycle request succeeded")
	return Response{
		Status:             StatusSuccess,
		RequestID:          requestID,
		PhysicalResourceID: physicalID,
		Data:               data,
	}
}

func (h *Handler) dispatch(ctx context.Context, log zerolog.Logger, event Event) (string, resource.Props, error) {
	switch event.ResourceType {
	case ResourceBot:
		return h.handleBot(ctx, log, event)
	case ResourceVersion:
		return h.handleVersion(ctx, log, event)
	case ResourceAlias:
		return h.handleAlias(ctx, log, event)
	}
	return "", nil, faults.NewTypedError(
		faults.ValidationError,
		fmt.Sprintf("unsupported resource type %q", event.ResourceType),
		nil,
	)
}

func (h *Handler) handleBot(ctx context.Context, log zerolog.Logger, event Event) (string, resource.Props, error) {
	switch event.RequestType {
	case RequestCreate:
		result, err := h.svc.CreateBot(ctx, event.ResourceProperties)
		if err != nil {
			return "", nil, err
		}
		return h.finishBot(ctx, result)
	case RequestUpdate:
		result, err := h.svc.UpdateBot(ctx, event.PhysicalResourceID, event.ResourceProperties, event.OldResourceProperties)
		if err != nil {
			return "", nil, err
		}
		return h.finishBot(ctx, result)
	case RequestDelete:
		botID, err := h.resolveBotID(ctx, log, event)
		if err != nil {
			return "", nil, err
		}
		if botID == "" {
			log.Warn().Msg("bot already absent, nothing to delete")
			return event.PhysicalResourceID, nil, nil
		}
		if err := h.svc.DeleteBot(ctx, botID); err != nil && !faults.IsCategory(err, faults.NotFoundError) {
			return botID, nil, err
		}
		return botID, nil, h.svc.WaitForBotDeletion(ctx, botID)
	}
	return "", nil, unknownRequestType(event)
}

// finishBot runs locale builds after a clean reconcile. A captured partial
// failure skips the builds and fails the request while keeping the physical
// id and the locales that did reconcile.
func (h *Handler) finishBot(ctx context.Context, result reconcile.BotResult) (string, resource.Props, error) {
	data := resource.Props{
		"botId":                          result.BotID,
		resource.AttrBotLocaleIDs:        result.BotLocaleIDs,
		resource.AttrLastUpdatedDateTime: result.LastUpdated.Format(time.RFC3339),
	}
	if result.Err != nil {
		return result.BotID, data, result.Err
	}
	if err := h.svc.BuildBotLocales(ctx, result.BotID, result.BotLocaleIDs); err != nil {
		return result.BotID, data, err
	}
	return result.BotID, data, nil
}

func (h *Handler) resolveBotID(ctx context.Context, log zerolog.Logger, event Event) (string, error) {
	if physicalIDPattern.MatchString(event.PhysicalResourceID) {
		return event.PhysicalResourceID, nil
	}
	botName := resource.String(event.ResourceProperties, "botName")
	log.Warn().Str("physicalId", event.PhysicalResourceID).Str("botName", botName).
		Msg("physical id is not a service identifier, resolving by name")
	return h.svc.LookupBotID(ctx, botName)
}

func (h *Handler) handleVersion(ctx context.Context, log zerolog.Logger, event Event) (string, resource.Props, error) {
	switch event.RequestType {
	case RequestCreate, RequestUpdate:
		// Versions are immutable; an update snapshots a fresh one.
		response, err := h.svc.CreateBotVersion(ctx, event.ResourceProperties)
		if err != nil {
			return "", nil, err
		}
		return resource.String(response, "botVersion"), response, nil
	case RequestDelete:
		// Numbered versions disappear with their bot; deleting one on its own
		// would break aliases still pinned to it.
		log.Info().Str("botVersion", event.PhysicalResourceID).Msg("version deletion left to bot removal")
		return event.PhysicalResourceID, nil, nil
	}
	return "", nil, unknownRequestType(event)
}

func (h *Handler) handleAlias(ctx context.Context, log zerolog.Logger, event Event) (string, resource.Props, error) {
	botID := resource.String(event.ResourceProperties, "botId")

	switch event.RequestType {
	case RequestCreate:
		response, err := h.svc.CreateBotAlias(ctx, event.ResourceProperties)
		if err != nil {
			return "", nil, err
		}
		return resource.String(response, "botAliasId"), response, nil
	case RequestUpdate:
		aliasID, err := h.resolveAliasID(ctx, log, event, botID)
		if err != nil {
			return "", nil, err
		}
		response, err := h.svc.UpdateBotAlias(ctx, aliasID, event.ResourceProperties, event.OldResourceProperties)
		if err != nil {
			return aliasID, nil, err
		}
		if id := resource.String(response, "botAliasId"); id != "" {
			aliasID = id
		}
		return aliasID, response, nil
	case RequestDelete:
		aliasID, err := h.resolveAliasID(ctx, log, event, botID)
		if err != nil {
			return "", nil, err
		}
		if aliasID == "" {
			log.Warn().Msg("alias already absent, nothing to delete")
			return event.PhysicalResourceID, nil, nil
		}
		if err := h.svc.DeleteBotAlias(ctx, botID, aliasID); err != nil && !faults.IsCategory(err, faults.NotFoundError) {
			return aliasID, nil, err
		}
		return aliasID, nil, h.svc.WaitForAliasDeletion(ctx, botID, aliasID)
	}
	return "", nil, unknownRequestType(event)
}

func (h *Handler) resolveAliasID(ctx context.Context, log zerolog.Logger, event Event, botID string) (string, error) {
	if physicalIDPattern.MatchString(event.PhysicalResourceID) {
		return event.PhysicalResourceID, nil
	}
	aliasName := resource.String(event.ResourceProperties, "botAliasName")
	log.Warn().Str("physicalId", event.PhysicalResourceID).Str("botAliasName", aliasName).
		Msg("physical id is not a service identifier, resolving by name")
	return h.svc.LookupBotAliasID(ctx, botID, aliasName)
}

func unknownRequestType(event Event) error {
	return faults.NewTypedError(
		faults.ValidationError,
		fmt.Sprintf("unsupported request type %q for %s", event.RequestType, event.ResourceType),
		nil,
	)
}
