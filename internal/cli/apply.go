package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lexkit/lexsync/reconcile"
	"github.com/lexkit/lexsync/resource"
	"github.com/lexkit/lexsync/yamlutil"
)

// desiredState is the one-shot input document: a bot tree, an optional
// version snapshot, and aliases to point at the result.
type desiredState struct {
	Bot             map[string]any   `yaml:"bot"`
	SnapshotVersion bool             `yaml:"snapshot_version"`
	Aliases         []map[string]any `yaml:"aliases"`
}

func parseDesiredState(data []byte) (desiredState, error) {
	var state desiredState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return desiredState{}, fmt.Errorf("parse desired state: %w", err)
	}
	if len(state.Bot) == 0 {
		return desiredState{}, fmt.Errorf("desired state declares no bot")
	}
	if resource.String(state.Bot, "botName") == "" {
		return desiredState{}, fmt.Errorf("desired state bot has no botName")
	}
	return state, nil
}

func newApplyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <desired-state.yaml>",
		Short: "Reconcile a desired state file against the remote service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			state, err := parseDesiredState(data)
			if err != nil {
				return err
			}

			rt, err := buildRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			botName := resource.String(state.Bot, "botName")
			botID, err := rt.svc.LookupBotID(ctx, botName)
			if err != nil {
				return err
			}

			var result reconcile.BotResult
			if botID == "" {
				result, err = rt.svc.CreateBot(ctx, state.Bot)
			} else {
				result, err = rt.svc.UpdateBot(ctx, botID, state.Bot, nil)
			}
			if err != nil {
				return err
			}
			if result.Err != nil {
				return fmt.Errorf("bot %s reconciled partially: %w", result.BotID, result.Err)
			}
			if err := rt.svc.BuildBotLocales(ctx, result.BotID, result.BotLocaleIDs); err != nil {
				return err
			}

			report := resource.Props{
				"botId":        result.BotID,
				"botLocaleIds": result.BotLocaleIDs,
			}

			if state.SnapshotVersion {
				props := resource.Props{"botId": result.BotID}
				props[resource.AttrBotLocaleIDs] = result.BotLocaleIDs
				props[resource.AttrLastUpdatedDateTime] = result.LastUpdated.Format(time.RFC3339)
				version, err := rt.svc.CreateBotVersion(ctx, props)
				if err != nil {
					return err
				}
				report["botVersion"] = resource.String(version, "botVersion")
			}

			for _, alias := range state.Aliases {
				props := resource.Merge(alias, resource.Props{"botId": result.BotID})
				if version, snapped := report["botVersion"]; snapped && resource.String(props, "botVersion") == "" {
					props["botVersion"] = version
				}
				aliasName := resource.String(props, "botAliasName")
				aliasID, err := rt.svc.LookupBotAliasID(ctx, result.BotID, aliasName)
				if err != nil {
					return err
				}
				if aliasID == "" {
					_, err = rt.svc.CreateBotAlias(ctx, props)
				} else {
					_, err = rt.svc.UpdateBotAlias(ctx, aliasID, props, nil)
				}
				if err != nil {
					return err
				}
			}

			out, err := yamlutil.MarshalWithIndent(report, 2)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
