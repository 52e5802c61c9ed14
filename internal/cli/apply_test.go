package cli

import "testing"

func TestParseDesiredState(t *testing.T) {
	t.Parallel()

	data := []byte(`
bot:
  botName: OrderFlowersBot
  roleArn: arn:aws:iam::123456789012:role/bot
snapshot_version: true
aliases:
  - botAliasName: prod
`)
	state, err := parseDesiredState(data)
	if err != nil {
		t.Fatalf("parseDesiredState: %v", err)
	}
	if state.Bot["botName"] != "OrderFlowersBot" {
		t.Fatalf("unexpected bot: %#v", state.Bot)
	}
	if !state.SnapshotVersion {
		t.Fatal("expected snapshot_version to be set")
	}
	if len(state.Aliases) != 1 || state.Aliases[0]["botAliasName"] != "prod" {
		t.Fatalf("unexpected aliases: %#v", state.Aliases)
	}
}

func TestParseDesiredStateRejectsMissingBot(t *testing.T) {
	t.Parallel()

	if _, err := parseDesiredState([]byte("aliases: []\n")); err == nil {
		t.Fatal("expected an error for a missing bot")
	}
	if _, err := parseDesiredState([]byte("bot:\n  roleArn: arn\n")); err == nil {
		t.Fatal("expected an error for a missing bot name")
	}
}
