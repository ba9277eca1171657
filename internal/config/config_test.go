package config

import "testing"

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(map[string]string{})
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}

	if cfg.MaxTurns != 20 {
		t.Errorf("MaxTurns = %d, want 20", cfg.MaxTurns)
	}
	if cfg.SituationHandSize != 3 {
		t.Errorf("SituationHandSize = %d, want 3", cfg.SituationHandSize)
	}
	if cfg.TurnDurationSec != 45 {
		t.Errorf("TurnDurationSec = %d, want 45", cfg.TurnDurationSec)
	}
	if !cfg.BotsEnabled {
		t.Error("BotsEnabled = false, want true")
	}
	if cfg.CatalogPath != "data/catalog.json" {
		t.Errorf("CatalogPath = %q", cfg.CatalogPath)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(map[string]string{
		"CATALYST_MAX_TURNS":         "30",
		"CATALYST_TURN_DURATION_SEC": "15",
		"CATALYST_BOTS_ENABLED":      "false",
		"CATALYST_CATALOG_PATH":      "/tmp/catalog.json",
	})
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}

	if cfg.MaxTurns != 30 {
		t.Errorf("MaxTurns = %d, want 30", cfg.MaxTurns)
	}
	if cfg.TurnDurationSec != 15 {
		t.Errorf("TurnDurationSec = %d, want 15", cfg.TurnDurationSec)
	}
	if cfg.BotsEnabled {
		t.Error("BotsEnabled = true, want false")
	}
	if cfg.CatalogPath != "/tmp/catalog.json" {
		t.Errorf("CatalogPath = %q", cfg.CatalogPath)
	}
}

func TestFromEnv_ClampsBotDelays(t *testing.T) {
	cfg, err := FromEnv(map[string]string{
		"CATALYST_BOT_MIN_DELAY_SEC": "5",
		"CATALYST_BOT_MAX_DELAY_SEC": "2",
	})
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if cfg.BotMaxDelaySec != cfg.BotMinDelaySec {
		t.Errorf("BotMaxDelaySec = %d, want clamped to min %d", cfg.BotMaxDelaySec, cfg.BotMinDelaySec)
	}
}

func TestFromEnv_BadValue(t *testing.T) {
	if _, err := FromEnv(map[string]string{"CATALYST_MAX_TURNS": "many"}); err == nil {
		t.Error("FromEnv() with non-numeric value succeeded, want error")
	}
}
