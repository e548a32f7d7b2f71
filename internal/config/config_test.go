package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
telegram:
  bot_token: "test_token"
storage:
  data_dir: "data"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Telegram.BotToken != "test_token" {
		t.Errorf("expected bot_token test_token, got %s", cfg.Telegram.BotToken)
	}

	if got := cfg.Storage.BookingsPath(); got != filepath.Join("data", "lab_bookings.json") {
		t.Errorf("unexpected bookings path: %s", got)
	}

	if cfg.Bot.RateLimitMessages == 0 || cfg.Bot.RateLimitWindow == 0 {
		t.Errorf("expected rate limit defaults to be applied")
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("LAB_BOT_TOKEN", "env_token")

	yamlContent := `
telegram:
  bot_token: "${LAB_BOT_TOKEN}"
storage:
  data_dir: "data"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Telegram.BotToken != "env_token" {
		t.Errorf("expected env expansion, got %s", cfg.Telegram.BotToken)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				Telegram: TelegramConfig{BotToken: "token"},
				Storage:  StorageConfig{DataDir: "data"},
			},
			wantErr: false,
		},
		{
			name: "missing token",
			cfg: Config{
				Storage: StorageConfig{DataDir: "data"},
			},
			wantErr: true,
		},
		{
			name: "missing data dir",
			cfg: Config{
				Telegram: TelegramConfig{BotToken: "token"},
			},
			wantErr: true,
		},
		{
			name: "api auth without keys",
			cfg: Config{
				Telegram: TelegramConfig{BotToken: "token"},
				Storage:  StorageConfig{DataDir: "data"},
				API: APIConfig{
					Enabled: true,
					Auth:    APIAuthConfig{Enabled: true},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
