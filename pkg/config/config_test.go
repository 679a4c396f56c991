package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("unexpected model %s", cfg.OpenAI.Model)
	}
	if cfg.Document.ImageWidth != 400 || cfg.Document.ImageHeight != 300 {
		t.Errorf("unexpected image size %dx%d", cfg.Document.ImageWidth, cfg.Document.ImageHeight)
	}
	if len(cfg.Document.ConverterCommands) != 4 || cfg.Document.ConverterCommands[0] != "soffice" {
		t.Errorf("unexpected converter commands %v", cfg.Document.ConverterCommands)
	}
	if cfg.Translate.SourceLang != "gu" || cfg.Translate.TargetLang != "en" {
		t.Errorf("unexpected languages %s -> %s", cfg.Translate.SourceLang, cfg.Translate.TargetLang)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MOM_CONVERT_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Document.ConvertTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.Document.ConvertTimeout)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", cfg.Server.AllowedOrigins)
	}
}

func TestValidate_RejectsZeroTimeout(t *testing.T) {
	t.Setenv("MOM_CONVERT_TIMEOUT", "0s")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for zero convert timeout")
	}
}
