package app

import (
	"context"
	"testing"

	"github.com/hoanghai1803/newslens/internal/config"
)

func TestNewEntityService(t *testing.T) {
	tests := []struct {
		name       string
		nlp        config.NLPConfig
		wantRemote bool
		wantErr    bool
	}{
		{name: "local only", nlp: config.NLPConfig{Fallback: "pattern"}},
		{name: "prose fallback", nlp: config.NLPConfig{Fallback: "prose"}},
		{name: "remote enabled", nlp: config.NLPConfig{APIKey: "hf_test", Fallback: "pattern", TimeoutSeconds: 5}, wantRemote: true},
		{name: "unknown fallback", nlp: config.NLPConfig{Fallback: "oracle"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewEntityService(&config.Config{NLP: tt.nlp})
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc.RemoteEnabled() != tt.wantRemote {
				t.Errorf("RemoteEnabled() = %v, want %v", svc.RemoteEnabled(), tt.wantRemote)
			}
		})
	}
}

func TestNewSummarizer(t *testing.T) {
	s, err := NewSummarizer(&config.Config{AI: config.AIConfig{Provider: "anthropic"}})
	if err != nil || s != nil {
		t.Errorf("got %v, %v; want nil summarizer without a key", s, err)
	}

	s, err = NewSummarizer(&config.Config{AI: config.AIConfig{Provider: "openai", APIKey: "sk-test", Model: "gpt-4o-mini"}})
	if err != nil || s == nil {
		t.Errorf("got %v, %v; want a provider", s, err)
	}

	if _, err := NewSummarizer(&config.Config{AI: config.AIConfig{Provider: "other", APIKey: "k"}}); err == nil {
		t.Error("expected error for unsupported provider")
	}
}

func TestSources(t *testing.T) {
	cfg := &config.Config{}
	if got := Sources(cfg); len(got) != 0 {
		t.Errorf("got %d sources, want 0", len(got))
	}

	cfg.News.APIKey = "gnews-key"
	cfg.News.Feeds = []config.FeedConfig{
		{URL: "https://feeds.example.com/in.xml", Region: "in", Category: "general"},
		{URL: "https://feeds.example.com/us.xml", Region: "us", Category: "sports"},
	}

	got := Sources(cfg)
	if len(got) != 3 {
		t.Fatalf("got %d sources, want 3", len(got))
	}
	if got[0].Name() != "gnews" {
		t.Errorf("got first source %q, want gnews", got[0].Name())
	}
	if got[2].Endpoint() != "https://feeds.example.com/us.xml" {
		t.Errorf("got endpoint %q, want the second feed", got[2].Endpoint())
	}
}

func TestNewFetcherWithoutRedis(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.RedisAddr = "127.0.0.1:1"
	cfg.Cache.TTLMinutes = 1

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// An unreachable cache is not fatal.
	fetcher, closeFn := NewFetcher(ctx, cfg)
	defer closeFn()
	if fetcher == nil {
		t.Fatal("expected a fetcher")
	}
}
