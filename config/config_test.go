package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) writeConfig(content string) string {
	path := filepath.Join(s.T().TempDir(), "ragbot.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *ConfigTestSuite) TestDefaults() {
	path := s.writeConfig("{}\n")

	cfg, err := LoadFromPath(path)
	s.Require().NoError(err)

	s.Equal("gpt-4o-mini", cfg.OpenAI.Model)
	s.Equal("text-embedding-3-small", cfg.OpenAI.EmbeddingModel)
	s.Equal(8, cfg.Chat.MaxConcurrency)
	s.Equal(30*time.Second, cfg.Chat.ResolveTimeout)
	s.Equal(60*time.Second, cfg.Chat.ValidateTimeout)
	s.Equal(5, cfg.Chat.TopK)
	s.Equal(500, cfg.Ingest.ChunkSize)
	s.Equal(50, cfg.Ingest.ChunkOverlap)
	s.False(cfg.UseAzure())
}

func (s *ConfigTestSuite) TestFileOverridesDefaults() {
	path := s.writeConfig(`
openai:
  model: gpt-4o
chat:
  max_concurrency: 2
  resolve_timeout: 10s
ingest:
  chunk_size: 256
`)

	cfg, err := LoadFromPath(path)
	s.Require().NoError(err)

	s.Equal("gpt-4o", cfg.OpenAI.Model)
	s.Equal(2, cfg.Chat.MaxConcurrency)
	s.Equal(10*time.Second, cfg.Chat.ResolveTimeout)
	s.Equal(256, cfg.Ingest.ChunkSize)
	// Untouched keys keep their defaults.
	s.Equal(5, cfg.Chat.TopK)
}

func (s *ConfigTestSuite) TestEnvOverridesFile() {
	s.T().Setenv("OPENAI_API_KEY", "sk-test")
	s.T().Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")

	path := s.writeConfig("openai:\n  api_key: from-file\n")
	cfg, err := LoadFromPath(path)
	s.Require().NoError(err)

	s.Equal("sk-test", cfg.OpenAI.APIKey)
	s.True(cfg.UseAzure())
}

func (s *ConfigTestSuite) TestMissingFileFails() {
	_, err := LoadFromPath(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Error(err)
}
