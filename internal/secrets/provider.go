// Package secrets resolves sensitive configuration (database credentials,
// the warehouse login, the admin API key) from environment variables in
// development and from Azure Key Vault in staging and production.
package secrets

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// SecretSource names where secrets are loaded from.
type SecretSource string

const (
	SourceEnvironment SecretSource = "environment"
	SourceVault       SecretSource = "vault"
	// SourceAuto picks environment for development and vault otherwise.
	SourceAuto SecretSource = "auto"
)

// Provider resolves secret names against the configured source.
type Provider struct {
	source      SecretSource
	vaultClient *VaultClient
	logger      *zap.Logger
	environment string
}

type ProviderConfig struct {
	Source       SecretSource
	VaultName    string
	Environment  string
	CacheEnabled bool
	CacheTTL     time.Duration
}

func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	source := cfg.Source
	if source == SourceAuto {
		if cfg.Environment == "development" || cfg.Environment == "local" || cfg.Environment == "" {
			source = SourceEnvironment
		} else {
			source = SourceVault
		}
		logger.Info("auto-detected secret source",
			zap.String("source", string(source)),
			zap.String("environment", cfg.Environment),
		)
	}

	p := &Provider{
		source:      source,
		logger:      logger,
		environment: cfg.Environment,
	}

	if source == SourceVault {
		if cfg.VaultName == "" {
			return nil, fmt.Errorf("vault name required when using vault secret source")
		}
		vc, err := NewVaultClient(&VaultConfig{
			VaultName:    cfg.VaultName,
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vault client: %w", err)
		}
		p.vaultClient = vc
	}

	logger.Info("secrets provider initialized",
		zap.String("source", string(source)),
		zap.String("environment", cfg.Environment),
	)
	return p, nil
}

// GetSecret resolves secretName: as a vault secret in vault mode, as an
// environment variable otherwise.
func (p *Provider) GetSecret(ctx context.Context, secretName string) (string, error) {
	switch p.source {
	case SourceEnvironment:
		if value := os.Getenv(secretName); value != "" {
			return value, nil
		}
		return "", fmt.Errorf("environment variable '%s' not set", secretName)
	case SourceVault:
		if p.vaultClient == nil {
			return "", fmt.Errorf("vault client not initialized")
		}
		return p.vaultClient.GetSecret(ctx, secretName)
	default:
		return "", fmt.Errorf("unknown secret source: %s", p.source)
	}
}

// GetSecretWithDefault falls back to defaultValue when the lookup fails.
func (p *Provider) GetSecretWithDefault(ctx context.Context, secretName, defaultValue string) string {
	value, err := p.GetSecret(ctx, secretName)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetSecretOrEnv lets an explicitly set environment variable override the
// configured source, even in vault mode.
func (p *Provider) GetSecretOrEnv(ctx context.Context, secretName, envName string) (string, error) {
	if envValue := os.Getenv(envName); envValue != "" {
		return envValue, nil
	}
	return p.GetSecret(ctx, secretName)
}

// GetSecretOrEnvWithDefault combines GetSecretOrEnv with a default fallback.
func (p *Provider) GetSecretOrEnvWithDefault(ctx context.Context, secretName, envName, defaultValue string) string {
	value, err := p.GetSecretOrEnv(ctx, secretName, envName)
	if err != nil {
		return defaultValue
	}
	return value
}

// Source reports the resolved secret source.
func (p *Provider) Source() SecretSource {
	return p.source
}

// IsVaultEnabled reports whether secrets come from Key Vault.
func (p *Provider) IsVaultEnabled() bool {
	return p.source == SourceVault
}
