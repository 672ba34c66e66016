package aws_handler

import (
	"context"
	"fmt"

	"famwealth/src/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
)

type AWSHandler struct {
	SecretManager *SecretManager
}

// NewAWSHandler opens a session in the configured region. An endpoint, when
// set, points the client at a local emulator.
func NewAWSHandler(cfg config.SecretsConfig) (*AWSHandler, error) {
	awsConfig := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open AWS session in %s: %w", cfg.Region, err)
	}
	return &AWSHandler{SecretManager: NewSecretManager(secretsmanager.New(sess))}, nil
}

// LoadBrokerSecrets reads the broker credentials secret named in cfg. Without
// a region it returns empty secrets so local runs rely on settings alone.
func LoadBrokerSecrets(ctx context.Context, cfg config.SecretsConfig) (BrokerSecrets, error) {
	if cfg.Region == "" || cfg.BrokerSecretID == "" {
		return BrokerSecrets{}, nil
	}
	handler, err := NewAWSHandler(cfg)
	if err != nil {
		return nil, err
	}
	return handler.SecretManager.GetBrokerSecrets(ctx, cfg.BrokerSecretID)
}
