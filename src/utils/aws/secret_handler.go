package aws_handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

// BrokerSecrets holds static broker credentials keyed by broker name, e.g.
// {"Zerodha": {"api_key": "...", "api_secret": "..."}}.
type BrokerSecrets map[string]map[string]string

// Get returns one value, or "" when the broker or key is absent.
func (b BrokerSecrets) Get(broker, key string) string {
	if b == nil {
		return ""
	}
	return b[broker][key]
}

type SecretManager struct {
	svc secretsmanageriface.SecretsManagerAPI
}

func NewSecretManager(svc secretsmanageriface.SecretsManagerAPI) *SecretManager {
	return &SecretManager{svc: svc}
}

func (s *SecretManager) GetSecretValue(ctx context.Context, secretID string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	}

	result, err := s.svc.GetSecretValueWithContext(ctx, input)
	if err != nil {
		return "", err
	}
	if result.SecretString == nil {
		return "", errors.New("secret has no string value")
	}

	return *result.SecretString, nil
}

// GetBrokerSecrets reads a JSON secret shaped as BrokerSecrets.
func (s *SecretManager) GetBrokerSecrets(ctx context.Context, secretID string) (BrokerSecrets, error) {
	raw, err := s.GetSecretValue(ctx, secretID)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret %s: %w", secretID, err)
	}
	var secrets BrokerSecrets
	if err := json.Unmarshal([]byte(raw), &secrets); err != nil {
		return nil, fmt.Errorf("secret %s is not valid broker secrets JSON: %w", secretID, err)
	}
	return secrets, nil
}
