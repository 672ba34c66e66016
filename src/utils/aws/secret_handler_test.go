package aws_handler_test

import (
	"context"
	"errors"
	"testing"

	"famwealth/src/config"
	aws_handler "famwealth/src/utils/aws"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets struct {
	secretsmanageriface.SecretsManagerAPI
	values map[string]string
}

func (f *fakeSecrets) GetSecretValueWithContext(_ aws.Context, in *secretsmanager.GetSecretValueInput, _ ...request.Option) (*secretsmanager.GetSecretValueOutput, error) {
	v, ok := f.values[aws.StringValue(in.SecretId)]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(v)}, nil
}

func TestGetBrokerSecrets(t *testing.T) {
	sm := aws_handler.NewSecretManager(&fakeSecrets{values: map[string]string{
		"famwealth/brokers": `{"Zerodha":{"api_key":"k","api_secret":"s"},"HDFC Securities":{"api_key":"h"}}`,
		"broken":            `not json`,
	}})

	secrets, err := sm.GetBrokerSecrets(context.Background(), "famwealth/brokers")
	require.NoError(t, err)
	assert.Equal(t, "k", secrets.Get("Zerodha", "api_key"))
	assert.Equal(t, "h", secrets.Get("HDFC Securities", "api_key"))
	assert.Equal(t, "", secrets.Get("FundsIndia", "client_secret"))

	_, err = sm.GetBrokerSecrets(context.Background(), "broken")
	assert.Error(t, err)

	_, err = sm.GetBrokerSecrets(context.Background(), "missing")
	assert.Error(t, err)
}

func TestLoadBrokerSecretsWithoutRegion(t *testing.T) {
	secrets, err := aws_handler.LoadBrokerSecrets(context.Background(), config.SecretsConfig{BrokerSecretID: "famwealth/brokers"})
	require.NoError(t, err)
	assert.Empty(t, secrets)
	assert.Equal(t, "", secrets.Get("Zerodha", "api_key"))
}
