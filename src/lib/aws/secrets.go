package aws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// GetDatabasePassword reads a secret holding either the bare password or the
// JSON document RDS writes, whose "password" key is used.
func GetDatabasePassword(ctx context.Context, client SecretsAPI, secretID string) (string, error) {
	output, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return "", fmt.Errorf("reading secret %s: %w", secretID, err)
	}
	value := aws.ToString(output.SecretString)
	var doc struct {
		Password string `json:"password"`
	}
	if err := json.Unmarshal([]byte(value), &doc); err == nil && doc.Password != "" {
		return doc.Password, nil
	}
	return value, nil
}
