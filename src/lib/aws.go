package lib

import (
	"context"
	"fmt"
	"hms/src/lib/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

var awsConfig *aws.Config

// AWSGetConfig loads the default credential chain for region. When roleArn
// is set the config carries temporary credentials for that role instead.
func AWSGetConfig(ctx context.Context, region string, roleArn string) (*aws.Config, error) {
	if awsConfig != nil {
		return awsConfig, nil
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Log.Errorf("Error loading default config: %s", err.Error())
		return nil, err
	}
	if roleArn != "" {
		stsClient := sts.NewFromConfig(cfg)
		output, err := stsClient.AssumeRole(ctx, &sts.AssumeRoleInput{
			RoleArn:         aws.String(roleArn),
			RoleSessionName: aws.String("hms-session"),
		})
		if err != nil {
			logger.Log.Errorf("Error configuring STS client: %s", err.Error())
			return nil, err
		}
		creds := output.Credentials
		cfg, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(region),
			config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(*creds.AccessKeyId, *creds.SecretAccessKey, *creds.SessionToken),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("loading assumed role config: %w", err)
		}
	}
	awsConfig = &cfg
	return awsConfig, nil
}

// AWSGetDynamoDBClient builds a DynamoDB client. A non-empty endpoint points
// it at a local DynamoDB.
func AWSGetDynamoDBClient(cfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

func AWSGetSNSClient(cfg aws.Config) *sns.Client {
	return sns.NewFromConfig(cfg)
}

func AWSGetSQSClient(cfg aws.Config) *sqs.Client {
	return sqs.NewFromConfig(cfg)
}

func AWSGetSecretsManagerClient(cfg aws.Config) *secretsmanager.Client {
	return secretsmanager.NewFromConfig(cfg)
}
