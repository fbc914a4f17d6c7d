package database

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"tsmit_os/internal/infrastructure/config"
)

// ConnectDynamoDB creates a DynamoDB client from the storage options.
// A non-empty Endpoint points the client at a local DynamoDB.
func ConnectDynamoDB(ctx context.Context, opts config.DynamoDBOptions) (*dynamodb.Client, error) {
	cfg, err := NewDynamoDBConfig(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("create dynamodb config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, clientOptions(opts)...), nil
}

func NewDynamoDBConfig(ctx context.Context, opts config.DynamoDBOptions) (aws.Config, error) {
	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")

	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
}

func clientOptions(opts config.DynamoDBOptions) []func(*dynamodb.Options) {
	if opts.Endpoint == "" {
		return nil
	}
	endpoint := opts.Endpoint
	return []func(*dynamodb.Options){
		func(o *dynamodb.Options) { o.BaseEndpoint = aws.String(endpoint) },
	}
}
