package database

import (
	"context"
	"fmt"

	appconfig "marketplace_escrow/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// LoadAWSConfig builds the shared AWS configuration. Local DynamoDB and
// S3-compatible stores do not validate credentials, but the SDK requires them.
func LoadAWSConfig(ctx context.Context, cfg appconfig.AWSConfig) (aws.Config, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(creds),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

// ConnectDynamoDB creates a DynamoDB client, pointed at cfg.DynamoEndpoint when set
// (e.g. http://dynamodb:8000).
func ConnectDynamoDB(ctx context.Context, cfg appconfig.AWSConfig, logger *zap.Logger) (*dynamodb.Client, error) {
	awsCfg, err := LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		}
	})
	logger.Info("[store][database] dynamodb client ready",
		zap.String("region", cfg.Region),
		zap.String("endpoint", cfg.DynamoEndpoint))
	return client, nil
}

// ConnectS3 creates an S3 client. A custom endpoint switches to path-style addressing.
func ConnectS3(ctx context.Context, cfg appconfig.AWSConfig, logger *zap.Logger) (*s3.Client, error) {
	awsCfg, err := LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Info("[events][database] s3 client ready", zap.String("region", cfg.Region), zap.String("endpoint", cfg.S3Endpoint))
	return client, nil
}
