package repository

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	pkgconfig "github.com/cloud-wave-best-zizon/storefront-service/pkg/config"
)

// NewDynamoDBClient builds the shared DynamoDB client. In local mode it
// targets a local endpoint with static credentials so the service runs
// without an AWS account.
func NewDynamoDBClient(cfg *pkgconfig.Config) (*dynamodb.Client, error) {
	if cfg.LocalMode {
		awsCfg, err := config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(cfg.AWSRegion),
			config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider("local", "local", ""),
			),
		)
		if err != nil {
			return nil, err
		}
		return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		}), nil
	}

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(awsCfg), nil
}
