package main

import (
	"context"
	"errors"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Seeds the tables with one user per role and a few demo products owned by
// the seller. Safe to run repeatedly; existing accounts are left alone.
func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	client, err := repository.NewDynamoDBClient(cfg)
	if err != nil {
		log.Fatal("Failed to create DynamoDB client:", err)
	}

	ctx := context.Background()

	if cfg.LocalMode {
		ensureTables(ctx, client, cfg, logger)
	}

	userRepo := repository.NewUserRepository(client, cfg.UserTableName)
	productRepo := repository.NewProductRepository(client, cfg.ProductTableName)

	userService := service.NewUserService(userRepo, logger)
	productService := service.NewProductService(productRepo, logger)

	seller := seedUser(ctx, userService, logger, domain.RegisterRequest{
		Username: "seller",
		Email:    "seller@example.com",
		Password: "seller123",
		Role:     string(domain.RoleSeller),
	}, userRepo)
	seedUser(ctx, userService, logger, domain.RegisterRequest{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "admin123",
		Role:     string(domain.RoleAdmin),
	}, userRepo)
	seedUser(ctx, userService, logger, domain.RegisterRequest{
		Username: "customer",
		Email:    "customer@example.com",
		Password: "customer123",
		Role:     string(domain.RoleCustomer),
	}, userRepo)

	if seller == nil {
		logger.Info("Seed finished (users already present, products skipped)")
		return
	}

	if existing, err := productService.ListProducts(ctx, domain.ProductFilter{}); err == nil && len(existing) > 0 {
		logger.Info("Seed finished (products already present)")
		return
	}

	actor := domain.Identity{UserID: seller.UserID, Role: seller.Role}
	demo := []domain.CreateProductRequest{
		{Name: "Sample Phone", Price: 599.99, Stock: 10},
		{Name: "Wireless Headphones", Price: 99.99, Stock: 25},
		{Name: "USB-C Cable", Price: 9.99, Stock: 100},
	}
	for _, req := range demo {
		if _, err := productService.CreateProduct(ctx, actor, req); err != nil {
			logger.Warn("Failed to seed product", zap.String("name", req.Name), zap.Error(err))
		}
	}

	logger.Info("Seed finished")
}

func seedUser(ctx context.Context, users *service.UserService, logger *zap.Logger, req domain.RegisterRequest, repo *repository.UserRepository) *domain.User {
	if existing, err := repo.GetUserByEmail(ctx, req.Email); err == nil {
		return existing
	}

	user, err := users.Register(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return nil
		}
		logger.Warn("Failed to seed user", zap.String("email", req.Email), zap.Error(err))
		return nil
	}
	return user
}

// ensureTables creates the three tables against a local DynamoDB. In AWS the
// tables come from infrastructure, not from this tool.
func ensureTables(ctx context.Context, client *dynamodb.Client, cfg *config.Config, logger *zap.Logger) {
	throughput := &types.ProvisionedThroughput{
		ReadCapacityUnits:  aws.Int64(5),
		WriteCapacityUnits: aws.Int64(5),
	}

	createTable(ctx, client, logger, &dynamodb.CreateTableInput{
		TableName: aws.String(cfg.UserTableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("user_id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("email"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("username"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("user_id"), KeyType: types.KeyTypeHash},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String("email-index"),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("email"), KeyType: types.KeyTypeHash},
				},
				Projection:            &types.Projection{ProjectionType: types.ProjectionTypeAll},
				ProvisionedThroughput: throughput,
			},
			{
				IndexName: aws.String("username-index"),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("username"), KeyType: types.KeyTypeHash},
				},
				Projection:            &types.Projection{ProjectionType: types.ProjectionTypeAll},
				ProvisionedThroughput: throughput,
			},
		},
		ProvisionedThroughput: throughput,
	})

	createTable(ctx, client, logger, &dynamodb.CreateTableInput{
		TableName: aws.String(cfg.ProductTableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("product_id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("product_id"), KeyType: types.KeyTypeHash},
		},
		ProvisionedThroughput: throughput,
	})

	createTable(ctx, client, logger, &dynamodb.CreateTableInput{
		TableName: aws.String(cfg.OrderTableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("order_id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("user_id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("order_id"), KeyType: types.KeyTypeHash},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String("user-index"),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("user_id"), KeyType: types.KeyTypeHash},
				},
				Projection:            &types.Projection{ProjectionType: types.ProjectionTypeAll},
				ProvisionedThroughput: throughput,
			},
		},
		ProvisionedThroughput: throughput,
	})
}

func createTable(ctx context.Context, client *dynamodb.Client, logger *zap.Logger, input *dynamodb.CreateTableInput) {
	_, err := client.CreateTable(ctx, input)
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return
		}
		logger.Warn("Failed to create table", zap.String("table", *input.TableName), zap.Error(err))
	}
}
