package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type ProductRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewProductRepository(client *dynamodb.Client, tableName string) *ProductRepository {
	return &ProductRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	av, err := attributevalue.MarshalMap(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})

	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}

	return nil
}

func (r *ProductRepository) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if result.Item == nil {
		return nil, ErrProductNotFound
	}

	var product domain.Product
	if err := attributevalue.UnmarshalMap(result.Item, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}

// UpdateProduct overwrites the mutable fields of an existing product. The
// condition keeps it from resurrecting a product that was never created.
func (r *ProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	update := expression.Set(
		expression.Name("name"),
		expression.Value(product.Name),
	).Set(
		expression.Name("name_lower"),
		expression.Value(product.NameLower),
	).Set(
		expression.Name("price"),
		expression.Value(product.Price),
	).Set(
		expression.Name("stock"),
		expression.Value(product.Stock),
	).Set(
		expression.Name("updated_at"),
		expression.Value(product.UpdatedAt),
	)

	condition := expression.AttributeExists(expression.Name("product_id"))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(condition).
		Build()
	if err != nil {
		return err
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: product.ProductID},
		},
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
	})

	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// ListProducts scans the catalog with an optional name substring and price
// range filter. Ordering is left to the caller; scans return items unordered.
func (r *ProductRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}

	if cond, ok := buildProductFilter(filter); ok {
		expr, err := expression.NewBuilder().WithFilter(cond).Build()
		if err != nil {
			return nil, err
		}
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
		input.FilterExpression = expr.Filter()
	}

	var products []domain.Product
	paginator := dynamodb.NewScanPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan products: %w", err)
		}

		var batch []domain.Product
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal products: %w", err)
		}
		products = append(products, batch...)
	}

	return products, nil
}

func buildProductFilter(filter domain.ProductFilter) (expression.ConditionBuilder, bool) {
	var conds []expression.ConditionBuilder

	if filter.Query != "" {
		conds = append(conds, expression.Contains(
			expression.Name("name_lower"),
			filter.Query,
		))
	}
	if filter.MinPrice != nil {
		conds = append(conds, expression.GreaterThanEqual(
			expression.Name("price"),
			expression.Value(*filter.MinPrice),
		))
	}
	if filter.MaxPrice != nil {
		conds = append(conds, expression.LessThanEqual(
			expression.Name("price"),
			expression.Value(*filter.MaxPrice),
		))
	}

	if len(conds) == 0 {
		return expression.ConditionBuilder{}, false
	}

	cond := conds[0]
	for _, c := range conds[1:] {
		cond = cond.And(c)
	}
	return cond, true
}
