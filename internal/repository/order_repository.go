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

var ErrOrderNotFound = errors.New("order not found")

const userIndexName = "user-index"

type OrderRepository struct {
	client           *dynamodb.Client
	tableName        string
	productTableName string
}

func NewOrderRepository(client *dynamodb.Client, tableName, productTableName string) *OrderRepository {
	return &OrderRepository{
		client:           client,
		tableName:        tableName,
		productTableName: productTableName,
	}
}

// PlaceOrder writes the order row and decrements the product stock in a
// single transaction. The decrement is guarded by `stock >= quantity`, so a
// racing placement can never push stock negative, and the order row only
// exists if the decrement committed.
func (r *OrderRepository) PlaceOrder(ctx context.Context, order *domain.Order) error {
	av, err := attributevalue.MarshalMap(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	update := expression.Set(
		expression.Name("stock"),
		expression.Minus(
			expression.Name("stock"),
			expression.Value(order.Quantity),
		),
	).Set(
		expression.Name("updated_at"),
		expression.Value(order.CreatedAt),
	)

	condition := expression.AttributeExists(
		expression.Name("product_id"),
	).And(expression.GreaterThanEqual(
		expression.Name("stock"),
		expression.Value(order.Quantity),
	))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(condition).
		Build()
	if err != nil {
		return err
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(r.productTableName),
					Key: map[string]types.AttributeValue{
						"product_id": &types.AttributeValueMemberS{Value: order.ProductID},
					},
					ExpressionAttributeNames:  expr.Names(),
					ExpressionAttributeValues: expr.Values(),
					UpdateExpression:          expr.Update(),
					ConditionExpression:       expr.Condition(),
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(r.tableName),
					Item:      av,
				},
			},
		},
	})

	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			for _, reason := range tce.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return ErrInsufficientStock
				}
			}
		}
		return fmt.Errorf("failed to place order: %w", err)
	}

	return nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if result.Item == nil {
		return nil, ErrOrderNotFound
	}

	var order domain.Order
	if err := attributevalue.UnmarshalMap(result.Item, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w", err)
	}

	return &order, nil
}

// ListOrdersByUser returns one user's order history via the user-index GSI.
func (r *OrderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var orders []domain.Order

	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(userIndexName),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query orders: %w", err)
		}

		var batch []domain.Order
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal orders: %w", err)
		}
		orders = append(orders, batch...)
	}

	return orders, nil
}

// ListAllOrders scans the whole ledger. Admin-only path.
func (r *OrderRepository) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan orders: %w", err)
		}

		var batch []domain.Order
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal orders: %w", err)
		}
		orders = append(orders, batch...)
	}

	return orders, nil
}
