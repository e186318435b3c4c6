package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/lms-api/internal/domain"
)

// UserRepo provides typed DynamoDB operations for the users table.
// Email is the natural key — there is no surrogate user ID.
type UserRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewUserRepo(client *dynamodb.Client, tableName string) *UserRepo {
	return &UserRepo{client: client, tableName: tableName}
}

// Ping verifies the table is reachable. Used by the diagnostics endpoint.
func (r *UserRepo) Ping(ctx context.Context) error {
	_, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return storeErr("describe users table", err)
	}
	return nil
}

func (r *UserRepo) Get(ctx context.Context, email string) (*domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	if err != nil {
		return nil, storeErr("get user", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureExists creates the account iff no account with this email exists.
// The conditional PutItem makes lazy creation race-free: concurrent
// verifications for the same email can never produce two accounts, and an
// existing account is never overwritten. An already-existing account is not
// an error.
func (r *UserRepo) EnsureExists(ctx context.Context, u *domain.User) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return nil
		}
		return storeErr("ensure user", err)
	}
	return nil
}

// Update applies a merge-upsert on the account: only the supplied fields are
// set and the item is created when absent (PUT /users/{email} semantics).
func (r *UserRepo) Update(ctx context.Context, email string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("email", email),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		return storeErr("update user", err)
	}
	return nil
}

// List returns up to limit users, optionally filtered by role.
func (r *UserRepo) List(ctx context.Context, role string, limit int32) ([]domain.User, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Limit:     aws.Int32(limit),
	}
	if role != "" {
		input.FilterExpression = aws.String("#r = :role")
		input.ExpressionAttributeNames = map[string]string{"#r": "role"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":role": &types.AttributeValueMemberS{Value: role},
		}
	}
	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	var users []domain.User
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &users); err != nil {
		return nil, err
	}
	return users, nil
}
