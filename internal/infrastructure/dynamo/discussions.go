package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/lms-api/internal/domain"
)

// DiscussionRepo provides typed DynamoDB operations for the discussions table.
type DiscussionRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDiscussionRepo(client *dynamodb.Client, tableName string) *DiscussionRepo {
	return &DiscussionRepo{client: client, tableName: tableName}
}

func (r *DiscussionRepo) Put(ctx context.Context, d *domain.Discussion) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal discussion: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return storeErr("put discussion", err)
	}
	return nil
}

// ListByCourse returns a course's messages, newest first.
func (r *DiscussionRepo) ListByCourse(ctx context.Context, courseID string, limit int32) ([]domain.Discussion, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("course_id-created_at-index"),
		KeyConditionExpression: aws.String("course_id = :c"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: courseID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	})
	if err != nil {
		return nil, storeErr("query discussions", err)
	}
	var msgs []domain.Discussion
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
