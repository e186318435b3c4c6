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

// LessonRepo provides typed DynamoDB operations for the lessons table.
type LessonRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewLessonRepo(client *dynamodb.Client, tableName string) *LessonRepo {
	return &LessonRepo{client: client, tableName: tableName}
}

func (r *LessonRepo) Put(ctx context.Context, l *domain.Lesson) error {
	item, err := attributevalue.MarshalMap(l)
	if err != nil {
		return fmt.Errorf("marshal lesson: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return storeErr("put lesson", err)
	}
	return nil
}

func (r *LessonRepo) Get(ctx context.Context, lessonID string) (*domain.Lesson, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("lesson_id", lessonID),
	})
	if err != nil {
		return nil, storeErr("get lesson", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("lesson not found: %w", domain.ErrNotFound)
	}
	var l domain.Lesson
	if err := attributevalue.UnmarshalMap(out.Item, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// ListByCourse returns the lessons for a course ordered by the `order`
// attribute (the GSI range key), ascending.
func (r *LessonRepo) ListByCourse(ctx context.Context, courseID string, limit int32) ([]domain.Lesson, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("course_id-order-index"),
		KeyConditionExpression: aws.String("course_id = :c"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: courseID},
		},
		ScanIndexForward: aws.Bool(true),
		Limit:            aws.Int32(limit),
	})
	if err != nil {
		return nil, storeErr("query lessons", err)
	}
	var lessons []domain.Lesson
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}
