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

// QuizRepo provides typed DynamoDB operations for the quizzes table.
type QuizRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewQuizRepo(client *dynamodb.Client, tableName string) *QuizRepo {
	return &QuizRepo{client: client, tableName: tableName}
}

func (r *QuizRepo) Put(ctx context.Context, q *domain.Quiz) error {
	item, err := attributevalue.MarshalMap(q)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return storeErr("put quiz", err)
	}
	return nil
}

// GetByLesson returns the stored quiz for a lesson, or (nil, nil) when the
// lesson has no quiz yet.
func (r *QuizRepo) GetByLesson(ctx context.Context, lessonID string) (*domain.Quiz, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("lesson_id-index"),
		KeyConditionExpression: aws.String("lesson_id = :l"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":l": &types.AttributeValueMemberS{Value: lessonID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, storeErr("query quiz", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	var q domain.Quiz
	if err := attributevalue.UnmarshalMap(out.Items[0], &q); err != nil {
		return nil, err
	}
	return &q, nil
}
