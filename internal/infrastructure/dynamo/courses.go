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

// CourseRepo provides typed DynamoDB operations for the courses table.
type CourseRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCourseRepo(client *dynamodb.Client, tableName string) *CourseRepo {
	return &CourseRepo{client: client, tableName: tableName}
}

func (r *CourseRepo) Put(ctx context.Context, c *domain.Course) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal course: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return storeErr("put course", err)
	}
	return nil
}

func (r *CourseRepo) Get(ctx context.Context, courseID string) (*domain.Course, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("course_id", courseID),
	})
	if err != nil {
		return nil, storeErr("get course", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("course not found: %w", domain.ErrNotFound)
	}
	var c domain.Course
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns up to limit courses; when teacherEmail is set, the
// teacher_email-index GSI is queried instead of scanning.
func (r *CourseRepo) List(ctx context.Context, teacherEmail string, limit int32) ([]domain.Course, error) {
	var items []map[string]types.AttributeValue
	if teacherEmail != "" {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String("teacher_email-index"),
			KeyConditionExpression: aws.String("teacher_email = :t"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":t": &types.AttributeValueMemberS{Value: teacherEmail},
			},
			Limit: aws.Int32(limit),
		})
		if err != nil {
			return nil, storeErr("query courses", err)
		}
		items = out.Items
	} else {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName: aws.String(r.tableName),
			Limit:     aws.Int32(limit),
		})
		if err != nil {
			return nil, storeErr("list courses", err)
		}
		items = out.Items
	}
	var courses []domain.Course
	if err := attributevalue.UnmarshalListOfMaps(items, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
