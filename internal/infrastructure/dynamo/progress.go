package dynamo

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/lms-api/internal/domain"
)

// ProgressRepo provides typed DynamoDB operations for the progress table.
// PK: user_email, SK: entry_key (course_id + "#" + lesson_id).
type ProgressRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewProgressRepo(client *dynamodb.Client, tableName string) *ProgressRepo {
	return &ProgressRepo{client: client, tableName: tableName}
}

// Upsert merges the supplied fields into the record for (email, course,
// lesson), creating it when absent. A single UpdateItem keyed on the
// composite key is the store's atomic insert-or-update primitive — there is
// no read-modify-write window, so concurrent upserts for the same key can
// never produce duplicates. updated_at is refreshed as part of the same
// write.
func (r *ProgressRepo) Upsert(ctx context.Context, email, courseID string, lessonID *string, updates map[string]interface{}, now time.Time) error {
	updates[fieldCourseID] = courseID
	if lessonID != nil {
		updates[fieldLessonID] = *lessonID
	}
	updates[fieldUpdatedAt] = now.UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       compositeKey("user_email", email, "entry_key", domain.ProgressEntryKey(courseID, lessonID)),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		return storeErr("upsert progress", err)
	}
	return nil
}

// ListByUser returns a user's progress records, optionally restricted to one
// course via a begins_with condition on the sort key.
func (r *ProgressRepo) ListByUser(ctx context.Context, email, courseID string) ([]domain.ProgressRecord, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("user_email = :e"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
		},
	}
	if courseID != "" {
		input.KeyConditionExpression = aws.String("user_email = :e AND begins_with(entry_key, :c)")
		input.ExpressionAttributeValues[":c"] = &types.AttributeValueMemberS{Value: courseID + "#"}
	}
	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, storeErr("query progress", err)
	}
	var records []domain.ProgressRecord
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ScanAll pages through every progress record. The scan holds nothing
// exclusive; records written during the scan may or may not be included.
func (r *ProgressRepo) ScanAll(ctx context.Context) ([]domain.ProgressRecord, error) {
	var records []domain.ProgressRecord
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, storeErr("scan progress", err)
		}
		var page []domain.ProgressRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		records = append(records, page...)
		if out.LastEvaluatedKey == nil {
			return records, nil
		}
		startKey = out.LastEvaluatedKey
	}
}
