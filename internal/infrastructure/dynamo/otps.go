package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/lms-api/internal/domain"
)

// OTPRepo manages one-time codes. PK: otp_id, GSI: email-index.
// Records are never deleted on issuance — several live codes may coexist for
// one email. Expired records are evicted lazily by the table TTL.
type OTPRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewOTPRepo(client *dynamodb.Client, tableName string) *OTPRepo {
	return &OTPRepo{client: client, tableName: tableName}
}

func (r *OTPRepo) Put(ctx context.Context, c *domain.OneTimeCode) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal otp: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return storeErr("put otp", err)
	}
	return nil
}

// ListByEmail returns all unconsumed codes currently stored for an email.
func (r *OTPRepo) ListByEmail(ctx context.Context, email string) ([]domain.OneTimeCode, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("email-index"),
		KeyConditionExpression: aws.String("email = :e"),
		FilterExpression:       aws.String("consumed = :f"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
			":f": &types.AttributeValueMemberBOOL{Value: false},
		},
	})
	if err != nil {
		return nil, storeErr("query otps", err)
	}
	var codes []domain.OneTimeCode
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// Consume flips the record to consumed inside a single conditional update.
// When two verifications race on the same code, exactly one wins; the loser
// gets domain.ErrInvalidCode from the failed condition.
func (r *OTPRepo) Consume(ctx context.Context, otpID string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey("otp_id", otpID),
		UpdateExpression: aws.String("SET #c = :t"),
		ConditionExpression: aws.String(
			"attribute_exists(otp_id) AND #c = :f",
		),
		ExpressionAttributeNames: map[string]string{"#c": fieldConsumed},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberBOOL{Value: true},
			":f": &types.AttributeValueMemberBOOL{Value: false},
		},
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return fmt.Errorf("code already consumed: %w", domain.ErrInvalidCode)
		}
		return storeErr("consume otp", err)
	}
	return nil
}
