package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// BookingIndex is the GSI on booking_id of the payments table. Guard items carry no
// booking_id and stay out of it.
const BookingIndex = "booking_id-index"

// A completed payment also writes a guard item keyed by its booking in the same
// transaction, so a second completed payment for that booking cannot be stored.
const guardPrefix = "completed#"

type paymentItem struct {
	PaymentID string `dynamodbav:"payment_id"`
	BookingID string `dynamodbav:"booking_id"`
	Amount    string `dynamodbav:"amount"`
	Method    string `dynamodbav:"payment_method"`
	Contact   string `dynamodbav:"payer_contact"`
	Status    string `dynamodbav:"status"`
	CreatedAt string `dynamodbav:"created_at"`
}

type PaymentRepository struct {
	client API
	table  string
}

func NewPaymentRepo(client API, table string) *PaymentRepository {
	return &PaymentRepository{client: client, table: table}
}

func guardKey(bookingID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"payment_id": str(guardPrefix + bookingID)}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	item, err := attributevalue.MarshalMap(paymentItem{
		PaymentID: p.ID,
		BookingID: p.BookingID,
		Amount:    p.Amount.String(),
		Method:    p.Method,
		Contact:   p.Contact,
		Status:    string(p.Status),
		CreatedAt: formatTime(p.CreatedAt),
	})
	if err != nil {
		return fmt.Errorf("marshal payment: %w", err)
	}

	put := &types.Put{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(payment_id)"),
	}

	if p.Status != domain.PaymentStatusCompleted {
		_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           put.TableName,
			Item:                put.Item,
			ConditionExpression: put.ConditionExpression,
		})
		if err != nil {
			var ccf *types.ConditionalCheckFailedException
			if errors.As(err, &ccf) {
				return fmt.Errorf("payment %s exists: %w", p.ID, domain.ErrConditionFailed)
			}
			return fmt.Errorf("put payment: %w", err)
		}
		return nil
	}

	guard := guardKey(p.BookingID)
	guard["owner"] = str(p.ID)

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: put},
			{Put: &types.Put{
				TableName:           aws.String(r.table),
				Item:                guard,
				ConditionExpression: aws.String("attribute_not_exists(payment_id)"),
			}},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			reasons := tce.CancellationReasons
			if len(reasons) > 1 && aws.ToString(reasons[1].Code) == "ConditionalCheckFailed" {
				return fmt.Errorf("booking %s already has a completed payment: %w", p.BookingID, domain.ErrAlreadyFinalized)
			}
			if len(reasons) > 0 && aws.ToString(reasons[0].Code) == "ConditionalCheckFailed" {
				return fmt.Errorf("payment %s exists: %w", p.ID, domain.ErrConditionFailed)
			}
		}
		return fmt.Errorf("put completed payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            map[string]types.AttributeValue{"payment_id": str(id)},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrPaymentNotFound
	}

	p, err := unmarshalPayment(out.Item)
	if err != nil {
		return nil, err
	}
	if p.BookingID == "" {
		// guard item
		return nil, domain.ErrPaymentNotFound
	}
	return p, nil
}

func (r *PaymentRepository) ListByBookings(ctx context.Context, bookingIDs []string) ([]*domain.Payment, error) {
	var res []*domain.Payment
	for _, bookingID := range bookingIDs {
		var start map[string]types.AttributeValue
		for {
			out, err := r.client.Query(ctx, &dynamodb.QueryInput{
				TableName:                 aws.String(r.table),
				IndexName:                 aws.String(BookingIndex),
				KeyConditionExpression:    aws.String("booking_id = :bid"),
				ExpressionAttributeValues: map[string]types.AttributeValue{":bid": str(bookingID)},
				ExclusiveStartKey:         start,
			})
			if err != nil {
				return nil, fmt.Errorf("query payments by booking: %w", err)
			}
			for _, item := range out.Items {
				p, err := unmarshalPayment(item)
				if err != nil {
					return nil, err
				}
				res = append(res, p)
			}
			if len(out.LastEvaluatedKey) == 0 {
				break
			}
			start = out.LastEvaluatedKey
		}
	}
	return res, nil
}

// MarkFailed flips the payment to failed and releases its booking's guard item.
func (r *PaymentRepository) MarkFailed(ctx context.Context, id string) error {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:                aws.String(r.table),
				Key:                      map[string]types.AttributeValue{"payment_id": str(id)},
				UpdateExpression:         aws.String("SET #s = :failed"),
				ConditionExpression:      aws.String("attribute_exists(payment_id)"),
				ExpressionAttributeNames: map[string]string{"#s": "status"},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":failed": str(string(domain.PaymentStatusFailed)),
				},
			}},
			{Delete: &types.Delete{
				TableName:                 aws.String(r.table),
				Key:                       guardKey(p.BookingID),
				ConditionExpression:       aws.String("attribute_not_exists(payment_id) OR #o = :pid"),
				ExpressionAttributeNames:  map[string]string{"#o": "owner"},
				ExpressionAttributeValues: map[string]types.AttributeValue{":pid": str(id)},
			}},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 1 &&
			aws.ToString(tce.CancellationReasons[1].Code) == "ConditionalCheckFailed" {
			// The guard belongs to another payment: only flip our own status.
			return r.markFailedOnly(ctx, id)
		}
		return fmt.Errorf("mark payment failed: %w", err)
	}
	return nil
}

func (r *PaymentRepository) markFailedOnly(ctx context.Context, id string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.table),
		Key:                      map[string]types.AttributeValue{"payment_id": str(id)},
		UpdateExpression:         aws.String("SET #s = :failed"),
		ConditionExpression:      aws.String("attribute_exists(payment_id)"),
		ExpressionAttributeNames: map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":failed": str(string(domain.PaymentStatusFailed)),
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return domain.ErrPaymentNotFound
		}
		return fmt.Errorf("mark payment failed: %w", err)
	}
	return nil
}

func unmarshalPayment(av map[string]types.AttributeValue) (*domain.Payment, error) {
	var item paymentItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("unmarshal payment: %w", err)
	}
	if item.BookingID == "" {
		return &domain.Payment{ID: item.PaymentID}, nil
	}

	amount, err := decimal.NewFromString(item.Amount)
	if err != nil {
		return nil, fmt.Errorf("payment %s amount: %w", item.PaymentID, err)
	}
	created, err := parseTime(item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("payment %s created_at: %w", item.PaymentID, err)
	}

	return &domain.Payment{
		ID:        item.PaymentID,
		BookingID: item.BookingID,
		Amount:    amount,
		Method:    item.Method,
		Contact:   item.Contact,
		Status:    domain.PaymentStatus(item.Status),
		CreatedAt: created,
	}, nil
}
