package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// StudentIndex is the GSI on (student_id, created_at) of the bookings table.
const StudentIndex = "student_id-created_at-index"

type bookingItem struct {
	BookingID     string `dynamodbav:"booking_id"`
	TutorID       string `dynamodbav:"tutor_id"`
	TutorName     string `dynamodbav:"tutor_name"`
	StudentID     string `dynamodbav:"student_id"`
	Date          string `dynamodbav:"date"`
	Time          string `dynamodbav:"time"`
	Subject       string `dynamodbav:"subject"`
	SessionType   string `dynamodbav:"session_type"`
	SessionFormat string `dynamodbav:"session_format"`
	LearningGoals string `dynamodbav:"learning_goals"`
	SessionsCount int    `dynamodbav:"sessions_count"`
	TotalPrice    string `dynamodbav:"total_price"`
	Status        string `dynamodbav:"status"`
	PaymentID     string `dynamodbav:"payment_id,omitempty"`
	CreatedAt     string `dynamodbav:"created_at"`
	UpdatedAt     string `dynamodbav:"updated_at"`
}

type BookingRepository struct {
	client API
	table  string
}

func NewBookingRepo(client API, table string) *BookingRepository {
	return &BookingRepository{client: client, table: table}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	item, err := attributevalue.MarshalMap(toBookingItem(b))
	if err != nil {
		return fmt.Errorf("marshal booking: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(booking_id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("booking %s exists: %w", b.ID, domain.ErrConditionFailed)
		}
		return fmt.Errorf("put booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            map[string]types.AttributeValue{"booking_id": str(id)},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrBookingNotFound
	}
	return unmarshalBooking(out.Item)
}

func (r *BookingRepository) ListByStudent(ctx context.Context, studentID string) ([]*domain.Booking, error) {
	var (
		res   []*domain.Booking
		start map[string]types.AttributeValue
	)
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.table),
			IndexName:                 aws.String(StudentIndex),
			KeyConditionExpression:    aws.String("student_id = :sid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{":sid": str(studentID)},
			ScanIndexForward:          aws.Bool(false),
			ExclusiveStartKey:         start,
		})
		if err != nil {
			return nil, fmt.Errorf("query bookings by student: %w", err)
		}
		for _, item := range out.Items {
			b, err := unmarshalBooking(item)
			if err != nil {
				return nil, err
			}
			res = append(res, b)
		}
		if len(out.LastEvaluatedKey) == 0 {
			return res, nil
		}
		start = out.LastEvaluatedKey
	}
}

func (r *BookingRepository) ConditionalUpdate(
	ctx context.Context,
	id string,
	expected domain.BookingStatus,
	upd domain.BookingUpdate,
) error {
	expr := "SET #s = :new, updated_at = :updated"
	values := map[string]types.AttributeValue{
		":new":      str(string(upd.Status)),
		":updated":  str(formatTime(upd.UpdatedAt)),
		":expected": str(string(expected)),
	}
	if upd.PaymentID != nil {
		expr += ", payment_id = :pid"
		values[":pid"] = str(*upd.PaymentID)
	}

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                           aws.String(r.table),
		Key:                                 map[string]types.AttributeValue{"booking_id": str(id)},
		UpdateExpression:                    aws.String(expr),
		ConditionExpression:                 aws.String("attribute_exists(booking_id) AND #s = :expected"),
		ExpressionAttributeNames:            map[string]string{"#s": "status"},
		ExpressionAttributeValues:           values,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			if len(ccf.Item) == 0 {
				return domain.ErrBookingNotFound
			}
			return fmt.Errorf("booking %s: %w", id, domain.ErrConditionFailed)
		}
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

// ExpirePending scans for stale pending bookings and expires each with the same guarded write
// ConditionalUpdate uses, so a booking paid in the meantime is left alone.
func (r *BookingRepository) ExpirePending(ctx context.Context, createdBefore time.Time) ([]*domain.Booking, error) {
	var (
		res   []*domain.Booking
		start map[string]types.AttributeValue
	)
	now := time.Now().UTC()
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                aws.String(r.table),
			FilterExpression:         aws.String("#s = :pending AND created_at < :cutoff"),
			ExpressionAttributeNames: map[string]string{"#s": "status"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pending": str(string(domain.BookingStatusPendingPayment)),
				":cutoff":  str(formatTime(createdBefore)),
			},
			ExclusiveStartKey: start,
		})
		if err != nil {
			return nil, fmt.Errorf("scan pending bookings: %w", err)
		}

		for _, item := range out.Items {
			b, err := unmarshalBooking(item)
			if err != nil {
				return nil, err
			}
			upd := domain.BookingUpdate{Status: domain.BookingStatusExpired, UpdatedAt: now}
			err = r.ConditionalUpdate(ctx, b.ID, domain.BookingStatusPendingPayment, upd)
			if errors.Is(err, domain.ErrConditionFailed) || errors.Is(err, domain.ErrBookingNotFound) {
				continue
			}
			if err != nil {
				return res, err
			}
			upd.Apply(b)
			res = append(res, b)
		}

		if len(out.LastEvaluatedKey) == 0 {
			return res, nil
		}
		start = out.LastEvaluatedKey
	}
}

func toBookingItem(b *domain.Booking) bookingItem {
	item := bookingItem{
		BookingID:     b.ID,
		TutorID:       b.TutorID,
		TutorName:     b.TutorName,
		StudentID:     b.StudentID,
		Date:          b.Date,
		Time:          b.Time,
		Subject:       b.Subject,
		SessionType:   b.SessionType,
		SessionFormat: b.SessionFormat,
		LearningGoals: b.LearningGoals,
		SessionsCount: b.SessionsCount,
		TotalPrice:    b.TotalPrice.String(),
		Status:        string(b.Status),
		CreatedAt:     formatTime(b.CreatedAt),
		UpdatedAt:     formatTime(b.UpdatedAt),
	}
	if b.PaymentID != nil {
		item.PaymentID = *b.PaymentID
	}
	return item
}

func unmarshalBooking(av map[string]types.AttributeValue) (*domain.Booking, error) {
	var item bookingItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("unmarshal booking: %w", err)
	}

	price, err := decimal.NewFromString(item.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("booking %s total_price: %w", item.BookingID, err)
	}
	created, err := parseTime(item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("booking %s created_at: %w", item.BookingID, err)
	}
	updated, err := parseTime(item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("booking %s updated_at: %w", item.BookingID, err)
	}

	b := &domain.Booking{
		ID:            item.BookingID,
		TutorID:       item.TutorID,
		TutorName:     item.TutorName,
		StudentID:     item.StudentID,
		Date:          item.Date,
		Time:          item.Time,
		Subject:       item.Subject,
		SessionType:   item.SessionType,
		SessionFormat: item.SessionFormat,
		LearningGoals: item.LearningGoals,
		SessionsCount: item.SessionsCount,
		TotalPrice:    price,
		Status:        domain.BookingStatus(item.Status),
		CreatedAt:     created,
		UpdatedAt:     updated,
	}
	if item.PaymentID != "" {
		pid := item.PaymentID
		b.PaymentID = &pid
	}
	return b, nil
}
