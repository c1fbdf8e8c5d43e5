package store

import (
	"context"
	"errors"
	"fmt"
	"hms/src/models"
	"hms/src/types"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client the store calls.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// Dynamo stores one item per record, keyed by roomId, bookingId and
// paymentId. Listings are full table scans read until exhausted.
type Dynamo struct {
	client DynamoAPI
	tables Tables
}

func NewDynamo(client DynamoAPI, tables Tables) *Dynamo {
	return &Dynamo{client: client, tables: tables}
}

func (d *Dynamo) put(ctx context.Context, table string, record any) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("encoding %s item: %w", table, err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("putting %s item: %w", table, err)
	}
	return nil
}

func (d *Dynamo) get(ctx context.Context, table string, keyName string, id string, out any) error {
	output, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]ddbtypes.AttributeValue{
			keyName: &ddbtypes.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return fmt.Errorf("getting %s item: %w", table, err)
	}
	if len(output.Item) == 0 {
		return ErrNotFound
	}
	if err := attributevalue.UnmarshalMap(output.Item, out); err != nil {
		return fmt.Errorf("decoding %s item: %w", table, err)
	}
	return nil
}

// scan reads every page of the table. A non-empty attr restricts the result
// to items whose attr equals value.
func scan[T any](ctx context.Context, client DynamoAPI, table string, attr string, value string) ([]T, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(table)}
	if attr != "" {
		input.FilterExpression = aws.String("#f = :v")
		input.ExpressionAttributeNames = map[string]string{"#f": attr}
		input.ExpressionAttributeValues = map[string]ddbtypes.AttributeValue{
			":v": &ddbtypes.AttributeValueMemberS{Value: value},
		}
	}
	out := []T{}
	paginator := dynamodb.NewScanPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", table, err)
		}
		var items []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("decoding %s items: %w", table, err)
		}
		out = append(out, items...)
	}
	return out, nil
}

func (d *Dynamo) PutRoom(ctx context.Context, room *models.Room) error {
	return d.put(ctx, d.tables.Rooms, room)
}

func (d *Dynamo) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := d.get(ctx, d.tables.Rooms, "roomId", id, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (d *Dynamo) ListRooms(ctx context.Context) ([]models.Room, error) {
	return scan[models.Room](ctx, d.client, d.tables.Rooms, "", "")
}

func (d *Dynamo) ListRoomsByStatus(ctx context.Context, status types.RoomStatus) ([]models.Room, error) {
	return scan[models.Room](ctx, d.client, d.tables.Rooms, "status", string(status))
}

func (d *Dynamo) PutBooking(ctx context.Context, booking *models.Booking) error {
	return d.put(ctx, d.tables.Bookings, booking)
}

func (d *Dynamo) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := d.get(ctx, d.tables.Bookings, "bookingId", id, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (d *Dynamo) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return scan[models.Booking](ctx, d.client, d.tables.Bookings, "", "")
}

func (d *Dynamo) ListBookingsByRoom(ctx context.Context, roomID string) ([]models.Booking, error) {
	return scan[models.Booking](ctx, d.client, d.tables.Bookings, "roomId", roomID)
}

func (d *Dynamo) PutPayment(ctx context.Context, payment *models.Payment) error {
	return d.put(ctx, d.tables.Payments, payment)
}

func (d *Dynamo) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	if err := d.get(ctx, d.tables.Payments, "paymentId", id, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (d *Dynamo) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return scan[models.Payment](ctx, d.client, d.tables.Payments, "", "")
}

func (d *Dynamo) ListPaymentsByBooking(ctx context.Context, bookingID string) ([]models.Payment, error) {
	return scan[models.Payment](ctx, d.client, d.tables.Payments, "bookingId", bookingID)
}

func (d *Dynamo) CompletePayment(ctx context.Context, id string, status types.PaymentStatus, processedAt time.Time, reference string) (*models.Payment, error) {
	processed, err := attributevalue.Marshal(processedAt)
	if err != nil {
		return nil, fmt.Errorf("encoding processedAt: %w", err)
	}
	update := "SET #s = :status, processedAt = :processedAt"
	values := map[string]ddbtypes.AttributeValue{
		":status":      &ddbtypes.AttributeValueMemberS{Value: string(status)},
		":processedAt": processed,
		":pending":     &ddbtypes.AttributeValueMemberS{Value: string(types.PAYMENT_PENDING)},
	}
	if reference != "" {
		update += ", gatewayReference = :ref"
		values[":ref"] = &ddbtypes.AttributeValueMemberS{Value: reference}
	}
	output, err := d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(d.tables.Payments),
		Key: map[string]ddbtypes.AttributeValue{
			"paymentId": &ddbtypes.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String("attribute_exists(paymentId) AND #s = :pending"),
		ExpressionAttributeNames:  map[string]string{"#s": "status"},
		ExpressionAttributeValues: values,
		ReturnValues:              ddbtypes.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			if _, gerr := d.GetPayment(ctx, id); gerr != nil {
				return nil, gerr
			}
			return nil, ErrNotPending
		}
		return nil, fmt.Errorf("updating payment: %w", err)
	}
	var payment models.Payment
	if err := attributevalue.UnmarshalMap(output.Attributes, &payment); err != nil {
		return nil, fmt.Errorf("decoding payments item: %w", err)
	}
	return &payment, nil
}
