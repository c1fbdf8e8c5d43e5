package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hms/src/models"
	"hms/src/types"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/tidwall/gjson"
)

// Config holds the base URL of each service.
type Config struct {
	RoomServiceURL    string `envconfig:"ROOM_SERVICE_URL" default:"http://localhost:3001"`
	BookingServiceURL string `envconfig:"BOOKING_SERVICE_URL" default:"http://localhost:3002"`
	PaymentServiceURL string `envconfig:"PAYMENT_SERVICE_URL" default:"http://localhost:3003"`
}

// APIError is a response whose envelope reported success=false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Client calls the room, booking and payment services. It never combines
// calls; keeping bookings and payments consistent is up to the caller.
type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	cfg.RoomServiceURL = strings.TrimRight(cfg.RoomServiceURL, "/")
	cfg.BookingServiceURL = strings.TrimRight(cfg.BookingServiceURL, "/")
	cfg.PaymentServiceURL = strings.TrimRight(cfg.PaymentServiceURL, "/")
	return &Client{cfg: cfg, http: httpClient}
}

// NewFromEnv reads the service URLs from the environment.
func NewFromEnv() (*Client, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return New(cfg, nil), nil
}

// do sends the request and decodes the envelope's data into out. It returns
// the envelope message.
func (c *Client) do(ctx context.Context, method string, endpoint string, body any, out any) (string, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return "", err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return "", &APIError{Status: res.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	envelope := gjson.ParseBytes(raw)
	if !envelope.Get("success").Bool() {
		msg := envelope.Get("error").String()
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		return "", &APIError{Status: res.StatusCode, Message: msg}
	}
	if out != nil {
		if data := envelope.Get("data"); data.Exists() {
			if err := json.Unmarshal([]byte(data.Raw), out); err != nil {
				return "", fmt.Errorf("decoding data: %w", err)
			}
		}
	}
	return envelope.Get("message").String(), nil
}

func (c *Client) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	_, err := c.do(ctx, http.MethodGet, c.cfg.RoomServiceURL+"/rooms", nil, &rooms)
	return rooms, err
}

func (c *Client) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if _, err := c.do(ctx, http.MethodGet, c.cfg.RoomServiceURL+"/rooms/"+url.PathEscape(id), nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *Client) CreateRoom(ctx context.Context, input types.CreateRoomRequestBody) (*models.Room, error) {
	var room models.Room
	if _, err := c.do(ctx, http.MethodPost, c.cfg.RoomServiceURL+"/rooms", input, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// CheckAvailability omits empty dates from the query.
func (c *Client) CheckAvailability(ctx context.Context, startDate string, endDate string) (*models.Availability, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("startDate", startDate)
	}
	if endDate != "" {
		q.Set("endDate", endDate)
	}
	endpoint := c.cfg.RoomServiceURL + "/rooms/availability"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	var availability models.Availability
	if _, err := c.do(ctx, http.MethodGet, endpoint, nil, &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}

func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	_, err := c.do(ctx, http.MethodGet, c.cfg.BookingServiceURL+"/bookings", nil, &bookings)
	return bookings, err
}

func (c *Client) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if _, err := c.do(ctx, http.MethodGet, c.cfg.BookingServiceURL+"/bookings/"+url.PathEscape(id), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) CreateBooking(ctx context.Context, input types.CreateBookingRequestBody) (*models.Booking, string, error) {
	var booking models.Booking
	msg, err := c.do(ctx, http.MethodPost, c.cfg.BookingServiceURL+"/bookings", input, &booking)
	if err != nil {
		return nil, "", err
	}
	return &booking, msg, nil
}

func (c *Client) ListBookingsByRoom(ctx context.Context, roomID string) ([]models.Booking, error) {
	var bookings []models.Booking
	_, err := c.do(ctx, http.MethodGet, c.cfg.BookingServiceURL+"/bookings/room/"+url.PathEscape(roomID), nil, &bookings)
	return bookings, err
}

func (c *Client) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	_, err := c.do(ctx, http.MethodGet, c.cfg.PaymentServiceURL+"/payments", nil, &payments)
	return payments, err
}

func (c *Client) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	if _, err := c.do(ctx, http.MethodGet, c.cfg.PaymentServiceURL+"/payments/"+url.PathEscape(id), nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) CreatePayment(ctx context.Context, input types.CreatePaymentRequestBody) (*models.Payment, string, error) {
	var payment models.Payment
	msg, err := c.do(ctx, http.MethodPost, c.cfg.PaymentServiceURL+"/payments", input, &payment)
	if err != nil {
		return nil, "", err
	}
	return &payment, msg, nil
}

func (c *Client) ProcessPayment(ctx context.Context, id string) (*models.Payment, string, error) {
	var payment models.Payment
	msg, err := c.do(ctx, http.MethodPost, c.cfg.PaymentServiceURL+"/payments/"+url.PathEscape(id)+"/process", nil, &payment)
	if err != nil {
		return nil, "", err
	}
	return &payment, msg, nil
}

func (c *Client) ListPaymentsByBooking(ctx context.Context, bookingID string) ([]models.Payment, error) {
	var payments []models.Payment
	_, err := c.do(ctx, http.MethodGet, c.cfg.PaymentServiceURL+"/payments/booking/"+url.PathEscape(bookingID), nil, &payments)
	return payments, err
}
