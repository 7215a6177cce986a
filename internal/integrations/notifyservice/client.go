package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/FTM-BookingService/internal/domain"
)

// Client клиент для работы с NotifyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ReservationCreated отправляет событие о создании бронирования
// Вызывается асинхронно после коммита: ошибки логируются и глотаются,
// недоступность NotifyService не влияет на результат бронирования
func (c *Client) ReservationCreated(ctx context.Context, res *domain.Reservation) {
	c.sendWithGracefulDegradation(ctx, &ReservationEvent{
		Event:         EventReservationCreated,
		ReservationID: res.ID,
		ClientID:      res.ClientID,
		SessionID:     res.SessionID,
		Status:        string(res.Status),
	})
}

// ReservationStatusChanged отправляет событие о смене статуса бронирования
func (c *Client) ReservationStatusChanged(ctx context.Context, res *domain.Reservation) {
	c.sendWithGracefulDegradation(ctx, &ReservationEvent{
		Event:         EventReservationStatusChanged,
		ReservationID: res.ID,
		ClientID:      res.ClientID,
		SessionID:     res.SessionID,
		Status:        string(res.Status),
	})
}

// sendWithGracefulDegradation отправляет событие с graceful degradation
// При недоступности NotifyService пишет ERROR в лог, чтобы быстрее заметить проблему
func (c *Client) sendWithGracefulDegradation(ctx context.Context, event *ReservationEvent) {
	c.log.Info("Sending %s event for reservation_id=%d", event.Event, event.ReservationID)

	if err := c.send(ctx, event); err != nil {
		c.log.Error("NotifyService unavailable, dropping %s event for reservation_id=%d: %v",
			event.Event, event.ReservationID, fmt.Errorf("%w: %v", ErrServiceDegraded, err))
		return
	}

	c.log.Info("Successfully sent %s event for reservation_id=%d", event.Event, event.ReservationID)
}

// send отправляет событие в NotifyService
func (c *Client) send(ctx context.Context, event *ReservationEvent) error {
	url := fmt.Sprintf("%s/internal/events", c.baseURL)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
