package worker

// notification_worker.go
// Processes order notification jobs from QueueNotification.
// For approved orders it renders the PDF receipt, then hands delivery to the
// email queue so SMTP latency never blocks this stage.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AbyssT34/Ecommerce-Shop/internal/infra"
	"github.com/AbyssT34/Ecommerce-Shop/internal/model"
	"github.com/AbyssT34/Ecommerce-Shop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// OrderNotificationPayload is the job envelope sent to QueueNotification.
type OrderNotificationPayload struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	ToEmail string `json:"to_email"`
}

type NotificationWorker struct {
	orderRepo      repository.OrderRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewNotificationWorker(orderRepo repository.OrderRepository, dispatcher *Dispatcher, pdfStoragePath string) *NotificationWorker {
	return &NotificationWorker{
		orderRepo:      orderRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single notification job:
//  1. Parse OrderNotificationPayload from the job envelope
//  2. Fetch the order (with items) from DB
//  3. For approved orders, generate the PDF receipt
//  4. Enqueue an email job with the receipt attached
func (w *NotificationWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload OrderNotificationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notification_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Str("order_id", payload.OrderID).Msg("notification_worker: no recipient — skipping")
		return
	}

	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		log.Error().Str("order_id", payload.OrderID).Msg("notification_worker: invalid order_id")
		return
	}

	order, err := w.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID).Msg("notification_worker: order not found")
		return
	}

	var subject, body, pdfPath string
	switch payload.Status {
	case model.OrderStatusApproved:
		subject = fmt.Sprintf("Your order %s has been approved", shortID(order.ID))
		body = fmt.Sprintf("Good news! Your order has been approved and is being prepared.\nTotal: $%s\n\nYour receipt is attached.", order.TotalAmount.StringFixed(2))
		path, pdfErr := infra.GenerateOrderReceiptPDF(order, w.pdfStoragePath)
		if pdfErr != nil {
			log.Warn().Err(pdfErr).Str("order_id", payload.OrderID).Msg("notification_worker: PDF generation failed, sending without attachment")
		} else {
			pdfPath = path
			log.Info().Str("pdf", path).Str("order_id", payload.OrderID).Msg("notification_worker: receipt generated")
		}
	case model.OrderStatusRejected:
		subject = fmt.Sprintf("Your order %s could not be fulfilled", shortID(order.ID))
		body = "Unfortunately your order was rejected. Any reserved stock has been released and no payment will be taken.\nPlease contact support if you have questions."
	default:
		log.Warn().Str("status", payload.Status).Str("order_id", payload.OrderID).Msg("notification_worker: no notification for status")
		return
	}

	emailJob := EmailJobPayload{
		ToEmail: payload.ToEmail,
		Subject: subject,
		Body:    body,
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", payload.ToEmail).Msg("notification_worker: failed to enqueue email")
		return
	}
	log.Info().Str("email", payload.ToEmail).Str("order_id", payload.OrderID).Msg("notification_worker: email job enqueued")
}

// shortID renders the first uuid segment, enough for a subject line.
func shortID(id uuid.UUID) string {
	s := id.String()
	return "#" + s[:8]
}
