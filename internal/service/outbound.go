package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"wallet-engine/config"
	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"
	"wallet-engine/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// outboundRetryIntervals is the wait before each retry of a collaborator call.
var outboundRetryIntervals = []time.Duration{
	1 * time.Second,
	5 * time.Second,
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// outboundDispatcher posts JSON to a collaborator in the background. Failures
// are logged and never reach the caller.
type outboundDispatcher struct {
	name    string
	cfg     config.CollaboratorConfig
	sigSvc  ports.SignatureService
	client  HTTPClient
	retries []time.Duration
	log     zerolog.Logger
	wg      sync.WaitGroup
}

func newOutboundDispatcher(name string, cfg config.CollaboratorConfig, sigSvc ports.SignatureService, client HTTPClient, log zerolog.Logger) *outboundDispatcher {
	if client == nil {
		client = &http.Client{}
	}
	return &outboundDispatcher{
		name:    name,
		cfg:     cfg,
		sigSvc:  sigSvc,
		client:  client,
		retries: outboundRetryIntervals,
		log:     logger.WithComponent(log, name),
	}
}

// dispatch marshals payload and delivers it asynchronously.
func (d *outboundDispatcher) dispatch(path string, payload interface{}, ref string) {
	if !d.cfg.Enabled {
		d.log.Debug().Str("ref", ref).Msg("collaborator disabled, skipping")
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		d.log.Error().Err(err).Str("ref", ref).Msg("failed to marshal payload")
		return
	}

	url := strings.TrimRight(d.cfg.URL, "/") + path
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.deliverWithRetries(url, body, ref)
	}()
}

// Wait blocks until in-flight deliveries finish. Used on shutdown.
func (d *outboundDispatcher) Wait() {
	d.wg.Wait()
}

func (d *outboundDispatcher) deliverWithRetries(url string, body []byte, ref string) {
	for attempt := 0; attempt <= len(d.retries); attempt++ {
		if attempt > 0 {
			time.Sleep(d.retries[attempt-1])
		}

		status, err := d.deliver(url, body)
		if err != nil {
			d.log.Warn().Err(err).Str("ref", ref).Int("attempt", attempt+1).Msg("delivery failed")
			continue
		}
		if status >= 200 && status < 300 {
			d.log.Debug().Str("ref", ref).Int("attempt", attempt+1).Int("status", status).Msg("delivered")
			return
		}
		// The collaborator understood and rejected the request; a retry will not help.
		if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
			d.log.Warn().Str("ref", ref).Int("status", status).Msg("collaborator rejected payload")
			return
		}
		d.log.Warn().Str("ref", ref).Int("attempt", attempt+1).Int("status", status).Msg("non-2xx response, retrying")
	}

	d.log.Error().Str("ref", ref).Msg("all retry attempts exhausted")
}

func (d *outboundDispatcher) deliver(url string, body []byte) (int, error) {
	timeout := d.cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.cfg.SigningSecret != "" && d.sigSvc != nil {
		req.Header.Set("X-Signature", d.sigSvc.Sign(d.cfg.SigningSecret, string(body)))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// LedgerEntryPayload is the body accepted by the ledger service.
type LedgerEntryPayload struct {
	WalletID             uuid.UUID  `json:"walletId"`
	UserID               uuid.UUID  `json:"userId"`
	EntryType            string     `json:"entryType"`
	TransactionType      string     `json:"transactionType"`
	AmountMinorUnits     int64      `json:"amountMinorUnits"`
	Currency             string     `json:"currency"`
	BalanceAfter         int64      `json:"balanceAfter"`
	TransactionID        uuid.UUID  `json:"transactionId"`
	CounterpartyWalletID *uuid.UUID `json:"counterpartyWalletId,omitempty"`
	IdempotencyKey       string     `json:"idempotencyKey"`
	Description          string     `json:"description"`
}

// LedgerReplicator implements ports.LedgerReplicator over HTTP.
type LedgerReplicator struct {
	d *outboundDispatcher
}

// NewLedgerReplicator creates a replicator posting to cfg.URL. client may be nil.
func NewLedgerReplicator(cfg config.CollaboratorConfig, sigSvc ports.SignatureService, client HTTPClient, log zerolog.Logger) *LedgerReplicator {
	return &LedgerReplicator{d: newOutboundDispatcher("ledger", cfg, sigSvc, client, log)}
}

// Replicate forwards a committed entry. It returns immediately.
func (r *LedgerReplicator) Replicate(event ports.WalletEvent) {
	w, e := event.Wallet, event.Entry
	r.d.dispatch("/api/v1/ledger/entries", LedgerEntryPayload{
		WalletID:             w.ID,
		UserID:               w.UserID,
		EntryType:            string(e.EntryType),
		TransactionType:      string(e.TransactionType),
		AmountMinorUnits:     e.Amount,
		Currency:             string(w.Currency),
		BalanceAfter:         e.BalanceAfter,
		TransactionID:        e.TransactionID,
		CounterpartyWalletID: event.Counterparty,
		IdempotencyKey:       e.IdempotencyKey,
		Description:          e.Description,
	}, e.IdempotencyKey)
}

// Wait blocks until queued replications finish.
func (r *LedgerReplicator) Wait() { r.d.Wait() }

// Notification types understood by the notification service.
const (
	NotificationDepositReceived     = "DEPOSIT_RECEIVED"
	NotificationWithdrawalCompleted = "WITHDRAWAL_COMPLETED"
	NotificationTransferSent        = "TRANSFER_SENT"
	NotificationTransferReceived    = "TRANSFER_RECEIVED"
	NotificationLargeTransaction    = "LARGE_TRANSACTION"
)

// NotificationPayload is the body of /api/v1/notifications/send-async.
type NotificationPayload struct {
	UserID           uuid.UUID         `json:"userId"`
	NotificationType string            `json:"notificationType"`
	Channels         []string          `json:"channels"`
	Recipient        string            `json:"recipient,omitempty"`
	Subject          string            `json:"subject"`
	Content          string            `json:"content,omitempty"`
	TemplateName     string            `json:"templateName,omitempty"`
	TemplateData     map[string]string `json:"templateData,omitempty"`
	ReferenceID      uuid.UUID         `json:"referenceId"`
	ReferenceType    string            `json:"referenceType"`
}

// Notifier implements ports.Notifier over HTTP.
type Notifier struct {
	d                 *outboundDispatcher
	largeTxnThreshold int64
}

// NewNotifier creates a notifier. Amounts at or above largeTxnThreshold also
// raise a LARGE_TRANSACTION alert; zero disables the alert.
func NewNotifier(cfg config.CollaboratorConfig, largeTxnThreshold int64, sigSvc ports.SignatureService, client HTTPClient, log zerolog.Logger) *Notifier {
	return &Notifier{
		d:                 newOutboundDispatcher("notification", cfg, sigSvc, client, log),
		largeTxnThreshold: largeTxnThreshold,
	}
}

// Notify sends the notifications matching the entry's transaction type.
func (n *Notifier) Notify(event ports.WalletEvent) {
	for _, p := range n.build(event) {
		n.d.dispatch("/api/v1/notifications/send-async", p, p.NotificationType+":"+p.ReferenceID.String())
	}
}

// Wait blocks until queued notifications finish.
func (n *Notifier) Wait() { n.d.Wait() }

func (n *Notifier) build(event ports.WalletEvent) []NotificationPayload {
	w, e := event.Wallet, event.Entry
	amount := domain.FormatAmount(e.Amount, w.Currency)
	balance := domain.FormatAmount(e.BalanceAfter, w.Currency)

	base := NotificationPayload{
		UserID:        w.UserID,
		Channels:      []string{"EMAIL"},
		Recipient:     event.RecipientEmail,
		ReferenceID:   e.TransactionID,
		ReferenceType: "TRANSACTION",
	}
	data := map[string]string{
		"amount":        amount,
		"currency":      string(w.Currency),
		"walletId":      w.ID.String(),
		"transactionId": e.TransactionID.String(),
		"newBalance":    balance,
		"date":          e.CreatedAt.Format("2006-01-02"),
	}

	var out []NotificationPayload
	p := base
	switch e.TransactionType {
	case domain.TransactionTypeDeposit, domain.TransactionTypeRefund:
		p.NotificationType = NotificationDepositReceived
		p.Subject = "Deposit Received - Digital Wallet"
		p.TemplateName = "deposit-received"
		p.TemplateData = data
	case domain.TransactionTypeWithdrawal:
		p.NotificationType = NotificationWithdrawalCompleted
		p.Subject = "Withdrawal Completed - Digital Wallet"
		p.Content = fmt.Sprintf("<h2>Withdrawal Completed</h2><p>Amount: <strong>%s</strong></p><p>New Balance: %s</p><p>Transaction ID: %s</p>",
			amount, balance, e.TransactionID)
	case domain.TransactionTypeTransferOut, domain.TransactionTypeTransferIn:
		p.NotificationType = NotificationTransferReceived
		p.Subject = "Transfer Received - Digital Wallet"
		data["direction"] = "received"
		if e.TransactionType == domain.TransactionTypeTransferOut {
			p.NotificationType = NotificationTransferSent
			p.Subject = "Transfer Sent - Digital Wallet"
			data["direction"] = "sent"
		}
		if event.Counterparty != nil {
			data["counterpartyWalletId"] = event.Counterparty.String()
		}
		p.TemplateName = "transfer"
		p.TemplateData = data
	default:
		return nil
	}
	out = append(out, p)

	// Incoming transfers are reported by the sender's side only.
	if n.largeTxnThreshold > 0 && e.Amount >= n.largeTxnThreshold && e.TransactionType != domain.TransactionTypeTransferIn {
		alert := base
		alert.NotificationType = NotificationLargeTransaction
		alert.Channels = []string{"EMAIL", "SMS"}
		alert.Subject = "Large Transaction Alert - Digital Wallet"
		alert.Content = fmt.Sprintf("<h2>Large Transaction Detected</h2><p>A large %s of <strong>%s</strong> was processed on your account.</p>"+
			"<p>If you did not authorize this transaction, please contact support immediately.</p>",
			strings.ToLower(strings.ReplaceAll(string(e.TransactionType), "_", " ")), amount)
		out = append(out, alert)
	}
	return out
}
