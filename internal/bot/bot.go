package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/telebot.v4"

	"github.com/koolexil/koolbot/internal/metrics"
	"github.com/koolexil/koolbot/internal/models"
	"github.com/koolexil/koolbot/internal/store"
)

// LedgerRepo is the activity ledger contract the bot appends to and the
// report dialog reads from.
type LedgerRepo interface {
	Append(ctx context.Context, entry models.LedgerEntry) error
	List(ctx context.Context) ([]models.LedgerEntry, error)
}

// Bot contains the bot API instance and other information.
type Bot struct {
	bot       *telebot.Bot
	log       *slog.Logger
	records   *store.RecordStore
	admins    *store.AdminStore
	ledger    LedgerRepo
	metrics   *metrics.Metrics
	sessions  *SessionManager
	unitPrice float64
}

var (
	// inline buttons for record disambiguation.
	btnPick       = telebot.InlineButton{Unique: "pick"}
	btnPickCancel = telebot.InlineButton{Unique: "pick_cancel"}

	// inline buttons carrying a search-field choice.
	btnAddReadingKind = telebot.InlineButton{Unique: "addread"}
	btnPayKind        = telebot.InlineButton{Unique: "pay"}
	btnSubEditKind    = telebot.InlineButton{Unique: "subedit"}

	// submenus and field actions.
	btnSubMenu   = telebot.InlineButton{Unique: "sub"}
	btnFieldPick = telebot.InlineButton{Unique: "field"}
	btnFieldName = telebot.InlineButton{Unique: "noop"}
	btnBackMenu  = telebot.InlineButton{Unique: "back_menu"}

	// exports and scheduled reports.
	btnExportKind   = telebot.InlineButton{Unique: "export"}
	btnReportKind   = telebot.InlineButton{Unique: "report"}
	btnReportFormat = telebot.InlineButton{Unique: "reportfmt"}

	// administrator management.
	btnAdminMenu   = telebot.InlineButton{Unique: "admin"}
	btnAdminPick   = telebot.InlineButton{Unique: "adminpick"}
	btnAdminDelete = telebot.InlineButton{Unique: "admindel"}
	btnPermSet     = telebot.InlineButton{Unique: "perms"}
)

// NewBot creates a new bot with the given token.
func NewBot(
	log *slog.Logger,
	records *store.RecordStore,
	admins *store.AdminStore,
	ledger LedgerRepo,
	appMetrics *metrics.Metrics,
	token string,
	poller time.Duration,
	unitPrice float64,
) (*Bot, error) {
	tgBot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: poller},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", tgBot.Me.Username)

	botInstance := &Bot{
		bot:       tgBot,
		log:       log,
		records:   records,
		admins:    admins,
		ledger:    ledger,
		metrics:   appMetrics,
		sessions:  NewSessionManager(),
		unitPrice: unitPrice,
	}

	botInstance.registerRoutes()

	return botInstance, nil
}

// Start launches the bot to listen for updates.
func (b *Bot) Start() {
	b.log.Info("Telegram bot is starting...")
	b.bot.Start()
}

// Stop gracefully stops the Telegram bot and logs the action.
func (b *Bot) Stop() {
	b.log.Info("Telegram bot is stopped...")
	b.bot.Stop()
}

// registerRoutes configures all routes (commands and callbacks).
func (b *Bot) registerRoutes() {
	b.bot.Handle("/start", b.startHandler)
	b.bot.Handle(telebot.OnText, b.routeTextHandler)

	// Record disambiguation
	b.bot.Handle(&btnPick, b.pickHandler)
	b.bot.Handle(&btnPickCancel, b.pickCancelHandler)

	// Search-field selectors
	b.bot.Handle(&btnAddReadingKind, b.addReadingKindHandler)
	b.bot.Handle(&btnPayKind, b.payKindHandler)
	b.bot.Handle(&btnSubEditKind, b.subEditKindHandler)

	// Subscriber submenu and field actions
	b.bot.Handle(&btnSubMenu, b.subscriberMenuHandler)
	b.bot.Handle(&btnFieldPick, b.fieldPickHandler)
	b.bot.Handle(&btnFieldName, func(ctx telebot.Context) error { return ctx.Respond() })
	b.bot.Handle(&btnBackMenu, b.backMenuHandler)

	// Exports and scheduled reports
	b.bot.Handle(&btnExportKind, b.exportHandler)
	b.bot.Handle(&btnReportKind, b.reportKindHandler)
	b.bot.Handle(&btnReportFormat, b.reportFormatHandler)

	// Administrator management
	b.bot.Handle(&btnAdminMenu, b.adminMenuHandler)
	b.bot.Handle(&btnAdminPick, b.adminPickHandler)
	b.bot.Handle(&btnAdminDelete, b.adminDeleteHandler)
	b.bot.Handle(&btnPermSet, b.permSetHandler)
}

// session returns the dialog session of the message sender.
func (b *Bot) session(ctx telebot.Context) *Session {
	return b.sessions.Get(ctx.Sender().ID)
}

// actingUser resolves the chat identity recorded in the activity
// ledger.
func (b *Bot) actingUser(ctx telebot.Context) string {
	sender := ctx.Sender()
	if sender == nil {
		return "guest"
	}
	if sender.Username != "" {
		return sender.Username
	}
	name := sender.FirstName
	if sender.LastName != "" {
		name += " " + sender.LastName
	}
	if name == "" {
		return "guest"
	}
	return name
}

// loadRecords loads the full record set, timing the workbook read.
func (b *Bot) loadRecords() ([]models.Subscriber, error) {
	timer := prometheus.NewTimer(b.metrics.LedgerFileDuration.WithLabelValues("load"))
	defer timer.ObserveDuration()
	return b.records.Load()
}

// saveRecords saves the full record set, timing the workbook write.
func (b *Bot) saveRecords(records []models.Subscriber) error {
	timer := prometheus.NewTimer(b.metrics.LedgerFileDuration.WithLabelValues("save"))
	defer timer.ObserveDuration()
	return b.records.Save(records)
}

// logAction appends one entry to the activity ledger. Append failures
// are logged and do not abort the operation that produced them.
func (b *Bot) logAction(user, action string, amount float64, rec *models.Subscriber) {
	timeoutCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	entry := models.LedgerEntry{
		Timestamp: time.Now().UTC(),
		User:      user,
		Action:    action,
		Amount:    amount,
	}
	if rec != nil {
		entry.Meter = rec.Meter
		entry.Subscriber = rec.Name
	}
	if err := b.ledger.Append(timeoutCtx, entry); err != nil {
		b.log.Error("Failed to append activity entry", "action", action, "error", err)
	}
}
