package bot

import (
	"bytes"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/telebot.v4"

	"github.com/koolexil/koolbot/internal/export"
	"github.com/koolexil/koolbot/internal/models"
)

// exportHandler renders the full record set as a document in the chosen
// format and sends it to the chat.
func (b *Bot) exportHandler(ctx telebot.Context) error {
	format := ctx.Data()
	if format == "cancel" {
		b.session(ctx).Reset()
		_ = ctx.Respond(&telebot.CallbackResponse{Text: msgCancelled})
		return b.send(ctx, msgCancelled, mainMenu)
	}
	_ = ctx.Respond(&telebot.CallbackResponse{Text: "جارٍ التصدير"})

	records, err := b.loadRecords()
	if err != nil {
		b.log.Error("Failed to load records", "error", err)
		return b.send(ctx, msgInternalError, mainMenu)
	}
	table := export.BuildTable(records)

	timer := prometheus.NewTimer(b.metrics.ExportGeneration.WithLabelValues(format))
	var buf *bytes.Buffer
	var fileName, caption, action string
	if format == "pdf" {
		buf, err = export.PDFBytes(table)
		fileName, caption, action = "KOOLEXIL.pdf", "📄 PDF (أفقي)", models.ActionExportPDF
	} else {
		buf, err = export.ExcelBytes(table)
		fileName, caption, action = "KOOLEXIL.xlsx", "📦 ملف Excel الحالي", models.ActionExportExcel
	}
	timer.ObserveDuration()
	if err != nil {
		b.log.Error("Failed to generate export", "format", format, "error", err)
		return b.send(ctx, msgInternalError, mainMenu)
	}

	if err = b.sendDocument(ctx, buf, fileName, caption); err != nil {
		return err
	}

	b.logAction(b.actingUser(ctx), action, 0, nil)
	return b.send(ctx, "العودة للوحة التحكم:", mainMenu)
}

// sendDocument uploads an in-memory document to the chat.
func (b *Bot) sendDocument(ctx telebot.Context, buf *bytes.Buffer, fileName, caption string) error {
	doc := &telebot.Document{
		File:     telebot.FromReader(buf),
		FileName: fileName,
		Caption:  caption,
	}
	if err := ctx.Send(doc); err != nil {
		b.metrics.SentMessages.WithLabelValues("error").Inc()
		b.log.Error("Failed to send document", "file", fileName, "error", err)
		return b.send(ctx, msgInternalError, mainMenu)
	}
	b.metrics.SentMessages.WithLabelValues("document").Inc()
	return nil
}
