package bot

import (
	"context"
	"strconv"
	"time"

	"gopkg.in/telebot.v4"

	"github.com/koolexil/koolbot/internal/export"
	"github.com/koolexil/koolbot/internal/models"
	"github.com/koolexil/koolbot/internal/report"
)

const reportDateLayout = "2006-01-02"

// reportKindHandler captures the report period choice.
func (b *Bot) reportKindHandler(ctx telebot.Context) error {
	sess := b.session(ctx)
	switch ctx.Data() {
	case "day":
		_ = ctx.Respond(&telebot.CallbackResponse{Text: "يوم محدد"})
		sess.Report = models.ReportFilter{Kind: models.FilterDay}
		sess.Mode = ModeReportDay
		return b.send(ctx, "أدخل التاريخ (YYYY-MM-DD):", mainMenu)
	case "range":
		_ = ctx.Respond(&telebot.CallbackResponse{Text: "بين تاريخين"})
		sess.Report = models.ReportFilter{Kind: models.FilterRange}
		sess.Mode = ModeReportRangeStart
		return b.send(ctx, "أدخل تاريخ البداية (YYYY-MM-DD):", mainMenu)
	case "all":
		_ = ctx.Respond(&telebot.CallbackResponse{Text: "كامل السجل"})
		sess.Report = models.ReportFilter{Kind: models.FilterAll}
		sess.Mode = ModeReportChooseFormat
		return b.send(ctx, "اختر صيغة التقرير:", reportFormatKeyboard())
	default:
		sess.Reset()
		_ = ctx.Respond(&telebot.CallbackResponse{Text: msgCancelled})
		return b.send(ctx, msgCancelled, mainMenu)
	}
}

// handleReportDate parses one date input of the report dialog. An
// unparsable date re-prompts without advancing.
func (b *Bot) handleReportDate(ctx telebot.Context, sess *Session, input string) error {
	day, err := time.Parse(reportDateLayout, input)
	if err != nil {
		return b.send(ctx, "⚠️ تاريخ غير صالح، استخدم الصيغة YYYY-MM-DD.", mainMenu)
	}

	switch sess.Mode {
	case ModeReportDay:
		sess.Report.Day = day
	case ModeReportRangeStart:
		sess.Report.Start = day
		sess.Mode = ModeReportRangeEnd
		return b.send(ctx, "أدخل تاريخ النهاية (YYYY-MM-DD):", mainMenu)
	default: // ModeReportRangeEnd
		sess.Report.End = day
	}

	sess.Mode = ModeReportChooseFormat
	return b.send(ctx, "اختر صيغة التقرير:", reportFormatKeyboard())
}

// reportFormatHandler renders the aggregated activity report in the
// chosen format and sends it as a document.
func (b *Bot) reportFormatHandler(ctx telebot.Context) error {
	sess := b.session(ctx)
	format := ctx.Data()
	_ = ctx.Respond(&telebot.CallbackResponse{Text: "جارٍ إنشاء التقرير"})

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entries, err := b.ledger.List(timeoutCtx)
	if err != nil {
		b.log.Error("Failed to read activity ledger", "error", err)
		sess.Reset()
		return b.send(ctx, msgInternalError, mainMenu)
	}

	summaries := report.Summarize(entries, sess.Report)
	sess.Reset()
	if len(summaries) == 0 {
		return b.send(ctx, "لا توجد بيانات ضمن المدة المحددة.", mainMenu)
	}

	if format == "pdf" {
		buf, err := export.PDFBytes(summaryTable(summaries))
		if err != nil {
			b.log.Error("Failed to render report PDF", "error", err)
			return b.send(ctx, msgInternalError, mainMenu)
		}
		return b.sendDocument(ctx, buf, "scheduled_report.pdf", "📄 التقرير المجدول")
	}

	buf, err := report.SummaryExcel(summaries)
	if err != nil {
		b.log.Error("Failed to render report workbook", "error", err)
		return b.send(ctx, msgInternalError, mainMenu)
	}
	return b.sendDocument(ctx, buf, "scheduled_report.xlsx", "📊 التقرير المجدول")
}

// summaryTable lays the per-administrator summaries out as a document
// table.
func summaryTable(summaries []report.Summary) export.Table {
	table := export.Table{Headers: []string{"المسؤول", "عدد العمليات", "اجمالي المسددة"}}
	for _, s := range summaries {
		table.Rows = append(table.Rows, []string{
			s.Admin,
			strconv.Itoa(s.Operations),
			strconv.FormatFloat(s.TotalAmount, 'f', -1, 64),
		})
	}
	return table
}
