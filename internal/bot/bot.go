package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"sync"
	"unicode"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/service"
	"habit-tracker/internal/streak"
)

type conversationStage int

const (
	stageNone conversationStage = iota
	stageTitle
	stageRecurring
	stageReminder
)

const (
	cbTogglePrefix = "toggle:"
	cbDeletePrefix = "delete:"
)

const (
	btnSkip         = "⏭️ Пропустить"
	btnYes          = "Да"
	btnNo           = "Нет"
	btnConfirm      = "✅ Подтвердить"
	btnCancel       = "↩️ Отмена"
	btnCancelDialog = "⏪ Отменить ввод"
	menuLabelNew    = "➕ Новая цель"
	menuLabelToday  = "📋 Сегодня"
	menuLabelStreak = "🔥 Серия"
	menuLabelHelp   = "ℹ️ Помощь"
)

type conversationState struct {
	stage conversationStage
	input service.ObjectiveInput
}

type confirmationRequest struct {
	recordID    string
	title       string
	isRecurring bool
}

// Bot aggregates Telegram API with services.
type Bot struct {
	api           *tgbotapi.BotAPI
	userRepo      *repository.UserRepository
	habitSvc      *service.HabitService
	streakSvc     *service.StreakService
	reminderSvc   *service.ReminderService
	clock         streak.Clock
	conversations map[int64]*conversationState
	confirmations map[int64]confirmationRequest
	mu            sync.Mutex
}

func New(token string, userRepo *repository.UserRepository, habitSvc *service.HabitService, streakSvc *service.StreakService, reminderSvc *service.ReminderService, clock streak.Clock) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:           api,
		userRepo:      userRepo,
		habitSvc:      habitSvc,
		streakSvc:     streakSvc,
		reminderSvc:   reminderSvc,
		clock:         clock,
		conversations: make(map[int64]*conversationState),
		confirmations: make(map[int64]confirmationRequest),
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if !msg.IsCommand() && isCancelDialogInput(msg.Text) {
		b.clearConversation(msg.From.ID)
		b.clearConfirmation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Диалог отменён. Я здесь, чтобы начать заново.")
	}

	if !msg.IsCommand() {
		if handled, err := b.handleMenuAlias(ctx, msg); handled {
			return err
		}
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if pending, ok := b.getConfirmation(msg.From.ID); ok {
		return b.handleConfirmationResponse(ctx, msg, pending)
	}

	if b.hasConversation(msg.From.ID) {
		return b.handleConversation(ctx, msg)
	}

	return b.sendText(msg.Chat.ID, "Я пока не понял сообщение. Набери /newhabit, чтобы добавить цель, или /help для списка команд.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "help":
		return b.handleHelp(msg)
	case "today":
		return b.handleToday(ctx, msg)
	case "newhabit":
		return b.startNewHabitConversation(ctx, msg)
	case "streak":
		return b.handleStreak(ctx, msg)
	case "deletehabit":
		return b.handleDeleteHabit(ctx, msg)
	case "report":
		return b.handleReport(ctx, msg)
	case "cancel":
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Диалог создания цели отменён.")
	default:
		return b.sendText(msg.Chat.ID, "Команда не поддерживается. Загляни в /help.")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}

	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "друг"
	}

	text := fmt.Sprintf(
		"👋 Привет, %s!\n<b>Я трекер привычек: помогу держать серию идеальных дней.</b>\n\nКоманды:\n"+
			"• /newhabit — добавить цель на сегодня\n"+
			"• /today — список целей на сегодня\n"+
			"• /streak — текущая серия\n"+
			"• /deletehabit &lt;название&gt; — удалить цель\n"+
			"• /report — сводка дня\n"+
			"• /help — подсказки\n"+
			"• /cancel — отменить текущий ввод",
		escape(name),
	)

	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	text := "ℹ️ <b>Подсказки</b>\n" +
		"• /newhabit — добавить цель пошагово (разовую или ежедневную)\n" +
		"• /today — цели на сегодня, отметить по кнопке\n" +
		"• /streak — сколько дней подряд все цели закрыты\n" +
		"• /deletehabit &lt;название&gt; — удалить цель по имени (ежедневную — со всей историей)\n" +
		"• /report — сводка дня\n" +
		"• /cancel — отменить текущий ввод\n\n" +
		"⚠️ День, в котором остались невыполненные цели, обрывает серию: " +
		"все записи после него удаляются, прогресс начинается заново."
	return b.sendText(msg.Chat.ID, text)
}

// handleDeleteHabit removes an objective by name; the inline 🗑 button stays
// as the shortcut for the same flow.
func (b *Bot) handleDeleteHabit(ctx context.Context, msg *tgbotapi.Message) error {
	title := strings.TrimSpace(msg.CommandArguments())
	if title == "" {
		return b.sendText(msg.Chat.ID, "Укажи название цели: /deletehabit Чтение")
	}

	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	err = b.habitSvc.DeleteByTitle(ctx, user, title)
	if err != nil && !streak.IsTransient(err) {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось удалить цель: %s", escape(err.Error())))
	}

	log.Printf("[info] objective deleted by title user=%d title=%q", user.ID, title)
	info := fmt.Sprintf("\U0001F5D1 Цель «%s» удалена.", escape(normalizeTitle(title)))
	if streak.IsTransient(err) {
		info += "\n⚠️ Серия не синхронизировалась, повторю при следующем действии."
	}
	if err := b.sendText(msg.Chat.ID, info); err != nil {
		return err
	}
	return b.sendTodayList(ctx, msg.Chat.ID, user)
}

func (b *Bot) handleReport(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	text, err := b.reminderSvc.DailySummary(ctx, user)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Не удалось сформировать сводку: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleStreak(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	_, rerr := b.streakSvc.Reconcile(ctx, user)
	if rerr != nil && !streak.IsTransient(rerr) {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Ошибка: %s", escape(rerr.Error())))
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("🔥 Серия: <b>%d</b> дн.\n", user.StreakCount))
	if user.LastCompletedDate != "" {
		builder.WriteString(fmt.Sprintf("✅ Последний идеальный день: %s\n", user.LastCompletedDate))
	}
	builder.WriteString(fmt.Sprintf("📅 В трекере с %s", user.JoinDate))
	if rerr != nil {
		builder.WriteString("\n\n⚠️ Не удалось сохранить серию, показано локальное значение. Повторю при следующем действии.")
	}
	return b.sendText(msg.Chat.ID, strings.TrimSpace(builder.String()))
}

func (b *Bot) startNewHabitConversation(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}
	b.setConversation(msg.From.ID, &conversationState{stage: stageTitle})
	return b.sendWithReplyMarkup(msg.Chat.ID, "🆕 Создаём новую цель.\n<b>Шаг 1:</b> как её назвать?", cancelKeyboard())
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.getConversation(msg.From.ID)
	if state == nil {
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	switch state.stage {
	case stageTitle:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Название не может быть пустым. Как назвать цель?", cancelKeyboard())
		}
		state.input.Title = text
		state.stage = stageRecurring
		return b.sendWithReplyMarkup(msg.Chat.ID, "🔁 Повторять цель каждый день?", yesNoKeyboard())
	case stageRecurring:
		lower := strings.ToLower(text)
		switch {
		case lower == "да" || lower == "yes" || lower == "y":
			state.input.IsRecurring = true
		case lower == "нет" || lower == "no" || lower == "n" || lower == "-":
			state.input.IsRecurring = false
		default:
			return b.sendWithReplyMarkup(msg.Chat.ID, "Нажми «Да» или «Нет».", yesNoKeyboard())
		}
		state.stage = stageReminder
		return b.sendWithReplyMarkup(msg.Chat.ID, "⏰ Во сколько напоминать? Укажи время в формате <code>08:30</code> (или «Пропустить»).", skipKeyboard())
	case stageReminder:
		if !isSkipInput(text) {
			state.input.ReminderTime = text
		}
		err := b.finishHabitCreation(ctx, msg.From, state.input, msg.Chat.ID)
		b.clearConversation(msg.From.ID)
		return err
	default:
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "Диалог сброшен. Попробуй ещё раз через /newhabit.")
	}
}

func (b *Bot) finishHabitCreation(ctx context.Context, from *tgbotapi.User, input service.ObjectiveInput, chatID int64) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}

	record, err := b.habitSvc.AddObjective(ctx, user, input)
	if err != nil && !streak.IsTransient(err) {
		return b.sendText(chatID, fmt.Sprintf("Не удалось сохранить цель: %s", escape(err.Error())))
	}

	log.Printf("[info] objective created id=%s user=%d recurring=%t", record.ID, user.ID, record.IsRecurring)

	var summary strings.Builder
	summary.WriteString("✅ <b>Цель сохранена</b>\n")
	summary.WriteString(fmt.Sprintf("• <b>Название:</b> %s\n", escape(normalizeTitle(record.Title))))
	if record.IsRecurring {
		summary.WriteString("• <b>Повтор:</b> каждый день\n")
	}
	if record.ReminderTime != "" {
		summary.WriteString(fmt.Sprintf("• <b>Напоминание:</b> %s\n", record.ReminderTime))
	}
	if streak.IsTransient(err) {
		summary.WriteString("\n⚠️ Серия не синхронизировалась, повторю при следующем действии.\n")
	}

	reply := tgbotapi.NewMessage(chatID, strings.TrimSpace(summary.String()))
	reply.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	reply.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(reply); err != nil {
		return err
	}
	return b.sendTodayList(ctx, chatID, user)
}

func (b *Bot) handleToday(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	return b.sendTodayList(ctx, msg.Chat.ID, user)
}

func (b *Bot) sendTodayList(ctx context.Context, chatID int64, user *model.User) error {
	records, err := b.habitSvc.ListToday(ctx, user)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Не удалось получить цели: %s", escape(err.Error())))
	}

	if len(records) == 0 {
		return b.sendText(chatID, "На сегодня целей нет. Добавь новую через /newhabit.")
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Цели на сегодня</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s · 🔥 %d дн.\n", b.clock.Today(), user.StreakCount))
	builder.WriteString("Нажми на кнопку, чтобы отметить или удалить цель.\n\n")

	var buttons [][]tgbotapi.InlineKeyboardButton
	done := 0
	for _, rec := range records {
		icon := "⬜"
		if rec.Completed {
			icon = "✅"
			done++
		}
		builder.WriteString(fmt.Sprintf("%s %s", icon, escape(normalizeTitle(rec.Title))))
		if rec.IsRecurring {
			builder.WriteString(" ♻️")
		}
		if rec.ReminderTime != "" {
			builder.WriteString(fmt.Sprintf(" · ⏰ %s", rec.ReminderTime))
		}
		builder.WriteByte('\n')

		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s %s", icon, shortTitle(rec.Title, 20)), cbTogglePrefix+rec.ID),
			tgbotapi.NewInlineKeyboardButtonData("\U0001F5D1", cbDeletePrefix+rec.ID),
		}
		buttons = append(buttons, row)
	}
	builder.WriteString(fmt.Sprintf("\nВыполнено: %d из %d", done, len(records)))

	reply := tgbotapi.NewMessage(chatID, strings.TrimSpace(builder.String()))
	reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons...)
	reply.ParseMode = tgbotapi.ModeHTML
	_, err = b.api.Send(reply)
	return err
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("callback ack: %v", err)
	}

	data := cb.Data
	switch {
	case strings.HasPrefix(data, cbTogglePrefix):
		return b.toggleAndRefresh(ctx, cb.Message.Chat.ID, cb.From, strings.TrimPrefix(data, cbTogglePrefix))
	case strings.HasPrefix(data, cbDeletePrefix):
		return b.askDeleteConfirmation(ctx, cb.Message.Chat.ID, cb.From, strings.TrimPrefix(data, cbDeletePrefix))
	default:
		return nil
	}
}

func (b *Bot) toggleAndRefresh(ctx context.Context, chatID int64, from *tgbotapi.User, recordID string) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}

	record, err := b.habitSvc.ToggleRecord(ctx, user, recordID)
	if err != nil && !streak.IsTransient(err) {
		return b.sendTextWithRemove(chatID, fmt.Sprintf("Ошибка: %s", escape(err.Error())))
	}

	var info string
	if record.Completed {
		info = fmt.Sprintf("✅ Цель «%s» выполнена. Серия: %d дн.", escape(normalizeTitle(record.Title)), user.StreakCount)
	} else {
		info = fmt.Sprintf("⬜ Цель «%s» снова открыта.", escape(normalizeTitle(record.Title)))
	}
	if streak.IsTransient(err) {
		// Optimistic local state stands; the store write will be retried
		// by the next action.
		info += "\n⚠️ Не удалось сохранить серию, повторю при следующем действии."
	}
	log.Printf("[info] record toggled id=%s user=%d completed=%t", record.ID, user.ID, record.Completed)
	if err := b.sendTextWithRemove(chatID, info); err != nil {
		return err
	}

	return b.sendTodayList(ctx, chatID, user)
}

func (b *Bot) askDeleteConfirmation(ctx context.Context, chatID int64, from *tgbotapi.User, recordID string) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}

	records, err := b.habitSvc.ListToday(ctx, user)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Ошибка: %s", escape(err.Error())))
	}

	var target *model.TaskRecord
	for i := range records {
		if records[i].ID == recordID {
			target = &records[i]
			break
		}
	}
	if target == nil {
		return b.sendText(chatID, "Цель не найдена или уже удалена.")
	}

	var text string
	if target.IsRecurring {
		text = fmt.Sprintf("Удалить ежедневную цель «%s» целиком, со всей историей повторов?", escape(normalizeTitle(target.Title)))
	} else {
		text = fmt.Sprintf("Удалить цель «%s»?", escape(normalizeTitle(target.Title)))
	}
	b.setConfirmation(from.ID, confirmationRequest{recordID: target.ID, title: target.Title, isRecurring: target.IsRecurring})
	return b.sendWithReplyMarkup(chatID, text, confirmKeyboard())
}

func (b *Bot) handleConfirmationResponse(ctx context.Context, msg *tgbotapi.Message, req confirmationRequest) error {
	text := strings.TrimSpace(msg.Text)
	switch {
	case isConfirmInput(text):
		b.clearConfirmation(msg.From.ID)
		return b.deleteAndRefresh(ctx, msg.Chat.ID, msg.From, req)
	case isCancelInput(text):
		b.clearConfirmation(msg.From.ID)
		return b.sendMenuPlaceholder(msg.Chat.ID)
	default:
		return b.sendWithReplyMarkup(msg.Chat.ID, "Подтверди или отмени удаление цели.", confirmKeyboard())
	}
}

func (b *Bot) deleteAndRefresh(ctx context.Context, chatID int64, from *tgbotapi.User, req confirmationRequest) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}

	if req.isRecurring {
		err = b.habitSvc.DeleteRecurring(ctx, user, req.title)
	} else {
		err = b.habitSvc.DeleteRecord(ctx, user, req.recordID)
	}
	if err != nil && !streak.IsTransient(err) {
		return b.sendTextWithRemove(chatID, fmt.Sprintf("Не удалось удалить цель: %s", escape(err.Error())))
	}

	log.Printf("[info] objective deleted user=%d title=%q recurring=%t", user.ID, req.title, req.isRecurring)
	info := fmt.Sprintf("\U0001F5D1 Цель «%s» удалена.", escape(normalizeTitle(req.title)))
	if streak.IsTransient(err) {
		info += "\n⚠️ Серия не синхронизировалась, повторю при следующем действии."
	}
	if err := b.sendTextWithRemove(chatID, info); err != nil {
		return err
	}

	return b.sendTodayList(ctx, chatID, user)
}

// SendDailyReports sends a summary to every known user.
func (b *Bot) SendDailyReports(ctx context.Context) error {
	users, err := b.userRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		user := &users[i]
		text, err := b.reminderSvc.DailySummary(ctx, user)
		if err != nil {
			log.Printf("build summary for user %d: %v", user.TelegramID, err)
			continue
		}
		if err := b.sendText(user.TelegramID, text); err != nil {
			log.Printf("send summary to %d: %v", user.TelegramID, err)
		}
	}
	return nil
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	user, err := b.userRepo.UpsertFromTelegram(ctx, from.ID, from.FirstName, from.LastName, from.UserName, b.clock.Today())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	text := strings.TrimSpace(strings.ToLower(msg.Text))
	switch text {
	case strings.ToLower(menuLabelNew):
		return true, b.startNewHabitConversation(ctx, msg)
	case strings.ToLower(menuLabelToday):
		return true, b.handleToday(ctx, msg)
	case strings.ToLower(menuLabelStreak):
		return true, b.handleStreak(ctx, msg)
	case strings.ToLower(menuLabelHelp):
		return true, b.handleHelp(msg)
	default:
		return false, nil
	}
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendTextWithRemove(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if _, err := b.api.Send(msg); err != nil {
		return err
	}
	return b.sendMenuPlaceholder(chatID)
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendMenuPlaceholder(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "🔹 Главное меню")
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) getConfirmation(userID int64) (confirmationRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	req, ok := b.confirmations[userID]
	return req, ok
}

func (b *Bot) setConfirmation(userID int64, req confirmationRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.confirmations[userID] = req
}

func (b *Bot) clearConfirmation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.confirmations, userID)
}

func (b *Bot) setConversation(userID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[userID] = state
}

func (b *Bot) getConversation(userID int64) *conversationState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[userID]
}

func (b *Bot) hasConversation(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.conversations[userID]
	return ok
}

func (b *Bot) clearConversation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, userID)
}

func confirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnConfirm),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelNew),
			tgbotapi.NewKeyboardButton(menuLabelToday),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelStreak),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func skipKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func yesNoKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnYes),
			tgbotapi.NewKeyboardButton(btnNo),
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func isSkipInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == "-" || value == strings.ToLower(btnSkip) || value == "пропустить" || value == "skip"
}

func isConfirmInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnConfirm) || value == "подтвердить" || value == "да"
}

func isCancelInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancel) || value == "отмена"
}

func isCancelDialogInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancelDialog) || value == "отменить ввод" || value == "отмена"
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	clean = normalizeTitle(clean)
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func normalizeTitle(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	runes := []rune(value)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func escape(s string) string {
	return html.EscapeString(s)
}
