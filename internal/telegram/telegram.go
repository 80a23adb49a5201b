// Package telegram adapts the conversation engine to the Telegram Bot API:
// long polling in, plain messages and reply keyboards out. It carries no
// conversation logic of its own.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Engine is the inbound side of the conversation: the bot engine's command
// and free-text entry points.
type Engine interface {
	HandleCommand(ctx context.Context, userID int64, command, args string) error
	HandleText(ctx context.Context, userID int64, text string) error
}

// Bot wraps the Telegram API client. It implements the Sender interface
// used by the bot engine and the reminder scheduler.
type Bot struct {
	api *tgbotapi.BotAPI
}

// New connects to the Telegram Bot API and registers the command menu.
func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}

	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "add", Description: "Register a piece of clothing"},
		tgbotapi.BotCommand{Command: "wear", Description: "Mark an item as worn"},
		tgbotapi.BotCommand{Command: "wash", Description: "Mark an item as washed"},
		tgbotapi.BotCommand{Command: "status", Description: "Overview of all your items"},
		tgbotapi.BotCommand{Command: "remind", Description: "Daily reminder settings"},
		tgbotapi.BotCommand{Command: "timezone", Description: "Set your timezone"},
	)
	if _, err := api.Request(commands); err != nil {
		return nil, fmt.Errorf("registering bot commands: %w", err)
	}

	slog.Info("connected to telegram", "username", api.Self.UserName)
	return &Bot{api: api}, nil
}

// Run receives updates via long polling and routes them into the engine
// until the context is cancelled. Updates are handled sequentially, so each
// user's messages arrive at the engine one at a time.
func (b *Bot) Run(ctx context.Context, engine Engine) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			b.handle(ctx, engine, update)
		}
	}
}

// handle routes a single update. Only private-chat text messages are
// understood; everything else is dropped.
func (b *Bot) handle(ctx context.Context, engine Engine, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || !msg.Chat.IsPrivate() || msg.Text == "" {
		return
	}

	userID := msg.From.ID

	var err error
	if msg.IsCommand() {
		err = engine.HandleCommand(ctx, userID, msg.Command(), msg.CommandArguments())
	} else {
		err = engine.HandleText(ctx, userID, msg.Text)
	}
	if err != nil {
		slog.Error("handling update failed", "user", userID, "error", err)
	}
}

// Send delivers a message to a user. Non-nil choices become a one-time
// reply keyboard with the choices two per row and a final Cancel row; nil
// choices send a plain message and remove any keyboard left from a previous
// dialog. Text is sent without a parse mode, since item names are user
// input and must never be interpreted as markup.
func (b *Bot) Send(_ context.Context, userID int64, text string, choices []string) error {
	msg := tgbotapi.NewMessage(userID, text)
	if choices == nil {
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	} else {
		msg.ReplyMarkup = choiceKeyboard(choices)
	}

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

// choiceKeyboard lays out the offered replies two per row, with Cancel on
// its own final row.
func choiceKeyboard(choices []string) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(choices); i += 2 {
		row := []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(choices[i])}
		if i+1 < len(choices) {
			row = append(row, tgbotapi.NewKeyboardButton(choices[i+1]))
		}
		rows = append(rows, row)
	}
	rows = append(rows, []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton("Cancel")})

	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.OneTimeKeyboard = true
	return markup
}
