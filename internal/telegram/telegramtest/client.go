// Package telegramtest provides an in-memory Bot API client for tests.
package telegramtest

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Method names recorded by Client.
const (
	MethodSendMessage         = "sendMessage"
	MethodSendPhoto           = "sendPhoto"
	MethodDeleteMessage       = "deleteMessage"
	MethodEditMessageText     = "editMessageText"
	MethodEditMessageCaption  = "editMessageCaption"
	MethodAnswerCallbackQuery = "answerCallbackQuery"
)

// Call is one recorded Bot API request.
type Call struct {
	Method string
	ChatID any
	Params any
	// CtxErr is the request context's error at the time of the call.
	CtxErr error
}

// Client records every request and fails the ones selected by Fail.
type Client struct {
	// Fail returns the error for a request, or nil to let it succeed.
	Fail func(method string, chatID any) error

	mu     sync.Mutex
	calls  []Call
	nextID int
}

// Calls returns a copy of the recorded requests in order.
func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// Methods returns the recorded method names in order.
func (c *Client) Methods() []string {
	calls := c.Calls()
	methods := make([]string, len(calls))
	for i, call := range calls {
		methods[i] = call.Method
	}
	return methods
}

// FailMethods returns a Fail function that rejects every call to the given methods.
func FailMethods(err error, methods ...string) func(string, any) error {
	set := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		set[m] = struct{}{}
	}
	return func(method string, _ any) error {
		if _, ok := set[method]; ok {
			return err
		}
		return nil
	}
}

func (c *Client) record(ctx context.Context, method string, chatID any, params any) (int, error) {
	c.mu.Lock()
	c.calls = append(c.calls, Call{Method: method, ChatID: chatID, Params: params, CtxErr: ctx.Err()})
	c.nextID++
	id := c.nextID
	fail := c.Fail
	c.mu.Unlock()

	if fail != nil {
		if err := fail(method, chatID); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func message(id int, chatID any) *models.Message {
	msg := &models.Message{ID: id}
	if v, ok := chatID.(int64); ok {
		msg.Chat.ID = v
	}
	return msg
}

func (c *Client) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	id, err := c.record(ctx, MethodSendMessage, params.ChatID, params)
	if err != nil {
		return nil, err
	}
	return message(id, params.ChatID), nil
}

func (c *Client) SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error) {
	id, err := c.record(ctx, MethodSendPhoto, params.ChatID, params)
	if err != nil {
		return nil, err
	}
	return message(id, params.ChatID), nil
}

func (c *Client) DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error) {
	if _, err := c.record(ctx, MethodDeleteMessage, params.ChatID, params); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error) {
	if _, err := c.record(ctx, MethodEditMessageText, params.ChatID, params); err != nil {
		return nil, err
	}
	return message(params.MessageID, params.ChatID), nil
}

func (c *Client) EditMessageCaption(ctx context.Context, params *bot.EditMessageCaptionParams) (*models.Message, error) {
	if _, err := c.record(ctx, MethodEditMessageCaption, params.ChatID, params); err != nil {
		return nil, err
	}
	return message(params.MessageID, params.ChatID), nil
}

func (c *Client) AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	if _, err := c.record(ctx, MethodAnswerCallbackQuery, nil, params); err != nil {
		return false, err
	}
	return true, nil
}
