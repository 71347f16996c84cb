package telegram

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/railuxbot/internal/bot/handlers"
	"github.com/edgard/railuxbot/internal/config"
	"github.com/edgard/railuxbot/internal/logger"
)

type fakeUpdater struct {
	mu          sync.Mutex
	calls       []string
	deleteErr   error
	setParams   *bot.SetWebhookParams
	webhookHits int
}

func (f *fakeUpdater) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeUpdater) Start(ctx context.Context) {
	f.record("start")
	<-ctx.Done()
}

func (f *fakeUpdater) StartWebhook(ctx context.Context) {
	f.record("start_webhook")
	<-ctx.Done()
}

func (f *fakeUpdater) WebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.webhookHits++
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}
}

func (f *fakeUpdater) SetWebhook(_ context.Context, params *bot.SetWebhookParams) (bool, error) {
	f.record("set_webhook")
	f.mu.Lock()
	f.setParams = params
	f.mu.Unlock()
	return true, nil
}

func (f *fakeUpdater) DeleteWebhook(context.Context, *bot.DeleteWebhookParams) (bool, error) {
	f.record("delete_webhook")
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	return true, nil
}

func (f *fakeUpdater) hits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.webhookHits
}

func (f *fakeUpdater) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func TestReceiverPolling(t *testing.T) {
	t.Parallel()

	updater := &fakeUpdater{}
	r := NewReceiver(updater, config.WebhookConfig{Path: "/webhook", Port: 8000}, logger.Discard())
	if r.Mode() != "polling" {
		t.Fatalf("Mode() = %q, want polling", r.Mode())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := updater.Calls(), []string{"delete_webhook", "start"}; !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestReceiverPollingDeleteWebhookFails(t *testing.T) {
	t.Parallel()

	updater := &fakeUpdater{deleteErr: errors.New("unauthorized")}
	r := NewReceiver(updater, config.WebhookConfig{Path: "/webhook", Port: 8000}, logger.Discard())

	if err := r.Run(context.Background()); err == nil {
		t.Fatal("Run() error = nil, want delete webhook failure")
	}
	if got, want := updater.Calls(), []string{"delete_webhook"}; !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestReceiverWebhookRegistration(t *testing.T) {
	t.Parallel()

	updater := &fakeUpdater{}
	cfg := config.WebhookConfig{
		URL:         "https://bot.example.com/",
		Path:        "/webhook",
		Port:        0,
		SecretToken: "s3cret",
	}
	r := NewReceiver(updater, cfg, logger.Discard())
	if r.Mode() != "webhook" {
		t.Fatalf("Mode() = %q, want webhook", r.Mode())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	calls := updater.Calls()
	if len(calls) == 0 || calls[0] != "set_webhook" {
		t.Fatalf("calls = %v, want set_webhook first", calls)
	}
	if updater.setParams.URL != "https://bot.example.com/webhook" {
		t.Errorf("webhook URL = %q, want https://bot.example.com/webhook", updater.setParams.URL)
	}
	if updater.setParams.SecretToken != "s3cret" {
		t.Errorf("secret token = %q, want s3cret", updater.setParams.SecretToken)
	}
}

func TestReceiverHandler(t *testing.T) {
	t.Parallel()

	updater := &fakeUpdater{}
	r := NewReceiver(updater, config.WebhookConfig{URL: "https://x", Path: "/webhook", Port: 8000}, logger.Discard())
	server := httptest.NewServer(r.Handler())
	defer server.Close()

	resp, err := http.Post(server.URL+"/webhook", "application/json", strings.NewReader(`{"update_id":1}`))
	if err != nil {
		t.Fatalf("POST /webhook error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("POST /webhook status = %d, want 200", resp.StatusCode)
	}
	if hits := updater.hits(); hits != 1 {
		t.Errorf("webhook handler hit %d times, want 1", hits)
	}

	resp, err = http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("GET /healthz = %d %q, want 200 ok", resp.StatusCode, body)
	}

	resp, err = http.Get(server.URL + "/other")
	if err != nil {
		t.Fatalf("GET /other error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /other status = %d, want 404", resp.StatusCode)
	}
}

type fakeRegistrar struct {
	patterns []string
}

func (f *fakeRegistrar) RegisterHandler(_ bot.HandlerType, pattern string, _ bot.MatchType, _ bot.HandlerFunc, _ ...bot.Middleware) string {
	f.patterns = append(f.patterns, pattern)
	return pattern
}

func (f *fakeRegistrar) RegisterHandlerMatchFunc(bot.MatchFunc, bot.HandlerFunc, ...bot.Middleware) string {
	f.patterns = append(f.patterns, "match_func")
	return "match_func"
}

type fakePublisher struct {
	params *bot.SetMyCommandsParams
	err    error
}

func (f *fakePublisher) SetMyCommands(_ context.Context, params *bot.SetMyCommandsParams) (bool, error) {
	f.params = params
	return f.err == nil, f.err
}

func noop(context.Context, *bot.Bot, *models.Update) {}

func testHandlers() map[string]handlers.RegisteredHandler {
	return map[string]handlers.RegisteredHandler{
		"/start":   {Pattern: "start", Handler: noop, Description: "Menu"},
		"/help":    {Pattern: "help", Handler: noop, Description: "Help"},
		"/rek":     {Pattern: "rek", Handler: noop},
		"callback": {Pattern: "", Handler: noop, Description: "ignored"},
		"/broken":  {Pattern: "broken"},
	}
}

func TestRegisterHandlers(t *testing.T) {
	t.Parallel()

	registrar := &fakeRegistrar{}
	if err := RegisterHandlers(registrar, logger.Discard(), testHandlers()); err != nil {
		t.Fatalf("RegisterHandlers() error = %v", err)
	}
	if len(registrar.patterns) != 4 {
		t.Errorf("registered %d handlers, want 4 (nil handler skipped)", len(registrar.patterns))
	}

	if err := RegisterHandlers(nil, logger.Discard(), testHandlers()); err == nil {
		t.Error("RegisterHandlers(nil) error = nil, want error")
	}
}

func TestApplyMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) bot.Middleware {
		return func(next bot.HandlerFunc) bot.HandlerFunc {
			return func(ctx context.Context, b *bot.Bot, u *models.Update) {
				order = append(order, name)
				next(ctx, b, u)
			}
		}
	}
	h := applyMiddleware(func(context.Context, *bot.Bot, *models.Update) {
		order = append(order, "handler")
	}, []bot.Middleware{mw("outer"), mw("inner")})

	h(context.Background(), nil, &models.Update{})

	if want := []string{"outer", "inner", "handler"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestPublishCommands(t *testing.T) {
	t.Parallel()

	publisher := &fakePublisher{}
	if err := PublishCommands(context.Background(), publisher, testHandlers()); err != nil {
		t.Fatalf("PublishCommands() error = %v", err)
	}
	want := []models.BotCommand{
		{Command: "help", Description: "Help"},
		{Command: "start", Description: "Menu"},
	}
	if !reflect.DeepEqual(publisher.params.Commands, want) {
		t.Errorf("commands = %+v, want %+v", publisher.params.Commands, want)
	}

	failing := &fakePublisher{err: errors.New("flood")}
	if err := PublishCommands(context.Background(), failing, testHandlers()); err == nil {
		t.Error("PublishCommands() error = nil, want error")
	}
}

func TestNewTelegramBotEmptyToken(t *testing.T) {
	t.Parallel()

	if _, err := NewTelegramBot("", logger.Discard()); err == nil {
		t.Error("NewTelegramBot(\"\") error = nil, want error")
	}
}
