package menu_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/go-telegram/bot"

	"github.com/edgard/railuxbot/internal/config"
	"github.com/edgard/railuxbot/internal/logger"
	"github.com/edgard/railuxbot/internal/menu"
	tt "github.com/edgard/railuxbot/internal/telegram/telegramtest"
)

var errAPI = errors.New("telegram: Bad Request")

func newPresenter(imageURL string) *menu.Presenter {
	cfg := config.MenuConfig{
		WelcomeImageURL: imageURL,
		Links:           config.DefaultMenuLinks,
		HelpButton:      config.DefaultHelpButton,
		MainMenuButton:  config.DefaultMainMenuButton,
	}
	return menu.NewPresenter(cfg, config.DefaultMessages, logger.Discard())
}

func TestWelcomeKeyboard(t *testing.T) {
	t.Parallel()

	view := newPresenter("photo").Welcome()
	rows := view.Markup.InlineKeyboard
	if len(rows) != len(config.DefaultMenuLinks)+1 {
		t.Fatalf("welcome keyboard has %d rows, want %d", len(rows), len(config.DefaultMenuLinks)+1)
	}
	for i, link := range config.DefaultMenuLinks {
		if len(rows[i]) != 1 || rows[i][0].URL != link.URL || rows[i][0].Text != link.Text {
			t.Errorf("row %d = %+v, want URL button %q", i, rows[i], link.Text)
		}
	}
	last := rows[len(rows)-1]
	if len(last) != 1 || last[0].CallbackData != menu.CallbackHelp {
		t.Errorf("last row = %+v, want help callback button", last)
	}

	help := newPresenter("").Help().Markup.InlineKeyboard
	if len(help) != 1 || help[0][0].CallbackData != menu.CallbackMainMenu {
		t.Errorf("help keyboard = %+v, want single main menu button", help)
	}
}

func TestSendWelcome(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		image   string
		fail    func(string, any) error
		want    []string
		wantErr bool
	}{
		{
			name:  "Photo succeeds",
			image: "https://example.com/a.jpg",
			want:  []string{tt.MethodSendPhoto},
		},
		{
			name:  "Photo fails then text",
			image: "https://example.com/a.jpg",
			fail:  tt.FailMethods(errAPI, tt.MethodSendPhoto),
			want:  []string{tt.MethodSendPhoto, tt.MethodSendMessage},
		},
		{
			name: "No image sends text",
			want: []string{tt.MethodSendMessage},
		},
		{
			name:    "Everything fails",
			image:   "https://example.com/a.jpg",
			fail:    tt.FailMethods(errAPI, tt.MethodSendPhoto, tt.MethodSendMessage),
			want:    []string{tt.MethodSendPhoto, tt.MethodSendMessage},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := &tt.Client{Fail: tc.fail}
			err := newPresenter(tc.image).SendWelcome(context.Background(), client, -100)

			if (err != nil) != tc.wantErr {
				t.Fatalf("SendWelcome() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr && !errors.Is(err, menu.ErrUndelivered) {
				t.Errorf("SendWelcome() error = %v, want ErrUndelivered", err)
			}
			if got := client.Methods(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("calls = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSendWelcomeContent(t *testing.T) {
	t.Parallel()

	client := &tt.Client{}
	if err := newPresenter("file-id").SendWelcome(context.Background(), client, 7); err != nil {
		t.Fatalf("SendWelcome() error = %v", err)
	}

	params, ok := client.Calls()[0].Params.(*bot.SendPhotoParams)
	if !ok {
		t.Fatalf("first call params = %T, want *bot.SendPhotoParams", client.Calls()[0].Params)
	}
	if params.Caption != config.DefaultMessages.Welcome {
		t.Errorf("caption = %q, want welcome text", params.Caption)
	}
	if params.ParseMode != "HTML" {
		t.Errorf("parse mode = %q, want HTML", params.ParseMode)
	}
	if params.ChatID != int64(7) {
		t.Errorf("chat id = %v, want 7", params.ChatID)
	}
}

func TestShowHelp(t *testing.T) {
	t.Parallel()

	origin := menu.Origin{ChatID: -100, MessageID: 10}
	const userID = int64(42)

	testCases := []struct {
		name    string
		origin  menu.Origin
		fail    func(string, any) error
		want    []string
		wantErr bool
	}{
		{
			name:   "Delete and private message",
			origin: origin,
			want:   []string{tt.MethodDeleteMessage, tt.MethodSendMessage},
		},
		{
			name:   "Delete fails, caption edited",
			origin: origin,
			fail:   tt.FailMethods(errAPI, tt.MethodDeleteMessage),
			want:   []string{tt.MethodDeleteMessage, tt.MethodEditMessageCaption},
		},
		{
			name:   "Inaccessible message goes straight to private",
			origin: menu.Origin{ChatID: -100},
			want:   []string{tt.MethodSendMessage},
		},
		{
			name:    "All strategies fail",
			origin:  origin,
			fail:    tt.FailMethods(errAPI, tt.MethodDeleteMessage, tt.MethodEditMessageCaption, tt.MethodSendMessage),
			want:    []string{tt.MethodDeleteMessage, tt.MethodEditMessageCaption, tt.MethodSendMessage},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := &tt.Client{Fail: tc.fail}
			err := newPresenter("img").ShowHelp(context.Background(), client, tc.origin, userID)

			if (err != nil) != tc.wantErr {
				t.Fatalf("ShowHelp() error = %v, wantErr %v", err, tc.wantErr)
			}
			if got := client.Methods(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("calls = %v, want %v", got, tc.want)
			}
			for _, call := range client.Calls() {
				if call.Method == tt.MethodSendMessage && call.ChatID != userID {
					t.Errorf("help sent to %v, want private chat %d", call.ChatID, userID)
				}
			}
		})
	}
}

func TestShowHelpPrivateFailureFallsBackToCaption(t *testing.T) {
	t.Parallel()

	sends := 0
	client := &tt.Client{Fail: func(method string, _ any) error {
		if method == tt.MethodSendMessage {
			sends++
			if sends == 1 {
				return errAPI
			}
		}
		return nil
	}}

	origin := menu.Origin{ChatID: -100, MessageID: 10}
	if err := newPresenter("img").ShowHelp(context.Background(), client, origin, 42); err != nil {
		t.Fatalf("ShowHelp() error = %v", err)
	}

	want := []string{tt.MethodDeleteMessage, tt.MethodSendMessage, tt.MethodEditMessageCaption}
	if got := client.Methods(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestShowMainMenu(t *testing.T) {
	t.Parallel()

	origin := menu.Origin{ChatID: -100, MessageID: 10}

	testCases := []struct {
		name  string
		image string
		fail  func(string, any) error
		want  []string
	}{
		{
			name:  "With image, delete and send photo",
			image: "img",
			want:  []string{tt.MethodDeleteMessage, tt.MethodSendPhoto},
		},
		{
			name:  "With image, delete fails, caption edited",
			image: "img",
			fail:  tt.FailMethods(errAPI, tt.MethodDeleteMessage),
			want:  []string{tt.MethodDeleteMessage, tt.MethodEditMessageCaption},
		},
		{
			name:  "With image, everything but photo fails",
			image: "img",
			fail:  tt.FailMethods(errAPI, tt.MethodDeleteMessage, tt.MethodEditMessageCaption),
			want:  []string{tt.MethodDeleteMessage, tt.MethodEditMessageCaption, tt.MethodSendPhoto},
		},
		{
			name: "Without image, edit text",
			want: []string{tt.MethodEditMessageText},
		},
		{
			name: "Without image, edit text fails, caption edited",
			fail: tt.FailMethods(errAPI, tt.MethodEditMessageText),
			want: []string{tt.MethodEditMessageText, tt.MethodEditMessageCaption},
		},
		{
			name: "Without image, both edits fail, text sent",
			fail: tt.FailMethods(errAPI, tt.MethodEditMessageText, tt.MethodEditMessageCaption),
			want: []string{tt.MethodEditMessageText, tt.MethodEditMessageCaption, tt.MethodSendMessage},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := &tt.Client{Fail: tc.fail}
			if err := newPresenter(tc.image).ShowMainMenu(context.Background(), client, origin, 42); err != nil {
				t.Fatalf("ShowMainMenu() error = %v", err)
			}
			if got := client.Methods(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("calls = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestShowMainMenuUsesMenuText(t *testing.T) {
	t.Parallel()

	client := &tt.Client{}
	origin := menu.Origin{ChatID: -100, MessageID: 10}
	if err := newPresenter("").ShowMainMenu(context.Background(), client, origin, 42); err != nil {
		t.Fatalf("ShowMainMenu() error = %v", err)
	}

	params := client.Calls()[0].Params.(*bot.EditMessageTextParams)
	if params.Text != config.DefaultMessages.WelcomeFromMenu {
		t.Errorf("text = %q, want menu welcome text", params.Text)
	}
	if params.MessageID != 10 || params.ChatID != int64(-100) {
		t.Errorf("edited message %v/%d, want -100/10", params.ChatID, params.MessageID)
	}
}

func TestDeliver(t *testing.T) {
	t.Parallel()

	var ran []string
	step := func(name string, err error) menu.Step {
		return menu.Step{Name: name, Do: func(context.Context) error {
			ran = append(ran, name)
			return err
		}}
	}

	name, err := menu.Deliver(context.Background(), logger.Discard(),
		step("first", errAPI),
		step("second", nil),
		step("third", nil),
	)
	if err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if name != "second" {
		t.Errorf("Deliver() = %q, want second", name)
	}
	if want := []string{"first", "second"}; !reflect.DeepEqual(ran, want) {
		t.Errorf("ran = %v, want %v", ran, want)
	}
}

func TestDeliverAllFail(t *testing.T) {
	t.Parallel()

	errOther := errors.New("other")
	_, err := menu.Deliver(context.Background(), logger.Discard(),
		menu.Step{Name: "a", Do: func(context.Context) error { return errAPI }},
		menu.Step{Name: "b", Do: func(context.Context) error { return errOther }},
	)
	if !errors.Is(err, menu.ErrUndelivered) {
		t.Fatalf("Deliver() error = %v, want ErrUndelivered", err)
	}
	if !errors.Is(err, errAPI) || !errors.Is(err, errOther) {
		t.Errorf("Deliver() error = %v, want both step errors", err)
	}

	if _, err := menu.Deliver(context.Background(), logger.Discard()); !errors.Is(err, menu.ErrUndelivered) {
		t.Errorf("Deliver() without steps error = %v, want ErrUndelivered", err)
	}
}

func TestDeliverCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := menu.Deliver(ctx, logger.Discard(), menu.Step{Name: "a", Do: func(context.Context) error {
		called = true
		return nil
	}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Deliver() error = %v, want context.Canceled", err)
	}
	if called {
		t.Error("step ran after cancellation")
	}
}
