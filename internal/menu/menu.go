// Package menu renders the welcome and help views and moves between them
// when inline buttons are pressed.
package menu

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/railuxbot/internal/config"
)

// Client is the subset of the Bot API the presenter calls.
type Client interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	EditMessageCaption(ctx context.Context, params *bot.EditMessageCaptionParams) (*models.Message, error)
}

var _ Client = (*bot.Bot)(nil)

var errNoOrigin = errors.New("pressed message is not available")

// Origin identifies the message whose button was pressed.
// A zero MessageID means the message cannot be edited or deleted.
type Origin struct {
	ChatID    int64
	MessageID int
}

func (o Origin) known() bool {
	return o.MessageID != 0
}

// Presenter builds the menu views from configuration and delivers them.
type Presenter struct {
	imageURL        string
	welcome         View
	welcomeFromMenu View
	help            View
	logger          *slog.Logger
}

// NewPresenter creates a Presenter. An empty welcome image URL makes the
// welcome view plain text.
func NewPresenter(menuCfg config.MenuConfig, msgs config.MessagesConfig, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	welcomeMarkup := welcomeKeyboard(menuCfg)
	return &Presenter{
		imageURL:        menuCfg.WelcomeImageURL,
		welcome:         View{Text: msgs.Welcome, Markup: welcomeMarkup},
		welcomeFromMenu: View{Text: msgs.WelcomeFromMenu, Markup: welcomeMarkup},
		help:            View{Text: msgs.Help, Markup: helpKeyboard(menuCfg)},
		logger:          logger.With("component", "menu"),
	}
}

// Welcome returns the view sent for /start.
func (p *Presenter) Welcome() View { return p.welcome }

// Help returns the help view.
func (p *Presenter) Help() View { return p.help }

// SendWelcome posts the welcome view to chatID, as a photo when an image is
// configured and as text otherwise or when the photo fails.
func (p *Presenter) SendWelcome(ctx context.Context, c Client, chatID int64) error {
	log := p.logger.With("view", "welcome", "chat_id", chatID)

	var steps []Step
	if p.imageURL != "" {
		steps = append(steps, p.sendPhotoStep("send_photo", c, chatID, p.welcome))
	}
	steps = append(steps, p.sendTextStep("send_text", c, chatID, p.welcome))

	_, err := Deliver(ctx, log, steps...)
	return err
}

// SendHelp posts the help view to chatID.
func (p *Presenter) SendHelp(ctx context.Context, c Client, chatID int64) error {
	log := p.logger.With("view", "help", "chat_id", chatID)
	_, err := Deliver(ctx, log, p.sendTextStep("send_text", c, chatID, p.help))
	return err
}

// ShowHelp answers a press of the help button. It moves the conversation to
// a private chat with userID, falling back to editing the pressed message's
// caption and then to a plain private message.
func (p *Presenter) ShowHelp(ctx context.Context, c Client, origin Origin, userID int64) error {
	log := p.logger.With("view", "help", "chat_id", origin.ChatID, "user_id", userID)

	_, err := Deliver(ctx, log,
		Step{Name: "delete_and_send_private", Do: func(ctx context.Context) error {
			if err := p.deleteOrigin(ctx, c, origin); err != nil {
				return err
			}
			return p.sendText(ctx, c, userID, p.help)
		}},
		p.editCaptionStep(c, origin, p.help),
		p.sendTextStep("send_private", c, userID, p.help),
	)
	return err
}

// ShowMainMenu answers a press of the main menu button.
func (p *Presenter) ShowMainMenu(ctx context.Context, c Client, origin Origin, userID int64) error {
	log := p.logger.With("view", "main_menu", "chat_id", origin.ChatID, "user_id", userID)
	view := p.welcomeFromMenu

	var steps []Step
	if p.imageURL != "" {
		steps = append(steps, Step{Name: "delete_and_send_photo", Do: func(ctx context.Context) error {
			if err := p.deleteOrigin(ctx, c, origin); err != nil {
				return err
			}
			return p.sendPhoto(ctx, c, userID, view)
		}})
	} else {
		steps = append(steps, Step{Name: "edit_text", Do: func(ctx context.Context) error {
			if !origin.known() {
				return errNoOrigin
			}
			_, err := c.EditMessageText(ctx, &bot.EditMessageTextParams{
				ChatID:      origin.ChatID,
				MessageID:   origin.MessageID,
				Text:        view.Text,
				ParseMode:   models.ParseModeHTML,
				ReplyMarkup: view.Markup,
			})
			return err
		}})
	}
	steps = append(steps, p.editCaptionStep(c, origin, view))
	if p.imageURL != "" {
		steps = append(steps, p.sendPhotoStep("send_private_photo", c, userID, view))
	} else {
		steps = append(steps, p.sendTextStep("send_private", c, userID, view))
	}

	_, err := Deliver(ctx, log, steps...)
	return err
}

func (p *Presenter) sendTextStep(name string, c Client, chatID int64, view View) Step {
	return Step{Name: name, Do: func(ctx context.Context) error {
		return p.sendText(ctx, c, chatID, view)
	}}
}

func (p *Presenter) sendPhotoStep(name string, c Client, chatID int64, view View) Step {
	return Step{Name: name, Do: func(ctx context.Context) error {
		return p.sendPhoto(ctx, c, chatID, view)
	}}
}

func (p *Presenter) editCaptionStep(c Client, origin Origin, view View) Step {
	return Step{Name: "edit_caption", Do: func(ctx context.Context) error {
		if !origin.known() {
			return errNoOrigin
		}
		_, err := c.EditMessageCaption(ctx, &bot.EditMessageCaptionParams{
			ChatID:      origin.ChatID,
			MessageID:   origin.MessageID,
			Caption:     view.Text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: view.Markup,
		})
		return err
	}}
}

func (p *Presenter) sendText(ctx context.Context, c Client, chatID int64, view View) error {
	_, err := c.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        view.Text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: view.Markup,
	})
	return err
}

func (p *Presenter) sendPhoto(ctx context.Context, c Client, chatID int64, view View) error {
	_, err := c.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileString{Data: p.imageURL},
		Caption:     view.Text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: view.Markup,
	})
	return err
}

func (p *Presenter) deleteOrigin(ctx context.Context, c Client, origin Origin) error {
	if !origin.known() {
		return errNoOrigin
	}
	_, err := c.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    origin.ChatID,
		MessageID: origin.MessageID,
	})
	return err
}
