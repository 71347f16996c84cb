package menu

import (
	"github.com/go-telegram/bot/models"

	"github.com/edgard/railuxbot/internal/config"
)

// Callback data carried by the inline menu buttons.
const (
	CallbackHelp     = "help"
	CallbackMainMenu = "main_menu"
)

// View is a rendered message body with its inline keyboard. Text is HTML.
type View struct {
	Text   string
	Markup *models.InlineKeyboardMarkup
}

// welcomeKeyboard lists one URL button per row followed by the help button.
func welcomeKeyboard(cfg config.MenuConfig) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(cfg.Links)+1)
	for _, link := range cfg.Links {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: link.Text, URL: link.URL},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: cfg.HelpButton, CallbackData: CallbackHelp},
	})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func helpKeyboard(cfg config.MenuConfig) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: cfg.MainMenuButton, CallbackData: CallbackMainMenu}},
		},
	}
}
