package config

import "time"

// Default values for configuration
const (
	// Log defaults
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	// Transport defaults
	DefaultWebhookPath = "/webhook"
	DefaultWebhookPort = 8000

	// Registry defaults
	DefaultRegistryPath = "chats.json"

	// Broadcast defaults
	DefaultBroadcastCommand = "rek"
	DefaultBroadcastDelay   = 500 * time.Millisecond // Pause after every send to stay under Telegram limits

	// Menu defaults
	DefaultWelcomeImageURL = "https://i.ibb.co/tM36RH31/photo-2025-08-22-11-07-10.jpg"
	DefaultHelpButton      = "❓ Справка"
	DefaultMainMenuButton  = "🏠 Главное меню"

	// Scheduled task names
	TaskChatReport = "chat_report"
)

// DefaultMenuLinks lists the welcome menu URL buttons in display order.
var DefaultMenuLinks = []LinkConfig{
	{Text: "💎 Чат услуг рай люкс", URL: "https://t.me/+YCAX1V58SS9mNzAy"},
	{Text: "⭐ Отзывы рай люкс", URL: "https://t.me/+kWkpsyHVbZQ2OWMy"},
	{Text: "📢 Рай люкс канал", URL: "https://t.me/+UXs_4HwamkljYjI6"},
	{Text: "📣 Реклама рай люкс", URL: "https://t.me/+kG38zOCy3x82YzAy"},
	{Text: "💬 Рай люкс общения", URL: "https://t.me/+648n00MLjswyMWUy"},
}

// DefaultMessages holds the user-facing texts. Welcome and help texts are HTML.
var DefaultMessages = MessagesConfig{
	Welcome: "🌟 Всем привет!  \n\n" +
		"Наш новый чат услуг приветствует тебя! " +
		"Мы рады будем, если ты будешь находиться в нём.\n\n" +
		"✨ Выбери нужный раздел:\n\n" +
		"💡 <i>Введи /help для получения дополнительной информации</i>",
	WelcomeFromMenu: "🌟 Всем привет! 🌟\n\n" +
		"Наш новый чат услуг приветствует тебя! " +
		"Мы рады будем, если ты будешь находиться в нём.\n\n" +
		"✨ Выбери нужный раздел:\n\n" +
		"💡 <i>Введи /help для получения дополнительной информации</i>",
	Help: "🤖 <b>Рай Люкс Бот</b>\n\n" +
		"📋 <b>Доступные команды:</b>\n" +
		"• /start - Главное меню с ссылками\n" +
		"• /help - Справка\n\n" +
		"🔗 <b>Наши ресурсы:</b>\n" +
		"• Чат услуг - основной чат для заказов\n" +
		"• Отзывы - отзывы клиентов о наших услугах\n" +
		"• Канал - официальные новости и объявления\n" +
		"• Реклама - размещение рекламы\n" +
		"• Общение - неформальное общение\n\n" +
		"💡 Нажмите на любую кнопку в главном меню для перехода!",
	BroadcastUsage:    "📢 Пример использования: /rek Привет, всем!",
	BroadcastNoChats:  "❌ Бот не состоит в группах или каналах, куда можно отправить сообщение.",
	BroadcastDone:     "📢 Рассылка выполнена: '%s'\n\nСообщение отправлено в следующие чаты:\n%s",
	BroadcastNoneSent: "❌ Не удалось отправить сообщение ни в один чат.",
	BroadcastError:    "❌ Ошибка при выполнении рассылки: %s",
	ChatPlaceholder:   "Чат %d",
	ChatReportHeader:  "📊 Зарегистрированные чаты (%d):\n",
	ChatReportEmpty:   "📊 Бот пока не состоит ни в одной группе или канале.",
	CommandStartDesc:  "Главное меню с ссылками",
	CommandHelpDesc:   "Справка",
}

// DefaultSchedulerTasks registers known tasks in a disabled state.
var DefaultSchedulerTasks = map[string]TaskConfig{
	TaskChatReport: {Enabled: false, Schedule: "0 0 9 * * *"},
}

// defaultConfig returns a Config populated with default values. Menu links are
// filled in after unmarshalling so a configured list replaces them instead of
// being merged element by element.
func defaultConfig() *Config {
	tasks := make(map[string]TaskConfig, len(DefaultSchedulerTasks))
	for name, task := range DefaultSchedulerTasks {
		tasks[name] = task
	}

	return &Config{
		Webhook: WebhookConfig{
			Path: DefaultWebhookPath,
			Port: DefaultWebhookPort,
		},
		Registry: RegistryConfig{
			Path: DefaultRegistryPath,
		},
		Broadcast: BroadcastConfig{
			Command: DefaultBroadcastCommand,
			Delay:   DefaultBroadcastDelay,
		},
		Menu: MenuConfig{
			WelcomeImageURL: DefaultWelcomeImageURL,
			HelpButton:      DefaultHelpButton,
			MainMenuButton:  DefaultMainMenuButton,
		},
		Messages: DefaultMessages,
		Logger: LoggerConfig{
			Level: DefaultLogLevel,
			JSON:  DefaultLogJSON,
		},
		Scheduler: SchedulerConfig{
			Tasks: tasks,
		},
	}
}
