package bot

import (
	"context"
	"fmt"
	"strings"

	"jokebox/internal/config"
	"jokebox/internal/dataset"
	"jokebox/internal/models"
	"jokebox/internal/presenter"
	"jokebox/pkg/logger"

	"gopkg.in/telebot.v4"
)

// Bot is the Telegram adapter for the presenter: one command per
// language, each reply replacing nothing but itself.
type Bot struct {
	settings  telebot.Settings
	presenter *presenter.Presenter
	live      *presenter.Live
	source    dataset.Source
	tbot      *telebot.Bot
	cfg       config.BotConfig
}

func New(cfg config.BotConfig, p *presenter.Presenter, live *presenter.Live, source dataset.Source) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	return &Bot{
		cfg:       cfg,
		presenter: p,
		live:      live,
		source:    source,
		settings: telebot.Settings{
			Token:  cfg.Token,
			Poller: &telebot.LongPoller{Timeout: 10},
		},
	}, nil
}

func (b *Bot) Start() (*telebot.Bot, error) {
	tbot, err := telebot.NewBot(b.settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b.tbot = tbot
	b.setupHandlers(tbot)

	go tbot.Start()

	return tbot, nil
}

func (b *Bot) setupHandlers(bot *telebot.Bot) {
	bot.Handle(telebot.OnText, func(c telebot.Context) error {
		logger.Info("Incoming text message",
			logger.Any("user_id", c.Sender().ID),
			logger.String("username", c.Sender().Username),
			logger.String("text", c.Text()),
		)
		return b.handleText(c)
	})

	bot.Handle("/start", b.handleStart)
	bot.Handle("/joke", b.handleJoke)
	bot.Handle("/en", b.handleLanguage(models.LangEnglish))
	bot.Handle("/de", b.handleLanguage(models.LangGerman))
	bot.Handle("/es", b.handleLanguage(models.LangSpanish))
	bot.Handle("/witz", b.handleWitz)
	bot.Handle("/stats", b.handleStats)
	bot.Handle("/help", b.handleHelp)
}

func (b *Bot) handleStart(c telebot.Context) error {
	welcome := "*Welcome to Jokebox!*\n\n" +
		"I'll tell you jokes from the curated datasets.\n\n" +
		"Commands:\n" +
		"- /joke - Random English joke\n" +
		"- /joke <en|de|es> - Joke in that language\n" +
		"- /en /de /es - Shortcuts per language\n" +
		"- /witz - Live German one-liner\n" +
		"- /stats - Dataset statistics\n" +
		"- /help - Show this help message"

	return b.send(c, welcome)
}

func (b *Bot) handleJoke(c telebot.Context) error {
	lang := models.LangEnglish
	if args := c.Args(); len(args) > 0 {
		lang = models.Language(strings.ToLower(args[0]))
	}

	state := b.presenter.Request(context.Background(), lang)
	return b.send(c, formatState(state))
}

func (b *Bot) handleLanguage(lang models.Language) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		state := b.presenter.Request(context.Background(), lang)
		return b.send(c, formatState(state))
	}
}

func (b *Bot) handleWitz(c telebot.Context) error {
	if b.live == nil {
		return b.send(c, presenter.ErrorMessage)
	}
	state := b.live.Request(context.Background())
	return b.send(c, formatState(state))
}

func (b *Bot) handleStats(c telebot.Context) error {
	if b.source == nil {
		return b.send(c, presenter.ErrorMessage)
	}
	return b.send(c, statsText(context.Background(), b.source))
}

func statsText(ctx context.Context, source dataset.Source) string {
	var sb strings.Builder
	sb.WriteString("*Dataset Statistics*\n")
	for _, lang := range models.SupportedLanguages() {
		records, err := source.Load(ctx, lang)
		if err != nil {
			sb.WriteString(fmt.Sprintf("\n%s: -", lang))
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s: %d", lang, len(records)))
	}
	return sb.String()
}

func (b *Bot) handleHelp(c telebot.Context) error {
	help := "*Help*\n\n" +
		"Commands:\n" +
		"- /start - Start the bot\n" +
		"- /joke - Random English joke\n" +
		"- /joke <en|de|es> - Joke in that language\n" +
		"- /en /de /es - Shortcuts per language\n" +
		"- /witz - Live German one-liner\n" +
		"- /stats - Dataset statistics\n" +
		"- /help - Show this help message"

	return b.send(c, help)
}

func (b *Bot) handleText(c telebot.Context) error {
	return b.send(c, "Use /joke to get a joke!")
}

func (b *Bot) send(c telebot.Context, text string) error {
	return c.Send(text, &telebot.SendOptions{
		ParseMode: b.cfg.ParseMode,
	})
}

func formatState(state presenter.DisplayState) string {
	if state.Punchline == "" {
		return state.Setup
	}
	return fmt.Sprintf("%s\n\n_%s_", state.Setup, state.Punchline)
}
