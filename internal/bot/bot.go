// Package bot is the Telegram front end: it collects listing inputs
// conversationally, drives the listing API and renders the result as
// formatted text.
package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tezgah/internal/bot/session"
	"tezgah/internal/domain"
	"tezgah/internal/infra"
	"tezgah/internal/listing"
)

const (
	runLimitPerMinute = 20
	updateTimeoutSecs = 30
)

// Lister creates a listing from a complete draft. The HTTP client satisfies
// it in production; mock mode and tests substitute their own.
type Lister interface {
	CreateListing(ctx context.Context, req domain.ListingRequest) (*domain.ListingResult, error)
}

type reply struct {
	text string
	html bool
}

// Options wires the bot's collaborators.
type Options struct {
	API      *tgbotapi.BotAPI
	Store    *session.Store
	Client   Lister
	MockMode bool
	Logger   *infra.Logger
}

type Bot struct {
	api      *tgbotapi.BotAPI
	store    *session.Store
	client   Lister
	mockMode bool
	logger   *infra.Logger
	limiter  *userLimiter
}

func New(opts Options) *Bot {
	return &Bot{
		api:      opts.API,
		store:    opts.Store,
		client:   opts.Client,
		mockMode: opts.MockMode,
		logger:   opts.Logger,
		limiter:  newUserLimiter(runLimitPerMinute, time.Minute),
	}
}

// Run consumes the update stream until the context is canceled.
func (b *Bot) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = updateTimeoutSecs
	updates := b.api.GetUpdatesChan(cfg)

	b.logger.Info().Msg("telegram bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	userID := msg.From.ID

	if len(msg.Photo) > 0 {
		b.send(msg.Chat.ID, reply{text: "MVP suruemunde lutfen gorsel URL'sini metin olarak yapistirin."})
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg, userID)
		return
	}
	b.handleText(msg, userID)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, userID int64) {
	args := strings.Fields(msg.CommandArguments())

	switch msg.Command() {
	case "start":
		b.send(msg.Chat.ID, reply{text: strings.Join([]string{
			"Tezgaha hosgeldiniz!",
			"",
			"/new - Yeni ilan oturumu baslat",
			"/platform <trendyol|hepsiburada|etsy|generic> - Platform sec",
			"/lang <tr|en> - Dil sec",
			"/images - Gorsel URL'lerini gonder (1-5 adet)",
			"/notes - Urun notlarini gonder",
			"/ops <caption|upscale|bg_remove> - Gorsel islemleri",
			"/run - Ilan olustur",
			"/reset - Oturumu sifirla",
		}, "\n")})

	case "new":
		b.store.Reset(userID)
		if msg.From.LanguageCode != "" {
			b.store.SetLang(userID, detectLanguage(msg.From.LanguageCode))
		}
		b.send(msg.Chat.ID, reply{text: "Yeni oturum baslatildi. /platform ve /lang ayarlayin, sonra /images ve /notes ile devam edin."})

	case "reset":
		b.store.Reset(userID)
		b.send(msg.Chat.ID, reply{text: "Oturum sifirlandi."})

	case "platform":
		if len(args) == 0 || !domain.Platform(args[0]).Valid() {
			b.send(msg.Chat.ID, reply{text: "Kullanim: /platform trendyol|hepsiburada|etsy|generic"})
			return
		}
		b.store.SetPlatform(userID, domain.Platform(args[0]))
		b.send(msg.Chat.ID, reply{text: "Platform ayarlandi: " + args[0]})

	case "lang":
		if len(args) == 0 || !domain.Language(args[0]).Valid() {
			b.send(msg.Chat.ID, reply{text: "Kullanim: /lang tr|en"})
			return
		}
		b.store.SetLang(userID, domain.Language(args[0]))
		b.send(msg.Chat.ID, reply{text: "Dil ayarlandi: " + args[0]})

	case "ops":
		ops, ok := parseOps(strings.Join(args, " "))
		if !ok {
			b.send(msg.Chat.ID, reply{text: "Kullanim: /ops caption|upscale|bg_remove (bosluk veya virgul ile ayirin)"})
			return
		}
		sess := b.store.SetImageOps(userID, ops)
		b.send(msg.Chat.ID, reply{text: "Gorsel islemleri ayarlandi: " + joinOps(sess.ImageOps)})

	case "images":
		b.store.SetAwaiting(userID, session.AwaitingImages)
		b.send(msg.Chat.ID, reply{text: "1-5 arasi gorsel URL'si gonderin (bosluk/virgul/satir ile ayirin)."})

	case "notes":
		b.store.SetAwaiting(userID, session.AwaitingNotes)
		b.send(msg.Chat.ID, reply{text: "Urun notlarini duz metin olarak gonderin."})

	case "run":
		b.handleRun(ctx, msg.Chat.ID, userID)

	default:
		b.send(msg.Chat.ID, reply{text: "Bilinmeyen komut. Komut listesi icin /start yazin."})
	}
}

func (b *Bot) handleRun(ctx context.Context, chatID, userID int64) {
	if !b.limiter.Allow(userID) {
		b.send(chatID, reply{text: "Istek limiti asildi. Lutfen bir dakika bekleyip tekrar deneyin."})
		return
	}

	req, errText := b.buildRequest(userID)
	if errText != "" {
		b.send(chatID, reply{text: errText})
		return
	}

	b.send(chatID, reply{text: "Ilan olusturuluyor, lutfen bekleyin..."})

	var result *domain.ListingResult
	var err error
	if b.mockMode {
		result = listing.Mock(req)
	} else {
		result, err = b.client.CreateListing(ctx, req)
	}
	if err != nil {
		b.logger.Warn().Err(err).Int64("user_id", userID).Msg("listing run failed")
		b.send(chatID, reply{text: "Ilan olusturma basarisiz oldu. Lutfen kisa bir sure sonra tekrar deneyin."})
		return
	}

	b.send(chatID, reply{text: formatListing(result), html: true})
}

func (b *Bot) handleText(msg *tgbotapi.Message, userID int64) {
	sess := b.store.Get(userID)

	switch sess.Awaiting {
	case session.AwaitingImages:
		urls := extractImageURLs(msg.Text)
		if len(urls) == 0 {
			b.send(msg.Chat.ID, reply{text: "Gecerli gorsel URL'si bulunamadi. Lutfen http/https ile baslayan URL gonderin."})
			return
		}
		updated := b.store.AddImages(userID, urls)
		b.store.SetAwaiting(userID, session.AwaitingNone)
		b.send(msg.Chat.ID, reply{text: strconv.Itoa(len(updated.Images)) + " gorsel kaydedildi. Hazir oldugunuzda /run yazin."})

	case session.AwaitingNotes:
		b.store.SetNotes(userID, strings.TrimSpace(msg.Text))
		b.store.SetAwaiting(userID, session.AwaitingNone)
		b.send(msg.Chat.ID, reply{text: "Notlar kaydedildi. Hazir oldugunuzda /run yazin."})

	default:
		b.send(msg.Chat.ID, reply{text: "Baslamak icin /new yazin veya /images ve /notes ile devam edin."})
	}
}

// buildRequest assembles the draft into a request, returning a user-facing
// error message when required inputs are missing.
func (b *Bot) buildRequest(userID int64) (domain.ListingRequest, string) {
	sess := b.store.Get(userID)

	if len(sess.Images) < 1 || len(sess.Images) > 5 {
		return domain.ListingRequest{}, "Lutfen once 1-5 arasi gorsel URL'si ekleyin (/images)."
	}
	if strings.TrimSpace(sess.Notes) == "" {
		return domain.ListingRequest{}, "Lutfen once urun notlarini girin (/notes)."
	}

	return domain.ListingRequest{
		Images:   sess.Images,
		Notes:    sess.Notes,
		Platform: sess.Platform,
		Lang:     sess.Lang,
		ImageOps: sess.ImageOps,
	}, ""
}

func (b *Bot) send(chatID int64, r reply) {
	msg := tgbotapi.NewMessage(chatID, r.text)
	if r.html {
		msg.ParseMode = tgbotapi.ModeHTML
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send message")
	}
}

func parseOps(raw string) ([]domain.ImageOp, bool) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, false
	}
	ops := make([]domain.ImageOp, 0, len(fields))
	for _, field := range fields {
		op := domain.ImageOp(field)
		if !op.Valid() {
			return nil, false
		}
		ops = append(ops, op)
	}
	return ops, true
}

func joinOps(ops []domain.ImageOp) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = string(op)
	}
	return strings.Join(parts, ", ")
}
