package telegram

import (
	"context"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/palabras-bot/internal/domain/entities"
	"github.com/aliskhannn/palabras-bot/internal/repository"
	"github.com/aliskhannn/palabras-bot/internal/service"
	"github.com/aliskhannn/palabras-bot/internal/storage"
)

const testUser int64 = 100

// fakeBot records everything the handler sends.
type fakeBot struct {
	mu       sync.Mutex
	nextID   int
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	updates  chan tgbotapi.Update
}

func newFakeBot() *fakeBot {
	return &fakeBot{updates: make(chan tgbotapi.Update, 8)}
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.sent = append(b.sent, c)
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sent = nil
	b.requests = nil
}

func (b *fakeBot) texts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, 0, len(b.sent))
	for _, c := range b.sent {
		out = append(out, chattableText(c))
	}
	return out
}

func (b *fakeBot) last() tgbotapi.Chattable {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.sent) == 0 {
		return nil
	}
	return b.sent[len(b.sent)-1]
}

func (b *fakeBot) lastText() string {
	return chattableText(b.last())
}

func (b *fakeBot) countRequests(match func(tgbotapi.Chattable) bool) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, c := range b.requests {
		if match(c) {
			n++
		}
	}
	return n
}

func chattableText(c tgbotapi.Chattable) string {
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		return m.Text
	case tgbotapi.EditMessageTextConfig:
		return m.Text
	case tgbotapi.DocumentConfig:
		return m.Caption
	default:
		return ""
	}
}

type countingProvider struct {
	mu    sync.Mutex
	calls int
}

func (p *countingProvider) Search(context.Context, string) ([]entities.Gif, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++
	return []entities.Gif{{ID: "1", URL: "https://media.example/1.gif"}}, nil
}

func (p *countingProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.calls
}

func isMarkupEdit(c tgbotapi.Chattable) bool {
	_, ok := c.(tgbotapi.EditMessageReplyMarkupConfig)
	return ok
}

type handlerEnv struct {
	bot     *fakeBot
	game    *service.GameService
	handler *Handler
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	return newHandlerEnvWithHints(t, nil)
}

func newHandlerEnvWithHints(t *testing.T, provider service.HintProvider) *handlerEnv {
	t.Helper()

	catalog := []entities.WordPair{
		{Number: 1, English: "dog", Spanish: "perro"},
		{Number: 2, English: "cat", Spanish: "gato"},
		{Number: 3, English: "house", Spanish: "casa"},
		{Number: 4, English: "water", Spanish: "agua"},
	}

	cfg := service.DefaultGameConfig()
	cfg.MultipleChoiceRatio = 0
	cfg.HintRatio = 0

	logger := zap.NewNop()
	rnd := service.NewRandom(1)
	store := repository.NewProgressStore(storage.NewMemoryStore(), logger)
	game := service.NewGameService(catalog, store, rnd, cfg, logger)

	bot := newFakeBot()
	h := NewHandler(
		bot,
		logger,
		game,
		service.NewHintService(provider, service.NewHintTracker(), rnd, logger),
		service.NewStudySheetExporter(),
		storage.NewPromptStorage(),
		NewPacer(0),
		entities.DefaultMilestones(),
	)

	return &handlerEnv{bot: bot, game: game, handler: h}
}

func (e *handlerEnv) command(text string) {
	name := strings.Fields(text)[0]
	e.handler.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 1,
			From:      &tgbotapi.User{ID: testUser},
			Chat:      &tgbotapi.Chat{ID: testUser},
			Text:      text,
			Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
		},
	})
}

func (e *handlerEnv) text(text string) {
	e.handler.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 1,
			From:      &tgbotapi.User{ID: testUser},
			Chat:      &tgbotapi.Chat{ID: testUser},
			Text:      text,
		},
	})
}

func (e *handlerEnv) callbackOn(msg *tgbotapi.Message, data string) {
	msg.Chat = &tgbotapi.Chat{ID: testUser}
	e.handler.handleUpdate(context.Background(), tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb",
			From:    &tgbotapi.User{ID: testUser},
			Message: msg,
			Data:    data,
		},
	})
}

func (e *handlerEnv) callback(data string) {
	e.callbackOn(&tgbotapi.Message{MessageID: 99}, data)
}

func (e *handlerEnv) answerCurrent(t *testing.T) {
	t.Helper()

	q, ok := e.game.CurrentQuestion(testUser)
	require.True(t, ok)
	e.text(q.Mode.Expected(q.Word))
}

func TestHandler_Start(t *testing.T) {
	env := newHandlerEnv(t)

	env.command("/start")

	texts := env.bot.texts()
	require.Len(t, texts, 2)
	assert.Equal(t, welcomeMessage(), texts[0])
	assert.Contains(t, texts[1], "Elige un modo")

	msg, ok := env.bot.last().(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, tgbotapi.ModeMarkdownV2, msg.ParseMode)

	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	assert.Equal(t, buildModeCallback(entities.ModeSpanishToEnglish), *kb.InlineKeyboard[0][0].CallbackData)
}

func TestHandler_UnknownCommand(t *testing.T) {
	env := newHandlerEnv(t)

	env.command("/dance")

	assert.Equal(t, []string{msgUnknownCommand}, env.bot.texts())
}

func TestHandler_TextWithoutGame(t *testing.T) {
	env := newHandlerEnv(t)

	env.text("perro")

	texts := env.bot.texts()
	require.Len(t, texts, 2)
	assert.Equal(t, msgChooseModeFirst, texts[0])
	assert.Contains(t, texts[1], "Elige un modo")
}

func TestHandler_PlayRound(t *testing.T) {
	env := newHandlerEnv(t)

	env.callback(buildModeCallback(entities.ModeSpanishToEnglish))

	require.Len(t, env.bot.texts(), 1)
	assert.Contains(t, env.bot.lastText(), "Palabra 1 de 4")

	q, ok := env.bot.last().(tgbotapi.MessageConfig)
	require.True(t, ok)
	kb, ok := q.ReplyMarkup.(*tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok, "skip button expected")
	assert.Equal(t, buildSkipCallback(0), *kb.InlineKeyboard[0][0].CallbackData)

	env.bot.reset()
	env.answerCurrent(t)

	texts := env.bot.texts()
	require.Len(t, texts, 2, "feedback and next word")
	assert.Equal(t, md(msgCorrect), texts[0])
	assert.Contains(t, texts[1], "Palabra 2 de 4")
	assert.Equal(t, 1, env.bot.countRequests(isMarkupEdit), "old skip button removed")

	state := env.game.State(testUser)
	assert.Equal(t, 1, state.Score.Correct)
	assert.Equal(t, 1, state.Score.Cursor)
}

func TestHandler_WrongAnswer(t *testing.T) {
	env := newHandlerEnv(t)
	env.callback(buildModeCallback(entities.ModeSpanishToEnglish))

	q, ok := env.game.CurrentQuestion(testUser)
	require.True(t, ok)

	env.bot.reset()
	env.text("zzz")

	texts := env.bot.texts()
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "Incorrecto")
	assert.Contains(t, texts[0], bold(q.Word.English))
	assert.Equal(t, 1, env.game.State(testUser).Score.Wrong)
}

func TestHandler_StaleSkip(t *testing.T) {
	env := newHandlerEnv(t)
	env.callback(buildModeCallback(entities.ModeSpanishToEnglish))
	env.answerCurrent(t)

	env.bot.reset()
	env.callback(buildSkipCallback(0))

	assert.Equal(t, []string{msgStaleQuestion}, env.bot.texts())
	assert.Equal(t, 0, env.game.State(testUser).Score.Skipped)
}

func TestHandler_Skip(t *testing.T) {
	env := newHandlerEnv(t)
	env.callback(buildModeCallback(entities.ModeEnglishToSpanish))

	env.bot.reset()
	env.command("/skip")

	texts := env.bot.texts()
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "Saltada")
	assert.Contains(t, texts[1], "Palabra 2 de 4")

	state := env.game.State(testUser)
	assert.Equal(t, 1, state.Score.Skipped)
	assert.Equal(t, service.DefaultSkipLimit-1, state.Score.SkipsLeft)
}

func TestHandler_FinishPass(t *testing.T) {
	env := newHandlerEnv(t)
	env.callback(buildModeCallback(entities.ModeSpanishToEnglish))

	for range 4 {
		env.answerCurrent(t)
	}

	last, ok := env.bot.last().(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, last.Text, "Ronda completada")
	assert.Contains(t, last.Text, "¡Excelente trabajo\\!")

	state := env.game.State(testUser)
	assert.Equal(t, service.StatusFinished, state.Status)
	assert.Equal(t, 4, state.Score.LearnedWords)
}

func TestHandler_MissedAndExport(t *testing.T) {
	env := newHandlerEnv(t)

	env.command("/missed")
	assert.Equal(t, []string{msgNoMissedWords}, env.bot.texts())

	env.callback(buildModeCallback(entities.ModeSpanishToEnglish))
	env.text("zzz")

	env.bot.reset()
	env.command("/missed")
	assert.Contains(t, env.bot.lastText(), "Palabras para estudiar")
	assert.Contains(t, env.bot.lastText(), "zzz")

	env.bot.reset()
	env.command("/export")

	doc, ok := env.bot.last().(tgbotapi.DocumentConfig)
	require.True(t, ok)
	assert.Equal(t, msgExportCaption+" (1)", doc.Caption)

	file, ok := doc.File.(tgbotapi.FileBytes)
	require.True(t, ok)
	assert.Contains(t, string(file.Bytes), "zzz")
}

func TestHandler_ExportWithoutMissed(t *testing.T) {
	env := newHandlerEnv(t)

	env.command("/export")

	assert.Equal(t, []string{msgNothingToExport}, env.bot.texts())
}

func TestHandler_ClearMissed(t *testing.T) {
	env := newHandlerEnv(t)
	env.callback(buildModeCallback(entities.ModeSpanishToEnglish))
	env.text("zzz")

	env.bot.reset()
	env.callback(buildMissedClearCallback(entities.ModeSpanishToEnglish))
	edit, ok := env.bot.last().(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, 99, edit.MessageID)
	assert.Contains(t, edit.Text, "Español → Inglés")
	require.NotNil(t, edit.ReplyMarkup)
	assert.Equal(t,
		buildMissedClearCallback(entities.ModeSpanishToEnglish, confirmYes),
		*edit.ReplyMarkup.InlineKeyboard[0][0].CallbackData,
	)

	env.callback(buildMissedClearCallback(entities.ModeSpanishToEnglish, confirmNo))
	assert.Equal(t, md(msgNoChanges), env.bot.lastText())

	env.callback(buildMissedClearCallback(entities.ModeSpanishToEnglish, confirmYes))
	assert.Equal(t, md(msgMissedCleared), env.bot.lastText())

	env.bot.reset()
	env.command("/missed")
	assert.Equal(t, []string{msgNoMissedWords}, env.bot.texts())
}

func TestHandler_ClearMissedAfterModeSwitch(t *testing.T) {
	ctx := context.Background()
	env := newHandlerEnv(t)

	env.callback(buildModeCallback(entities.ModeSpanishToEnglish))
	env.text("zzz")

	env.bot.reset()
	env.command("/missed")
	list, ok := env.bot.last().(tgbotapi.MessageConfig)
	require.True(t, ok)
	kb, ok := list.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	exportData := *kb.InlineKeyboard[0][0].CallbackData
	clearData := *kb.InlineKeyboard[0][1].CallbackData

	env.callback(buildModeCallback(entities.ModeEnglishToSpanish))
	env.text("yyy")

	env.bot.reset()
	env.callback(exportData)
	doc, ok := env.bot.last().(tgbotapi.DocumentConfig)
	require.True(t, ok)
	file, ok := doc.File.(tgbotapi.FileBytes)
	require.True(t, ok)
	assert.Contains(t, string(file.Bytes), "zzz")
	assert.NotContains(t, string(file.Bytes), "yyy")

	env.callback(clearData)
	env.callback(clearData + ":" + confirmYes)
	assert.Equal(t, md(msgMissedCleared), env.bot.lastText())

	_, missed := env.game.Missed(ctx, testUser, entities.ModeSpanishToEnglish)
	assert.Empty(t, missed, "the confirmed list is cleared")

	mode, missed := env.game.Missed(ctx, testUser, "")
	assert.Equal(t, entities.ModeEnglishToSpanish, mode)
	require.Len(t, missed, 1, "the live mode keeps its list")
	assert.Equal(t, "yyy", missed[0].UserAnswer)
}

func TestHandler_ResetLiveMode(t *testing.T) {
	env := newHandlerEnv(t)
	env.callback(buildModeCallback(entities.ModeSpanishToEnglish))
	env.answerCurrent(t)

	env.bot.reset()
	env.command("/reset")
	msg, ok := env.bot.last().(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, msgChooseResetMode, msg.Text)

	env.callback(buildResetCallback(entities.ModeSpanishToEnglish))
	assert.Contains(t, env.bot.lastText(), "reiniciar el progreso")

	env.bot.reset()
	env.callback(buildResetCallback(entities.ModeSpanishToEnglish, confirmYes))

	texts := env.bot.texts()
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "reiniciado")
	assert.Contains(t, texts[1], "Elige un modo")
	assert.Equal(t, 1, env.bot.countRequests(isMarkupEdit), "keyboard of the abandoned word removed")
	assert.Equal(t, service.StatusModeSelect, env.game.State(testUser).Status)
}

func TestHandler_ChangeModeAndContinue(t *testing.T) {
	env := newHandlerEnv(t)
	env.callback(buildModeCallback(entities.ModeSpanishToEnglish))
	env.answerCurrent(t)

	env.bot.reset()
	env.command("/mode")
	assert.Contains(t, env.bot.lastText(), "Juego en curso")

	env.bot.reset()
	env.callback(buildContinueCallback())
	assert.Contains(t, env.bot.lastText(), "Palabra 2 de 4")
	assert.Equal(t, service.StatusPlaying, env.game.State(testUser).Status)
}

func TestHandler_Progress(t *testing.T) {
	env := newHandlerEnv(t)

	env.command("/progress")

	msg, ok := env.bot.last().(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Tu progreso")

	kb := buildProgressKeyboard()
	env.callbackOn(&tgbotapi.Message{MessageID: 7, ReplyMarkup: &kb}, buildProgressCallback())

	edit, ok := env.bot.last().(tgbotapi.EditMessageTextConfig)
	require.True(t, ok, "progress screen refreshed in place")
	assert.Equal(t, 7, edit.MessageID)

	env.callback(buildProgressCallback())
	_, ok = env.bot.last().(tgbotapi.MessageConfig)
	assert.True(t, ok, "a new progress screen for other messages")
}

func TestHandler_InvalidCallback(t *testing.T) {
	env := newHandlerEnv(t)

	env.callback("mode:fr-de")
	env.callback("nonsense")

	assert.Empty(t, env.bot.texts())
	assert.Equal(t, 2, env.bot.countRequests(func(c tgbotapi.Chattable) bool {
		_, ok := c.(tgbotapi.CallbackConfig)
		return ok
	}), "every callback is answered")
}

func TestHandler_Run(t *testing.T) {
	env := newHandlerEnv(t)

	env.bot.updates <- tgbotapi.Update{
		Message: &tgbotapi.Message{
			From:     &tgbotapi.User{ID: testUser},
			Chat:     &tgbotapi.Chat{ID: testUser},
			Text:     "/help",
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 5}},
		},
	}
	close(env.bot.updates)

	require.NoError(t, env.handler.Run(context.Background()))
	assert.Equal(t, []string{helpMessage()}, env.bot.texts())
}

func TestHandler_NoHintFetchAfterRun(t *testing.T) {
	ctx := context.Background()
	provider := &countingProvider{}
	env := newHandlerEnvWithHints(t, provider)

	q := entities.Question{
		Total:  4,
		Mode:   entities.ModeSpanishToEnglish,
		Word:   entities.WordPair{Number: 1, English: "dog", Spanish: "perro"},
		Kind:   entities.QuestionTextHint,
		Prompt: "perro",
	}

	env.handler.sendQuestion(ctx, testUser, testUser, q, service.Score{Total: 4})
	env.handler.wg.Wait()
	require.Equal(t, 1, provider.count())

	_, isAnimation := env.bot.last().(tgbotapi.AnimationConfig)
	assert.True(t, isAnimation, "hint delivered while running")

	close(env.bot.updates)
	require.NoError(t, env.handler.Run(ctx))

	// A paced display firing after shutdown still shows the word, but starts
	// no background work.
	env.handler.sendQuestion(ctx, testUser, testUser, q, service.Score{Total: 4})
	env.handler.wg.Wait()
	assert.Equal(t, 1, provider.count())
}
