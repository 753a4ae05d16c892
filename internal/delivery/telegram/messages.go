// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notices and errors.
const (
	msgInternalError      = "Algo salió mal. Inténtalo de nuevo más tarde."
	msgUnknownCommand     = "Comando desconocido. Usa /help para ver la lista de comandos."
	msgChooseModeFirst    = "Primero elige un modo de juego."
	msgStaleQuestion      = "Esta pregunta ya no está activa."
	msgInvalidOption      = "Opción no válida."
	msgSkipLimit          = "Ya no te quedan saltos en esta ronda."
	msgNothingToContinue  = "No hay ningún juego para continuar."
	msgNothingToExport    = "No hay palabras para estudiar. Juega primero para generar palabras incorrectas."
	msgNoMissedWords      = "No tienes palabras para estudiar. ¡Sigue así!"
	msgMissedCleared      = "🗑️ Lista de palabras para estudiar vaciada."
	msgNoChanges          = "Sin cambios."
	msgExportCaption      = "📄 Tus palabras para estudiar"
	msgConfirmClearMissed = "¿Estás seguro de que quieres limpiar todas las palabras para estudiar de %s?"
	msgChooseResetMode    = "¿Qué progreso quieres reiniciar?"
	msgCorrect            = "✅ ¡Correcto!"
	msgHintCaption        = "💡 Pista"
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeMessage builds the /start greeting.
func welcomeMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("¡Hola! 👋"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Practica las 1000 palabras más usadas entre español e inglés."))
	sb.WriteString("\n\n")
	sb.WriteString(md("✍️ Escribe la traducción de cada palabra o elige la opción correcta."))
	sb.WriteString("\n")
	sb.WriteString(md("💡 A veces verás un GIF como pista."))
	sb.WriteString("\n")
	sb.WriteString(md("📚 Las palabras que falles se guardan para estudiarlas después."))
	sb.WriteString("\n")
	sb.WriteString(md("🏆 Cada ronda completa suma tus aciertos a las palabras aprendidas."))
	sb.WriteString("\n\n")
	sb.WriteString(md("Tu progreso se guarda automáticamente. Elige un modo para empezar ⬇️"))

	return sb.String()
}

// helpMessage lists the commands.
func helpMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("Comandos"))
	sb.WriteString("\n\n")
	sb.WriteString(md("/play — elegir modo o continuar"))
	sb.WriteString("\n")
	sb.WriteString(md("/skip — saltar la palabra actual"))
	sb.WriteString("\n")
	sb.WriteString(md("/mode — cambiar de modo"))
	sb.WriteString("\n")
	sb.WriteString(md("/progress — ver tu progreso"))
	sb.WriteString("\n")
	sb.WriteString(md("/missed — palabras para estudiar"))
	sb.WriteString("\n")
	sb.WriteString(md("/export — descargar las palabras para estudiar"))
	sb.WriteString("\n")
	sb.WriteString(md("/reset — reiniciar el progreso de un modo"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Durante el juego, simplemente escribe tu respuesta. No importan las mayúsculas, los acentos ni la puntuación."))

	return sb.String()
}
