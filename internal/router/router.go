package router

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"CryptoBuddy/internal/model"
	"CryptoBuddy/internal/notifier"
	"CryptoBuddy/internal/registry"
)

// ChatClient is the slice of the Telegram client the router needs to
// answer commands in the requesting chat.
type ChatClient interface {
	SendTo(chatID int64, text string) (int, error)
	EditMessage(chatID int64, messageID int, text string) error
	DeleteMessage(chatID int64, messageID int) error
	APILatency() (time.Duration, error)
}

// Router parses prefixed chat messages into commands and dispatches them.
type Router struct {
	Registry *registry.Registry
	Chat     ChatClient
	Prefix   string
}

// NewRouter creates a new Router.
func NewRouter(reg *registry.Registry, chat ChatClient, prefix string) *Router {
	return &Router{Registry: reg, Chat: chat, Prefix: prefix}
}

// HandleMessage routes one inbound chat message. Messages from bots or
// without the configured prefix are ignored.
func (r *Router) HandleMessage(msg notifier.InboundMessage) {
	if msg.FromBot {
		return
	}
	if !strings.HasPrefix(msg.Text, r.Prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(msg.Text, r.Prefix))
	if len(fields) == 0 {
		return
	}
	command := strings.ToLower(fields[0])
	args := fields[1:]

	log.Printf("[INFO] received command: %s %v", command, args)

	switch command {
	case "ping":
		r.handlePing(msg)
	case "alert":
		r.handleAlert(msg, args)
	case "alerts":
		r.handleAlerts(msg)
	case "purge":
		r.handlePurge(msg, args)
	}
}

// reply sends a best-effort response to the requesting chat.
func (r *Router) reply(chatID int64, text string) {
	if _, err := r.Chat.SendTo(chatID, text); err != nil {
		log.Printf("[ERROR] send reply: %v", err)
	}
}

// handlePing sends a probe message, then edits it in place with the
// measured round-trip and API latency.
func (r *Router) handlePing(msg notifier.InboundMessage) {
	start := time.Now()
	msgID, err := r.Chat.SendTo(msg.ChatID, "Pong?")
	if err != nil {
		log.Printf("[ERROR] ping probe: %v", err)
		return
	}
	roundTrip := time.Since(start)

	apiLatency, err := r.Chat.APILatency()
	if err != nil {
		log.Printf("[WARN] API latency probe: %v", err)
	}

	text := fmt.Sprintf("Pong! Latency is %dms. API Latency is %dms",
		roundTrip.Milliseconds(), apiLatency.Milliseconds())
	if err := r.Chat.EditMessage(msg.ChatID, msgID, text); err != nil {
		log.Printf("[ERROR] edit ping message: %v", err)
	}
}

func (r *Router) handleAlert(msg notifier.InboundMessage, args []string) {
	syntaxErr := fmt.Sprintf("Incorrect syntax, use: %salert <symbol> <above|below> <price>", r.Prefix)
	if len(args) < 3 {
		r.reply(msg.ChatID, syntaxErr)
		return
	}

	symbol := strings.ToUpper(args[0])
	direction, err := model.ParseDirection(args[1])
	if err != nil {
		r.reply(msg.ChatID, syntaxErr)
		return
	}
	price, err := decimal.NewFromString(args[2])
	if err != nil || price.Sign() <= 0 {
		r.reply(msg.ChatID, syntaxErr)
		return
	}

	alert, err := model.NewAlert(symbol, direction, price)
	if err != nil {
		r.reply(msg.ChatID, syntaxErr)
		return
	}

	if r.Registry.Add(alert) {
		r.reply(msg.ChatID, fmt.Sprintf("Successfully added alert for %s at %s", symbol, price))
	} else {
		r.reply(msg.ChatID, fmt.Sprintf("Failed to add alert for %s at %s", symbol, price))
	}
}

func (r *Router) handleAlerts(msg notifier.InboundMessage) {
	alerts := r.Registry.List()
	if len(alerts) == 0 {
		r.reply(msg.ChatID, "No current alerts set.")
		return
	}
	r.reply(msg.ChatID, notifier.FormatAlertList(alerts))
}

// handlePurge deletes count recent messages, counting down from the
// command message itself. Each delete is best-effort: messages the bot
// cannot delete are skipped.
func (r *Router) handlePurge(msg notifier.InboundMessage, args []string) {
	usage := "Please provide a number between 2 and 100 for the number of messages to delete"
	if len(args) < 1 {
		r.reply(msg.ChatID, usage)
		return
	}
	count, err := strconv.Atoi(args[0])
	if err != nil || count < 2 || count > 100 {
		r.reply(msg.ChatID, usage)
		return
	}

	deleted := 0
	for id := msg.MessageID; id > msg.MessageID-count; id-- {
		if err := r.Chat.DeleteMessage(msg.ChatID, id); err != nil {
			log.Printf("[WARN] delete message %d: %v", id, err)
			continue
		}
		deleted++
	}
	r.reply(msg.ChatID, fmt.Sprintf("🧹 Deleted %d messages.", deleted))
}
