package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/interval"
	"MarketDashboard/internal/news"
	"MarketDashboard/internal/notifier"
)

// CommandRouter answers chat commands with dashboard views.
type CommandRouter struct {
	Service *dashboard.Service
}

// NewCommandRouter creates a CommandRouter.
func NewCommandRouter(svc *dashboard.Service) *CommandRouter {
	return &CommandRouter{Service: svc}
}

// HandleCommand processes a user command and returns a reply.
func (r *CommandRouter) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	// Group chats address commands as /cmd@botname.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	args := fields[1:]

	switch name {
	case "/indices":
		trend := interval.Default
		if len(args) > 0 {
			trend = titleCase(args[0])
		}
		view, err := r.Service.Indices(ctx, trend)
		if err != nil {
			return fmt.Sprintf("Unknown trend %q. Choose one of: %s", args[0], strings.Join(interval.Labels(), ", "))
		}
		return notifier.FormatIndices(view)
	case "/stock":
		req := dashboard.StockRequest{}
		if len(args) > 0 {
			req.Symbol = args[0]
		}
		return notifier.FormatStock(r.Service.Stock(ctx, req))
	case "/news":
		category := news.DefaultCategory
		if len(args) > 0 {
			category = strings.ToLower(args[0])
		}
		view, err := r.Service.NewsFeed(ctx, category)
		if err != nil {
			return fmt.Sprintf("Unknown category %q. Choose one of: %s", args[0], strings.Join(news.Categories(), ", "))
		}
		return notifier.FormatNews(view)
	case "/session":
		return notifier.FormatSession(r.Service.Session())
	default:
		log.Printf("[INFO] unrecognised command %q, sending help", name)
		return helpText()
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func helpText() string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	fmt.Fprintf(&b, "• /indices [%s]\n", strings.Join(interval.Labels(), "|"))
	b.WriteString("• /stock SYMBOL\n")
	fmt.Fprintf(&b, "• /news [%s]\n", strings.Join(news.Categories(), "|"))
	b.WriteString("• /session")
	return b.String()
}
