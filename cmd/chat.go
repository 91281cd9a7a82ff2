package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/snf/qa-bot-core/qabot"
	"github.com/spf13/cobra"
)

var (
	chatEndpoint       string
	chatRatingEndpoint string
	chatAPIKey         string
	chatActingUser     string

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Start an interactive question/answer conversation.

Questions are sent to the configured Q&A backend; the conversation is
saved locally and can be reopened later.

In-chat commands:
  /new           Start a fresh conversation
  /history       List saved conversations
  /open <id>     Reopen a saved conversation
  /quit          Exit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fileCfg, err := loadFileConfig()
		if err != nil {
			return err
		}

		endpoint := firstNonEmpty(chatEndpoint, fileCfg.Endpoint, os.Getenv("QA_BOT_ENDPOINT"))
		if endpoint == "" {
			return fmt.Errorf("no Q&A endpoint configured (use --endpoint, the config file, or QA_BOT_ENDPOINT)")
		}

		path, err := resolveStorePath(fileCfg)
		if err != nil {
			return err
		}
		db, err := qabot.OpenDatabase(path)
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}
		defer func() { _ = db.Close() }()

		engine := newConsoleEngine(cmd.OutOrStdout())
		bot, err := qabot.New(qabot.Config{
			Endpoint:       endpoint,
			RatingEndpoint: firstNonEmpty(chatRatingEndpoint, fileCfg.RatingEndpoint),
			APIKey:         firstNonEmpty(chatAPIKey, fileCfg.APIKey),
			ActingUser:     firstNonEmpty(chatActingUser, fileCfg.ActingUser),
			LoginURL:       fileCfg.LoginURL,
			WelcomeMessage: fileCfg.WelcomeMessage,
			PageURL:        fileCfg.PageURL,
			AllowAnonymous: true,
			KV:             qabot.NewSQLiteKV(db),
		}, engine)
		if err != nil {
			return fmt.Errorf("failed to start widget: %w", err)
		}
		if err := bot.OpenChat(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, hintStyle.Render("Type a question, or /help for commands."))

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, promptStyle.Render("> "))
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())

			if strings.HasPrefix(input, "/") {
				if quit := runChatCommand(bot, out, input); quit {
					break
				}
				continue
			}

			reply := bot.Submit(context.Background(), input)
			if len(reply.Options) > 0 {
				fmt.Fprintln(out, hintStyle.Render("Rate the answer: "+strings.Join(reply.Options, "  /  ")))
			}
		}

		if err := bot.CloseChat(); err != nil {
			return err
		}
		return scanner.Err()
	},
}

// runChatCommand handles the slash commands. Returns true when the loop
// should exit.
func runChatCommand(bot *qabot.Bot, out io.Writer, input string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/quit", "/exit":
		return true
	case "/new":
		if err := bot.NewChat(); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	case "/history":
		sessions := bot.Sessions()
		if len(sessions) == 0 {
			fmt.Fprintln(out, hintStyle.Render("No saved conversations yet."))
			return false
		}
		for _, s := range sessions {
			marker := " "
			if s.SessionID == bot.SessionID() {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s  %s  (%d messages)\n",
				marker, s.SessionID, s.Preview, s.MessageCount)
		}
	case "/open":
		if len(fields) < 2 {
			fmt.Fprintln(out, "Usage: /open <session-id>")
			return false
		}
		if err := bot.RestoreSession(fields[1]); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	case "/help":
		fmt.Fprintln(out, "Commands: /new, /history, /open <id>, /quit")
	default:
		fmt.Fprintf(out, "Unknown command %s (try /help)\n", fields[0])
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&chatEndpoint, "endpoint", "", "Q&A backend URL")
	chatCmd.Flags().StringVar(&chatRatingEndpoint, "rating-endpoint", "", "Answer rating URL")
	chatCmd.Flags().StringVar(&chatAPIKey, "api-key", "", "API key sent as X-API-KEY")
	chatCmd.Flags().StringVar(&chatActingUser, "acting-user", "", "User identity forwarded to the backend")
}
