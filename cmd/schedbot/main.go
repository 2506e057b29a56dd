package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/oauth2"

	"schedbot/conversation"
	"schedbot/internal/config"
	"schedbot/providers/ai"
	"schedbot/providers/ai/groq"
	"schedbot/providers/extract"
	"schedbot/providers/observability/slogobs"
	"schedbot/providers/session/inmemory"
	"schedbot/providers/tool"
	"schedbot/providers/tool/calendar"
	"schedbot/providers/tool/gcal"
	"schedbot/providers/tool/webfetch"
	"schedbot/providers/tool/websearch"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "schedbot",
		Usage: "Draft and create calendar events through a multi-turn chat.",
		Commands: []*cli.Command{
			chatCommand(),
			authCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func chatCommand() *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Start an interactive event-drafting session.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "schedbot.yaml", Usage: "Path to the YAML config file."},
			&cli.StringFlag{Name: "session", Value: "demo-user-1", Usage: "Session identifier."},
			&cli.StringFlag{Name: "backend", Usage: "Calendar backend override: simulated or google."},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if c.IsSet("backend") {
				cfg.Backend = c.String("backend")
				cfg.Normalize()
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := setupLogger(cfg.LogLevel)
			obs := slogobs.New(slogobs.WithLogger(logger))

			manager, gateway, err := buildManager(c, cfg, logger, obs)
			if err != nil {
				return err
			}

			sessionID := c.String("session")
			fmt.Println("Calendar Assistant (multi-turn). Type 'exit' to quit, 'start new' to reset.")
			fmt.Println("Use '/search <query>' or '/fetch <url>' to look things up while drafting.")
			fmt.Println()

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("You: ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())

				switch strings.ToLower(line) {
				case "exit":
					return scanner.Err()
				case "start new":
					if err := manager.Reset(c.Context, sessionID); err != nil {
						logger.Warn("Failed to reset session", "error", err)
					}
					fmt.Println("Assistant: Started a new session.")
					continue
				case "":
					continue
				}

				if args, ok := searchArgs(line, cfg.SearchResults); ok {
					printToolResult(gateway.Invoke(c.Context, "web_search", args))
					continue
				}
				if args, ok := fetchArgs(line); ok {
					printToolResult(gateway.Invoke(c.Context, "web_fetch", args))
					continue
				}

				reply, err := manager.HandleTurn(c.Context, sessionID, line)
				if err != nil {
					fmt.Println("Assistant: Sorry, I hit an error:", err)
					continue
				}
				fmt.Println("Assistant:", reply)
			}
			return scanner.Err()
		},
	}
}

// buildManager wires the conversation manager: chat provider, drafter,
// session store, and the tool catalog with the configured calendar backend.
// The gateway is returned separately so the REPL can run lookup tools
// directly.
func buildManager(c *cli.Context, cfg *config.Config, logger *slog.Logger, obs *slogobs.Observer) (*conversation.Manager, *tool.Gateway, error) {
	provider := groq.NewGroqProvider()
	if cfg.BaseURL != "" {
		provider.WithBaseURL(cfg.BaseURL)
	}

	drafter := extract.NewDrafter(provider,
		extract.WithModel(cfg.Model),
		extract.WithDefaultTimezone(cfg.Timezone),
		extract.WithObservability(obs),
	)

	catalog := tool.NewCatalog()
	catalog.AddTools(websearch.NewWebSearchTool(), webfetch.NewWebFetchTool())

	switch cfg.Backend {
	case config.BackendGoogle:
		client, err := gcal.NewClient(c.Context, logger,
			os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"), cfg.Google.Account)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create google calendar client: %w", err)
		}
		catalog.AddTools(gcal.NewCreateEventTool(client, cfg.Google.CalendarID))
	default:
		catalog.AddTools(calendar.NewCreateEventTool())
	}

	gateway := tool.NewGateway(catalog, obs)

	manager := conversation.NewManager(
		inmemory.New(),
		drafter,
		drafter,
		gateway,
		conversation.WithObservability(obs),
	)
	return manager, gateway, nil
}

// searchArgs turns a "/search <query>" line into web_search tool arguments.
func searchArgs(line string, numResults int) (string, bool) {
	query, ok := strings.CutPrefix(line, "/search ")
	if !ok || strings.TrimSpace(query) == "" {
		return "", false
	}
	args, err := json.Marshal(map[string]any{
		"query":       strings.TrimSpace(query),
		"num_results": numResults,
	})
	if err != nil {
		return "", false
	}
	return string(args), true
}

// fetchArgs turns a "/fetch <url>" line into web_fetch tool arguments.
func fetchArgs(line string) (string, bool) {
	url, ok := strings.CutPrefix(line, "/fetch ")
	if !ok || strings.TrimSpace(url) == "" {
		return "", false
	}
	args, err := json.Marshal(map[string]any{"url": strings.TrimSpace(url)})
	if err != nil {
		return "", false
	}
	return string(args), true
}

func printToolResult(result ai.ToolResult) {
	if !result.Success {
		fmt.Println("Assistant: Lookup failed:", result.Message)
		return
	}
	pretty, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		fmt.Println("Assistant:", result.Data)
		return
	}
	fmt.Println("Assistant:")
	fmt.Println(string(pretty))
}

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with a Google account to get an API token.",
		Action: func(c *cli.Context) error {
			logger := setupLogger("info")
			logger.Info("Starting Google authentication flow.")

			oauthConfig, err := gcal.GetOAuthConfigForAuthFlow(os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"))
			if err != nil {
				return fmt.Errorf("failed to get google oauth config: %w", err)
			}

			authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
			fmt.Printf("Go to the following link in your browser then type the "+
				"authorization code: \n%v\n", authURL)

			fmt.Print("Enter Authorization Code: ")
			reader := bufio.NewReader(os.Stdin)
			authCode, _ := reader.ReadString('\n')
			authCode = strings.TrimSpace(authCode)

			token, err := gcal.TokenFromWeb(oauthConfig, authCode)
			if err != nil {
				return fmt.Errorf("unable to retrieve token from web: %w", err)
			}

			fmt.Print("Enter a name for this account (e.g., 'personal', 'work'): ")
			accountName, _ := reader.ReadString('\n')
			accountName = strings.TrimSpace(accountName)
			tokenFile := "token-" + accountName + ".json"

			if err := gcal.SaveToken(tokenFile, token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			logger.Info("Successfully authenticated and saved token.", "file", tokenFile)
			return nil
		},
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
