package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aqua777/go-ragbot/agents"
	"github.com/aqua777/go-ragbot/backend"
	"github.com/aqua777/go-ragbot/chatbot"
	"github.com/aqua777/go-ragbot/config"
	"github.com/aqua777/go-ragbot/embedding"
	"github.com/aqua777/go-ragbot/llm"
	"github.com/aqua777/go-ragbot/store"
)

// exitSentinel ends the chat loop.
const exitSentinel = "no"

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Starts an interactive session against the configured knowledge bases.
Type 'no' to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger()

		bot, cleanup, err := buildChatBot(cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		return runChatLoop(cmd.Context(), bot)
	},
}

// runChatLoop reads queries from stdin until the exit sentinel or EOF.
func runChatLoop(ctx context.Context, bot *chatbot.ChatBot) error {
	userLabel := color.New(color.FgGreen, color.Bold)
	botLabel := color.New(color.FgCyan, color.Bold)

	fmt.Printf("Bot is ready. Type '%s' to exit.\n", exitSentinel)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		userLabel.Print("User: ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if strings.EqualFold(query, exitSentinel) {
			botLabel.Print("Bot: ")
			fmt.Println("Feel free to chat again!")
			break
		}

		answer := bot.HandleQuery(ctx, query)
		botLabel.Print("Bot: ")
		fmt.Println(answer)
	}

	// Let detached validations flush their log entries.
	bot.Wait()
	return scanner.Err()
}

// buildChatBot wires the full pipeline from configuration: models, vector
// store, backends, router and orchestrator.
func buildChatBot(cfg *config.Config, logger *slog.Logger) (*chatbot.ChatBot, func(), error) {
	model := buildLLM(cfg)
	embedder := embedding.NewOpenAIEmbedding(cfg.OpenAI.APIKey, cfg.OpenAI.EmbeddingModel)

	vectorStore, err := store.NewChromemStore(cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening vector store: %w", err)
	}

	attendance, err := backend.OpenAttendanceDB(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening attendance db: %w", err)
	}
	if err := attendance.EnsureSchema(context.Background()); err != nil {
		attendance.Close()
		return nil, nil, err
	}

	registry := backend.NewRegistry(
		backend.NewVectorSearch(vectorStore, embedder, backend.WithTopK(cfg.Chat.TopK)),
		attendance,
		backend.NewDuckDuckGoSearch(),
	)

	router := chatbot.NewRouter(
		agents.NewClassifier(model),
		registry,
		chatbot.WithRouterLogger(logger),
	)

	bot := chatbot.NewChatBot(
		agents.NewDecomposer(model),
		router,
		agents.NewGenerator(model),
		agents.NewValidator(model),
		chatbot.WithLogger(logger),
		chatbot.WithMaxConcurrency(cfg.Chat.MaxConcurrency),
		chatbot.WithResolveTimeout(cfg.Chat.ResolveTimeout),
		chatbot.WithValidateTimeout(cfg.Chat.ValidateTimeout),
	)

	cleanup := func() {
		bot.Wait()
		attendance.Close()
	}
	return bot, cleanup, nil
}

// buildLLM selects Azure OpenAI when an endpoint is configured, plain
// OpenAI otherwise.
func buildLLM(cfg *config.Config) llm.LLM {
	if cfg.UseAzure() {
		return llm.NewAzureOpenAILLMWithConfig(
			cfg.Azure.Endpoint,
			cfg.Azure.APIKey,
			cfg.Azure.Deployment,
			cfg.Azure.APIVersion,
		)
	}
	return llm.NewOpenAILLM(cfg.OpenAI.APIKey, llm.WithModel(cfg.OpenAI.Model))
}
