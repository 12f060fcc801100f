package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/assistant"
	"github.com/jobscout/jobscout/internal/logger"
	"github.com/jobscout/jobscout/internal/service"
	"github.com/jobscout/jobscout/internal/store"
)

var chatUser string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant from the terminal",
	Long: `Chat runs the assistant against the local database, without the HTTP
server. Conversations and filters persist the same way they do for API
clients.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatUser, "user", "local", "user id owning the conversation")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := getConfig()
	if err != nil {
		log.Fatal("unable to load config", zap.Error(err))
	}

	ctx := cmd.Context()

	repo, err := store.NewSQLite(cfg.Server.Database)
	if err != nil {
		log.Fatal("unable to open database", zap.Error(err))
	}
	defer repo.Close()

	completer, err := newCompleter(ctx, cfg.AI, log)
	if err != nil {
		log.Warn("ai completions unavailable, using deterministic fallbacks", zap.Error(err))
	}

	router := assistant.New(completer, log, cfg.AI.Gemini.MaxLogLength)
	svc := service.NewAssistant(repo, router, log)

	fmt.Println("Type a message, or exit to quit.")

	prompt := promptui.Prompt{Label: chatUser}
	for {
		message, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		message = strings.TrimSpace(message)
		switch message {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		result, err := svc.ProcessMessage(ctx, chatUser, message)
		if err != nil {
			log.Error("assistant turn failed", zap.Error(err))
			continue
		}
		fmt.Println(result.Response)
	}
}
