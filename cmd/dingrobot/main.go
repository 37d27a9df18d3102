package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/aleister1102/dingrobot/internal/config"
	"github.com/aleister1102/dingrobot/internal/dingtalk"
	"github.com/aleister1102/dingrobot/internal/logger"
)

const sendTimeout = 30 * time.Second

func main() {
	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.ConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load config using path '%s': %v", flags.ConfigFile, err)
	}

	// Command-line credentials take precedence over the config file
	if flags.AccessToken != "" {
		gCfg.RobotConfig.AccessToken = flags.AccessToken
	}
	if flags.SecToken != "" {
		gCfg.RobotConfig.SecToken = flags.SecToken
	}
	if flags.DirectURL != "" {
		gCfg.RobotConfig.DirectURL = flags.DirectURL
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}

	robot, err := dingtalk.NewRobotFromConfig(gCfg.RobotConfig, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to initialize robot")
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if flags.RawJSON != "" {
		if err := robot.SendRaw(ctx, []byte(flags.RawJSON)); err != nil {
			zLogger.Fatal().Err(err).Msg("Failed to send raw payload")
		}
		return
	}

	message, err := buildMessage(flags)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to build message")
	}

	if err := robot.Send(ctx, message); err != nil {
		zLogger.Fatal().Err(err).Str("msgtype", message.Type().String()).Msg("Failed to send message")
	}
}

func buildMessage(flags AppFlags) (dingtalk.Message, error) {
	var builder *dingtalk.MessageBuilder

	switch flags.MessageType {
	case "markdown":
		builder = dingtalk.NewMarkdownMessage(flags.Title, flags.Content)
	case "link":
		builder = dingtalk.NewLinkMessage(flags.Title, flags.Content, flags.PicURL, flags.MessageURL)
	default:
		builder = dingtalk.NewTextMessage(flags.Content)
	}

	if flags.AtAll {
		builder.AtAll()
	}
	if flags.AtMobiles != "" {
		for _, mobile := range strings.Split(flags.AtMobiles, ",") {
			if trimmed := strings.TrimSpace(mobile); trimmed != "" {
				builder.AtMobiles(trimmed)
			}
		}
	}

	return builder.Build()
}
