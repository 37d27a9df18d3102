package main

import (
	"flag"
	"fmt"
	"os"
)

type AppFlags struct {
	ConfigFile  string
	MessageType string
	Content     string
	Title       string
	PicURL      string
	MessageURL  string
	RawJSON     string
	AccessToken string
	SecToken    string
	DirectURL   string
	AtAll       bool
	AtMobiles   string
}

func ParseFlags() AppFlags {
	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations. A leading ~/ is expanded.")
	configFileAlias := flag.String("c", "", "Alias for -config")

	messageType := flag.String("type", "text", "Message type to send: text, markdown or link")
	messageTypeAlias := flag.String("t", "", "Alias for -type")

	content := flag.String("content", "", "Message content (text body, markdown body, or link text)")
	title := flag.String("title", "", "Message title (markdown and link messages)")
	picURL := flag.String("pic-url", "", "Picture URL (link messages)")
	messageURL := flag.String("message-url", "", "Target URL (link messages)")
	rawJSON := flag.String("json", "", "Pre-serialized JSON payload to send as-is, bypassing the message builder")

	accessToken := flag.String("token", "", "Access token (overrides config file)")
	secToken := flag.String("secret", "", "Secret token for signed channels (overrides config file)")
	directURL := flag.String("direct-url", "", "Fully pre-built webhook URL, bypassing token and signature composition")

	atAll := flag.Bool("at-all", false, "Mention everyone in the channel")
	atMobiles := flag.String("at-mobiles", "", "Comma-separated phone numbers to mention")

	flag.Parse()

	flags := AppFlags{
		Content:     *content,
		Title:       *title,
		PicURL:      *picURL,
		MessageURL:  *messageURL,
		RawJSON:     *rawJSON,
		AccessToken: *accessToken,
		SecToken:    *secToken,
		DirectURL:   *directURL,
		AtAll:       *atAll,
		AtMobiles:   *atMobiles,
	}

	if *configFile != "" {
		flags.ConfigFile = *configFile
	} else if *configFileAlias != "" {
		flags.ConfigFile = *configFileAlias
	}

	if *messageTypeAlias != "" {
		flags.MessageType = *messageTypeAlias
	} else {
		flags.MessageType = *messageType
	}

	if flags.Content == "" && flags.RawJSON == "" {
		fmt.Fprintln(os.Stderr, "[FATAL] either -content or -json is required")
		os.Exit(1)
	}

	return flags
}
