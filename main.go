package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"traychat/catalog"
	"traychat/chat"
	"traychat/config"
	"traychat/model"
	"traychat/storage"
)

const Version = "v0.1.0"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if os.Getenv("TRAYCHAT_DEBUG") != "" {
		if err := config.EnableDebugLog(cfg.DataDirectory); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	if len(args) == 0 {
		usage()
		return nil
	}

	switch args[0] {
	case "models":
		return runModels(cfg, args[1:])
	case "send":
		return runSend(cfg, args[1:])
	case "sessions":
		return runSessions(cfg)
	case "init":
		return runInit(cfg)
	case "version":
		fmt.Println("traychat", Version)
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `traychat - multi-provider AI chat client

Usage:
  traychat models [-refresh] [query]   list (and fuzzy-filter) available models
  traychat send -model provider/id [-attach file]... [-new] <message>
  traychat sessions                    list saved sessions
  traychat init                        write a starter config.toml
  traychat version
`)
}

func runInit(cfg *config.Config) error {
	settings := config.GetSettingsFilePath()
	if !config.FileExists(settings) {
		if err := config.EnsureDir(filepath.Dir(settings)); err != nil {
			return err
		}
		sys := config.DefaultSystemConfig()
		body := fmt.Sprintf("data_directory = %q\n", sys.DataDirectory)
		if err := os.WriteFile(settings, []byte(body), 0o600); err != nil {
			return err
		}
		fmt.Println("Wrote", settings)
	}

	path := filepath.Join(cfg.DataDirectory, "config.toml")
	if config.FileExists(path) {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(config.GenerateUserConfigTemplate()), 0o600); err != nil {
		return err
	}
	fmt.Println("Wrote", path)
	return nil
}

func runModels(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("models", flag.ContinueOnError)
	refresh := fs.Bool("refresh", false, "refresh the catalog from all providers")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cache, err := storage.NewCatalogCache(cfg.DataDirectory)
	if err != nil {
		return err
	}
	defer cache.Close()

	options, err := cache.Load()
	if err != nil {
		return err
	}

	if *refresh || len(options) == 0 {
		options = catalog.NewAggregator().Refresh(context.Background(), cfg.Credentials())
		if err := cache.Replace(options); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to cache catalog: %v\n", err)
		}
	} else {
		catalog.SortOptions(options)
	}

	if query := strings.Join(fs.Args(), " "); query != "" {
		options = catalog.Search(options, query)
	}

	for _, o := range options {
		fmt.Printf("%-40s %s\n", o.Label(), o.Key())
	}
	return nil
}

// attachList collects repeated -attach flags.
type attachList []string

func (a *attachList) String() string     { return strings.Join(*a, ", ") }
func (a *attachList) Set(v string) error { *a = append(*a, v); return nil }

func runSend(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	modelRef := fs.String("model", cfg.DefaultModel, "model as provider/model-id")
	fresh := fs.Bool("new", false, "start a new session instead of continuing the current one")
	var attachments attachList
	fs.Var(&attachments, "attach", "file to attach (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	draft := strings.Join(fs.Args(), " ")
	if draft == "" {
		return fmt.Errorf("nothing to send")
	}
	if *modelRef == "" {
		return fmt.Errorf("no model selected: pass -model or set default_model in config.toml")
	}

	option, err := model.ParseOptionRef(*modelRef)
	if err != nil {
		return err
	}

	sessions, err := storage.NewSessionStorage(cfg.DataDirectory)
	if err != nil {
		return err
	}

	session := currentSession(sessions, option, *fresh)

	history := make([]model.Message, 0, len(session.Messages))
	for _, m := range session.Messages {
		history = append(history, model.Message{Role: m.Role, Content: m.Content, Timestamp: m.Timestamp})
	}

	refs := make([]model.Attachment, 0, len(attachments))
	for _, path := range attachments {
		refs = append(refs, model.NewAttachment(path))
	}

	reply, err := chat.NewDispatcher().Send(context.Background(), chat.Request{
		Model:       option,
		Credentials: cfg.Credentials(),
		History:     history,
		Draft:       draft,
		Attachments: refs,
	})
	if err != nil {
		return err
	}

	fmt.Println(reply)

	now := time.Now()
	session.Messages = append(session.Messages,
		storage.Message{Role: model.RoleUser, Content: draft, Timestamp: now},
		storage.Message{Role: model.RoleAssistant, Content: reply, Timestamp: now},
	)
	if session.Name == "" {
		session.Name = storage.GenerateSessionName(draft)
	}
	if err := sessions.Save(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return sessions.SaveCurrentSessionID(session.ID)
}

// currentSession continues the last session when it exists and matches the
// selected model; otherwise starts a fresh one.
func currentSession(sessions *storage.SessionStorage, option model.Option, fresh bool) *storage.Session {
	if !fresh {
		if id, err := sessions.LoadCurrentSessionID(); err == nil && id != "" {
			if session, err := sessions.Load(id); err == nil &&
				session.Provider == string(option.Provider) && session.Model == option.ID {
				return session
			}
		}
	}

	return &storage.Session{
		Provider: string(option.Provider),
		Model:    option.ID,
	}
}

func runSessions(cfg *config.Config) error {
	sessions, err := storage.NewSessionStorage(cfg.DataDirectory)
	if err != nil {
		return err
	}

	list, err := sessions.List()
	if err != nil {
		return err
	}

	for _, s := range list {
		fmt.Printf("%s  %-30s %s/%s (%d messages)\n",
			s.UpdatedAt.Format("2006-01-02 15:04"), s.Name, s.Provider, s.Model, s.MessageCount)
	}
	return nil
}
