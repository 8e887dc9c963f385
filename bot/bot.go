// Package bot wires the archival pipeline to its collaborators: the
// Slack client, the run ledger, the admin notifier, and the monthly
// scheduler.
package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/slack-go/slack"

	"slack-archiver/archiver"
	"slack-archiver/config"
	"slack-archiver/database"
	"slack-archiver/models"
	"slack-archiver/slackapi"
	"slack-archiver/utils"
)

// Bot encapsulates the archiver's runtime state.
type Bot struct {
	Config   *config.Config
	Archiver *archiver.Archiver

	api      *slackapi.Client
	ledger   *database.Ledger
	notifier *utils.Notifier
	cron     *cron.Cron
}

// NewBot loads configuration and constructs the bot and its
// collaborators. The Slack client and timezone live on explicit
// objects handed to each component; nothing reads ambient state.
func NewBot() (*Bot, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	client := slack.New(cfg.BotToken)
	api := slackapi.NewClientWith(client, cfg.PageLimit)

	ledger, err := database.Open(cfg.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("error opening run ledger: %w", err)
	}

	arch := archiver.New(api, archiver.Config{
		RecipientUserID: cfg.RecipientUserID,
		OutputDir:       cfg.OutputDir,
		MediaDir:        cfg.MediaDir,
		PageLimit:       cfg.PageLimit,
		Location:        cfg.Location,
	})

	return &Bot{
		Config:   cfg,
		Archiver: arch,
		api:      api,
		ledger:   ledger,
		notifier: utils.NewNotifier(client, cfg.AdminChannelID),
	}, nil
}

// Start verifies the credential and begins the monthly schedule. A
// rejected credential is fatal; nothing in the pipeline can work
// without it.
func (b *Bot) Start() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	botUserID, err := b.api.AuthCheck(ctx)
	if err != nil {
		return fmt.Errorf("credential rejected: %w", err)
	}
	log.Printf("Authenticated as bot user %s", botUserID)

	if err := b.startScheduler(); err != nil {
		return err
	}

	fmt.Println("Archiver is now running. Press CTRL-C to exit.")
	return nil
}

// Stop shuts the bot down gracefully.
func (b *Bot) Stop() {
	b.stopScheduler()
	if b.ledger != nil {
		b.ledger.Close()
	}
	fmt.Println("Archiver stopped gracefully.")
}

// RunArchive executes one archival run for the previous calendar
// month. Unless force is set, a month the ledger already records as
// delivered is skipped.
func (b *Bot) RunArchive(ctx context.Context, force bool) {
	window := archiver.PreviousMonth(time.Now(), b.Config.Location)

	if !force {
		done, err := b.ledger.Delivered(window.Label())
		if err != nil {
			log.Printf("Could not consult run ledger, running anyway: %v", err)
		} else if done {
			log.Printf("Archive for %s already delivered, skipping run.", window.Label())
			return
		}
	}

	report, err := b.Archiver.Run(ctx, window)
	if err != nil {
		log.Printf("Archival run for %s failed: %v", window.Label(), err)
		b.notifier.Error(ctx, "archiver", "run", fmt.Sprintf("run for %s failed: %v", window.Label(), err))
		return
	}

	if err := b.ledger.RecordRun(models.RunRecord{
		Workspace:  report.Workspace,
		Month:      window.Label(),
		Channels:   report.Channels,
		Records:    report.Records,
		TablePath:  report.TablePath,
		BundlePath: report.BundlePath,
		Delivered:  report.Delivered,
	}); err != nil {
		log.Printf("Could not record run in ledger: %v", err)
	}

	b.notifier.Info(ctx, "archiver", "run",
		fmt.Sprintf("%s: %d channels, %d records, delivered=%t",
			window.Label(), report.Channels, report.Records, report.Delivered))
}

// Run is the main entry point for the archiver application.
func Run() {
	bot, err := NewBot()
	if err != nil {
		log.Fatalf("Error initializing archiver: %v", err)
	}

	if err := bot.Start(); err != nil {
		log.Fatalf("Error starting archiver: %v", err)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	bot.Stop()
}
