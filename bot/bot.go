package bot

import (
	"fmt"
	"time"

	"tpbot/bot/common"
	"tpbot/bot/features/balance"
	"tpbot/bot/features/challenges"
	"tpbot/bot/features/help"
	"tpbot/bot/features/wagers"
	"tpbot/events"
	"tpbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string // Empty registers commands globally
}

// DefaultCooldowns are the per-user command rate limits
var DefaultCooldowns = map[string]time.Duration{
	"register": 300 * time.Second,
	"balance":  3 * time.Second,
	"color":    360 * time.Second,
	"law":      960 * time.Second,
}

type Bot struct {
	config    Config
	session   *discordgo.Session
	variant   service.Variant
	cooldowns *common.Cooldowns

	// Features
	balanceFeature    *balance.Feature
	wagersFeature     *wagers.Feature
	challengesFeature *challenges.Feature
	helpFeature       *help.Feature
}

func New(config Config, economy service.EconomyService, challengeService service.ChallengeService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	variant := economy.Variant()
	cooldowns := common.NewCooldowns(DefaultCooldowns)

	bot := &Bot{
		config:            config,
		session:           dg,
		variant:           variant,
		cooldowns:         cooldowns,
		balanceFeature:    balance.New(economy),
		wagersFeature:     wagers.New(economy),
		challengesFeature: challenges.New(challengeService, dg, eventBus),
		helpFeature:       help.New(commandInfos(variant), cooldowns),
	}

	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleComponents)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.WithFields(log.Fields{
			"user":   r.User.Username,
			"guilds": len(r.Guilds),
		}).Info("Discord session ready")
	})

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) registerCommands() error {
	for _, cmd := range Commands(b.variant) {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}
	log.WithField("guildID", b.config.GuildID).Info("Slash commands registered")
	return nil
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	if !b.checkCooldown(s, i, name) {
		return
	}

	switch name {
	case "register":
		b.balanceFeature.HandleRegister(s, i)
	case "balance":
		b.balanceFeature.HandleBalance(s, i)
	case "history":
		b.balanceFeature.HandleHistory(s, i)
	case "hilo":
		b.wagersFeature.HandleHiLo(s, i)
	case "two-up":
		b.wagersFeature.HandleTwoUp(s, i)
	case "color":
		b.challengesFeature.HandleColor(s, i)
	case "law":
		b.challengesFeature.HandleLaw(s, i)
	case "ping":
		b.helpFeature.HandlePing(s, i)
	case "help":
		b.helpFeature.HandleHelp(s, i)
	case "cooldowns":
		b.helpFeature.HandleCooldowns(s, i)
	}
}

func (b *Bot) handleComponents(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	if !b.challengesFeature.HandleInteraction(s, i) {
		log.WithField("customID", i.MessageComponentData().CustomID).Debug("Ignoring unknown component")
	}
}

// checkCooldown replies with the remaining wait and returns false while the user is cooling down
func (b *Bot) checkCooldown(s *discordgo.Session, i *discordgo.InteractionCreate, command string) bool {
	userID, err := common.InteractionUserID(i)
	if err != nil {
		return true
	}

	remaining, ok := b.cooldowns.Acquire(command, userID)
	if ok {
		return true
	}

	common.RespondWithMessage(s, i, CooldownMessage(remaining), true)
	return false
}

// CooldownMessage tells a user how long they have to wait
func CooldownMessage(remaining time.Duration) string {
	return fmt.Sprintf("⏰ This command is on cooldown. Try again in %s.", common.FormatDuration(remaining))
}
