package bot

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bwmarrin/discordgo"
	"github.com/wyu6609/pokedex/pkg/command"
	"go.uber.org/zap"
)

const failureMessage = "Something went wrong while handling that. Please try again."

type Bot struct {
	token    string
	session  *discordgo.Session
	commands map[string]command.Command
	logger   *zap.Logger
}

func New(token string, cmds map[string]command.Command, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Bot{
		token:    token,
		commands: cmds,
		logger:   logger,
	}
}

func (bot *Bot) Close() {
	bot.logger.Info("shutting down")
	if bot.session == nil {
		return
	}

	err := bot.session.Close()
	if err != nil {
		bot.logger.Error("error while closing discord session", zap.Error(err))
	}
}

var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrUnknownInteraction = errors.New("unknown interaction type")
)

// route finds the command an interaction belongs to, along with the button
// state for component interactions.
func (bot *Bot) route(interaction *discordgo.InteractionCreate) (command.Command, io.Reader, error) {
	var name string
	var state io.Reader
	switch interaction.Type {
	case discordgo.InteractionApplicationCommand, discordgo.InteractionApplicationCommandAutocomplete:
		name = interaction.ApplicationCommandData().Name
	case discordgo.InteractionMessageComponent:
		cmdName, reader, err := command.ParseCustomID(interaction.MessageComponentData().CustomID)
		if err != nil {
			return nil, nil, fmt.Errorf("could not parse button: %w", err)
		}
		name = cmdName
		state = reader
	default:
		return nil, nil, fmt.Errorf("interaction type %v: %w", interaction.Type, ErrUnknownInteraction)
	}

	cmd, ok := bot.commands[name]
	if !ok {
		return nil, nil, fmt.Errorf("command %q: %w", name, ErrUnknownCommand)
	}

	return cmd, state, nil
}

func (bot *Bot) dispatch(ctx context.Context, sess *discordgo.Session, interaction *discordgo.InteractionCreate) error {
	cmd, state, err := bot.route(interaction)
	if err != nil {
		return err
	}

	logger := bot.logger.With(
		zap.String("command", cmd.Name()),
		zap.String("guild", interaction.GuildID),
		zap.Stringer("type", interaction.Type),
	)
	logger.Debug("handling interaction")

	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		return cmd.Handle(ctx, sess, interaction)
	case discordgo.InteractionApplicationCommandAutocomplete:
		return cmd.Autocomplete(ctx, sess, interaction)
	default:
		return cmd.Button(ctx, sess, interaction, state)
	}
}

func (bot *Bot) handleInteraction(ctx context.Context) func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(sess *discordgo.Session, interaction *discordgo.InteractionCreate) {
		err := bot.dispatch(ctx, sess, interaction)
		if err == nil {
			return
		}

		bot.logger.Error("error while handling interaction", zap.Error(err))
		if interaction.Type == discordgo.InteractionApplicationCommandAutocomplete {
			return
		}

		err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: failureMessage,
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if err != nil {
			bot.logger.Warn("could not report failure to user", zap.Error(err))
		}
	}
}

func (bot *Bot) initialize(ctx context.Context) error {
	sess, err := discordgo.New("Bot " + bot.token)
	if err != nil {
		return fmt.Errorf("failed to instantiate discord bot: %w", err)
	}
	bot.session = sess

	bot.session.AddHandler(func(_ *discordgo.Session, ready *discordgo.Ready) {
		bot.logger.Info("connected to discord",
			zap.String("user", ready.User.Username),
			zap.Int("guilds", len(ready.Guilds)),
		)
	})
	bot.session.AddHandler(bot.handleInteraction(ctx))

	err = bot.session.Open()
	if err != nil {
		return fmt.Errorf("failed to start discord session: %w", err)
	}

	err = bot.registerCommands()
	if err != nil {
		return fmt.Errorf("error while registering commands: %w", err)
	}

	return nil
}

func (bot *Bot) Run(ctx context.Context) error {
	err := bot.initialize(ctx)
	if err != nil {
		return fmt.Errorf("error while initializing bot: %w", err)
	}
	defer bot.Close()

	bot.logger.Info("hosting pokedex bot", zap.Int("commands", len(bot.commands)))
	<-ctx.Done()

	return nil
}

func (bot *Bot) registerCommands() error {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(bot.commands))
	for _, cmd := range bot.commands {
		cmds = append(cmds, cmd.ApplicationCommand())
	}

	_, err := bot.session.ApplicationCommandBulkOverwrite(bot.session.State.User.ID, "", cmds)
	if err != nil {
		return fmt.Errorf("failed to register %d commands: %w", len(cmds), err)
	}

	return nil
}
