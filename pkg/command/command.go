package command

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/bwmarrin/discordgo"
)

type (
	Command interface {
		ApplicationCommand() *discordgo.ApplicationCommand
		Handle(context.Context, *discordgo.Session, *discordgo.InteractionCreate) error
		Autocomplete(context.Context, *discordgo.Session, *discordgo.InteractionCreate) error
		Button(context.Context, *discordgo.Session, *discordgo.InteractionCreate, io.Reader) error
		Name() string
	}

	action interface {
		Name() byte
	}

	handler[S any, T any] func(context.Context, *discordgo.InteractionCreate, S) (T, error)
	followUp[T any]       struct {
		Options T
	}
	paginator[T any] struct {
		Options T
		Page    int
	}

	command[T any] struct {
		applicationCommand *discordgo.ApplicationCommand
		handle             handler[*T, *discordgo.InteractionResponseData]
		autocomplete       handler[*T, []*discordgo.ApplicationCommandOptionChoice]
		paginate           handler[paginator[T], *discordgo.InteractionResponseData]
	}
)

func (paginator[T]) Name() byte {
	return 'p'
}

func (followUp[T]) Name() byte {
	return 'f'
}

const (
	customIDSeparator = ":"
	maxCustomIDLength = 100
)

var (
	ErrCustomIDTooLong = errors.New("custom id exceeds discord limit")
	ErrCustomIDFormat  = errors.New("malformed custom id")
)

// customID packs a button action for the named command. A random suffix keeps
// ids unique when two buttons on one message carry the same state.
func customID(cmdName string, a action) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte(a.Name())

	err := marshal(&buf, a)
	if err != nil {
		return "", fmt.Errorf("failed to marshal button data: %w", err)
	}

	var nonce [4]byte
	_, err = rand.Read(nonce[:])
	if err != nil {
		return "", fmt.Errorf("failed to generate button nonce: %w", err)
	}
	buf.Write(nonce[:])

	id := cmdName + customIDSeparator + base64.RawURLEncoding.EncodeToString(buf.Bytes())
	if len(id) > maxCustomIDLength {
		return "", fmt.Errorf("custom id for command %q has length %d: %w", cmdName, len(id), ErrCustomIDTooLong)
	}

	return id, nil
}

// ParseCustomID splits a component custom id into the owning command's name
// and a reader over the packed button state.
func ParseCustomID(id string) (string, io.Reader, error) {
	name, payload, ok := strings.Cut(id, customIDSeparator)
	if !ok || name == "" {
		return "", nil, fmt.Errorf("no command name in custom id %q: %w", id, ErrCustomIDFormat)
	}

	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("could not decode custom id %q: %w", id, ErrCustomIDFormat)
	}

	return name, bytes.NewReader(data), nil
}

func buttonState[T action](reader io.Reader) (*T, error) {
	state, err := unmarshal[T](reader)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal button state: %w", err)
	}

	return state, nil
}

func (cmd command[T]) ApplicationCommand() *discordgo.ApplicationCommand {
	return cmd.applicationCommand
}

func (cmd command[T]) Name() string {
	return cmd.applicationCommand.Name
}

var ErrUnrecognizedInteraction = errors.New("could not handle interaction")

func (cmd command[T]) responseBody(
	ctx context.Context,
	interaction *discordgo.InteractionCreate,
	opt T,
) (*discordgo.InteractionResponseData, error) {
	switch {
	case cmd.handle != nil:
		body, err := cmd.handle(ctx, interaction, &opt)
		if err != nil {
			return nil, fmt.Errorf("error while calling handler: %w", err)
		}

		return body, nil
	case cmd.paginate != nil:
		body, err := cmd.paginate(ctx, interaction, paginator[T]{Options: opt, Page: 1})
		if err != nil {
			return nil, fmt.Errorf("error while calling pagination handler: %w", err)
		}

		return body, nil
	default:
		return nil, fmt.Errorf("no handler for command: %w", ErrUnrecognizedInteraction)
	}
}

func (cmd command[T]) Handle(
	ctx context.Context,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) error {
	data := interaction.ApplicationCommandData()

	var structure T
	err := decodeOptions(data.Options, &structure)
	if err != nil {
		return fmt.Errorf("error while decoding options for command %q: %w", data.Name, err)
	}

	body, err := cmd.responseBody(ctx, interaction, structure)
	if err != nil {
		return fmt.Errorf("could not handle command %q: %w", cmd.Name(), err)
	}

	err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: body,
	})
	if err != nil {
		return fmt.Errorf("error while responding to command %q: %w", cmd.Name(), err)
	}

	return nil
}

// buttonResponse decodes the action at the head of reader and builds the
// response it calls for.
func (cmd command[T]) buttonResponse(
	ctx context.Context,
	interaction *discordgo.InteractionCreate,
	reader io.Reader,
) (*discordgo.InteractionResponse, error) {
	var action [1]byte
	_, err := io.ReadFull(reader, action[:])
	if err != nil {
		return nil, fmt.Errorf("could not read action from button state: %w", err)
	}

	switch action[0] {
	case paginator[T]{}.Name():
		if cmd.paginate == nil {
			return nil, fmt.Errorf("command %q does not paginate: %w", cmd.Name(), ErrUnrecognizedInteraction)
		}

		page, err := buttonState[paginator[T]](reader)
		if err != nil {
			return nil, fmt.Errorf("error while deserializing pagination data: %w", err)
		}

		body, err := cmd.paginate(ctx, interaction, *page)
		if err != nil {
			return nil, fmt.Errorf("error while calling pagination handler: %w", err)
		}

		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: body,
		}, nil
	case followUp[T]{}.Name():
		s, err := buttonState[followUp[T]](reader)
		if err != nil {
			return nil, fmt.Errorf("error while deserializing follow-up data: %w", err)
		}

		body, err := cmd.responseBody(ctx, interaction, s.Options)
		if err != nil {
			return nil, fmt.Errorf("could not handle command %q: %w", cmd.Name(), err)
		}

		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: body,
		}, nil
	default:
		return nil, fmt.Errorf("unknown button action %q: %w", action[0], ErrUnrecognizedInteraction)
	}
}

func (cmd command[T]) Button(
	ctx context.Context,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	reader io.Reader,
) error {
	resp, err := cmd.buttonResponse(ctx, interaction, reader)
	if err != nil {
		return err
	}

	err = sess.InteractionRespond(interaction.Interaction, resp)
	if err != nil {
		return fmt.Errorf("failed to respond to button for command %q: %w", cmd.Name(), err)
	}

	return nil
}

func (cmd command[T]) Autocomplete(
	ctx context.Context,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) error {
	if cmd.autocomplete == nil {
		return fmt.Errorf("command %q has no autocompletion: %w", cmd.Name(), ErrUnrecognizedInteraction)
	}

	var structure T
	err := decodeOptions(interaction.ApplicationCommandData().Options, &structure)
	if err != nil {
		return fmt.Errorf("error while decoding options for autocomplete: %w", err)
	}

	choices, err := cmd.autocomplete(ctx, interaction, &structure)
	if err != nil {
		return fmt.Errorf("error while calling autocompletion handler: %w", err)
	}

	err = sess.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		return fmt.Errorf("error while sending autocompletions: %w", err)
	}

	return nil
}

var ErrDecodeOption = errors.New("error while decoding options")

type discordValue interface {
	string | int | bool
}

type discordField[T discordValue] struct {
	Value   T
	Focused bool
}

var fieldTypes = map[reflect.Type]bool{
	reflect.TypeOf(discordField[string]{}): true,
	reflect.TypeOf(discordField[int]{}):    true,
	reflect.TypeOf(discordField[bool]{}):   true,
}

// decodeOptions fills the fields of structure tagged with `option:"name"` from
// the interaction options. Pointer fields stay nil when the option is absent;
// subcommands decode into nested structs.
func decodeOptions(options []*discordgo.ApplicationCommandInteractionDataOption, structure any) (ret error) {
	defer func() {
		r := recover()
		if err, ok := r.(*reflect.ValueError); ok {
			ret = fmt.Errorf("reflection error while decoding options: %v: %w", err.Error(), ErrDecodeOption)
		} else if r != nil {
			panic(r)
		}
	}()

	value := reflect.Indirect(reflect.ValueOf(structure))
	if !value.CanAddr() || value.Kind() != reflect.Struct {
		return fmt.Errorf("value is not an addressable struct: %w", ErrDecodeOption)
	}

	m := make(map[string]reflect.Value, value.NumField())
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		tfield := value.Type().Field(i)
		option := tfield.Tag.Get("option")
		if option == "" {
			continue
		}

		if !field.CanSet() {
			return fmt.Errorf("field %q cannot be set: %w", tfield.Name, ErrDecodeOption)
		}
		m[option] = field
	}

	for _, option := range options {
		field, ok := m[option.Name]
		if !ok {
			return fmt.Errorf("unexpected option name %q: %w", option.Name, ErrDecodeOption)
		}

		if field.Kind() == reflect.Pointer {
			ptr := reflect.New(field.Type().Elem())
			field.Set(ptr)

			field = ptr.Elem()
		}
		if field.Kind() == reflect.Struct && fieldTypes[field.Type()] {
			field.FieldByName("Focused").SetBool(option.Focused)
			field = field.FieldByName("Value")
		}

		switch option.Type {
		case discordgo.ApplicationCommandOptionString:
			if field.Kind() == reflect.String {
				field.SetString(option.StringValue())
				continue
			}
		case discordgo.ApplicationCommandOptionInteger:
			if field.Kind() == reflect.Int {
				field.SetInt(option.IntValue())
				continue
			}
		case discordgo.ApplicationCommandOptionBoolean:
			if field.Kind() == reflect.Bool {
				field.SetBool(option.BoolValue())
				continue
			}
		case discordgo.ApplicationCommandOptionSubCommand:
			if field.Kind() == reflect.Struct {
				err := decodeOptions(option.Options, field.Addr().Interface())
				if err != nil {
					return fmt.Errorf("error while decoding options for subcommand %q: %w", option.Name, err)
				}

				continue
			}
		default:
			return fmt.Errorf("unsupported type %q for option %q: %w", option.Type, option.Name, ErrDecodeOption)
		}
		return fmt.Errorf("unexpected type %q for option %q: %w", option.Type, option.Name, ErrDecodeOption)
	}

	return nil
}
