package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wyu6609/pokedex/pkg/bot"
	"github.com/wyu6609/pokedex/pkg/command"
	"github.com/wyu6609/pokedex/pkg/pokeapi"
)

func (a *app) botCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Discord bot until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			err := a.cfg.RequireToken()
			if err != nil {
				return err
			}

			store, release, err := a.openFavorites(ctx)
			if err != nil {
				return err
			}
			defer release()

			client := pokeapi.New(a.cfg.API, a.logger.Named("pokeapi"))
			defer client.Close()

			cat, err := a.loadCatalog(ctx, client)
			if err != nil {
				return err
			}

			builder := command.NewBuilder(command.Resources{
				Catalog:   cat,
				Favorites: store,
				Species:   client,
			}, *a.cfg, a.logger.Named("command"))

			cmds, err := builder.All(ctx)
			if err != nil {
				return fmt.Errorf("error while building commands: %w", err)
			}

			return bot.New(a.cfg.Discord.Token, cmds, a.logger.Named("bot")).Run(ctx)
		},
	}
}
