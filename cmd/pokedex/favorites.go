package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/wyu6609/pokedex/pkg/favorites"
	"github.com/wyu6609/pokedex/pkg/format"
)

var (
	ErrInvalidID  = errors.New("invalid pokemon id")
	ErrNoDatabase = errors.New("no database path configured")
)

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a positive number: %w", arg, ErrInvalidID)
	}

	return id, nil
}

func printIDs(cmd *cobra.Command, ids []int) {
	w := cmd.OutOrStdout()
	if len(ids) == 0 {
		fmt.Fprintln(w, "No favorites.")
		return
	}

	for _, id := range ids {
		fmt.Fprintln(w, format.PokemonID(id))
	}
}

// favoritesAction wires a subcommand taking one pokemon id to a store operation.
func (a *app) favoritesAction(use string, short string, act func(cmd *cobra.Command, store *favorites.Store, id int)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			store, release, err := a.openFavorites(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			act(cmd, store, id)
			return nil
		},
	}
}

func (a *app) favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage the command line favorites",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List favorite pokemon ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, release, err := a.openFavorites(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			printIDs(cmd, store.All(cmd.Context(), cliScope))
			return nil
		},
	}

	add := a.favoritesAction("add", "Add a pokemon to favorites", func(cmd *cobra.Command, store *favorites.Store, id int) {
		printIDs(cmd, store.Add(cmd.Context(), cliScope, id))
	})
	remove := a.favoritesAction("remove", "Remove a pokemon from favorites", func(cmd *cobra.Command, store *favorites.Store, id int) {
		printIDs(cmd, store.Remove(cmd.Context(), cliScope, id))
	})
	toggle := a.favoritesAction("toggle", "Add a pokemon if absent, remove it otherwise", func(cmd *cobra.Command, store *favorites.Store, id int) {
		ids, added := store.Toggle(cmd.Context(), cliScope, id)
		verb := "Removed"
		if added {
			verb = "Added"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s.\n", verb, format.PokemonID(id))
		printIDs(cmd, ids)
	})

	clearAll := &cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, release, err := a.openFavorites(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			store.Clear(cmd.Context(), cliScope)
			printIDs(cmd, store.All(cmd.Context(), cliScope))
			return nil
		},
	}

	owners := &cobra.Command{
		Use:   "owners",
		Short: "List every owner with stored favorites, Discord users included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.DB.Path == "" {
				return fmt.Errorf("error while listing favorites owners: %w", ErrNoDatabase)
			}

			db, err := a.openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			scopes, err := db.Scopes(cmd.Context(), favorites.Key)
			if err != nil {
				return fmt.Errorf("error while listing favorites owners: %w", err)
			}
			for _, scope := range scopes {
				fmt.Fprintln(cmd.OutOrStdout(), scope)
			}

			return nil
		},
	}

	cmd.AddCommand(list, add, remove, toggle, clearAll, owners)
	return cmd
}
