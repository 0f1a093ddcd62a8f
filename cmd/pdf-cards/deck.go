// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-cards/internal/deck"
)

func newDeckCmd(v *viper.Viper) *cobra.Command {
	deckCmd := &cobra.Command{
		Use:   "deck",
		Short: "Inspect decks recorded with --deck_db",
		Long: `Deck reads the SQLite database written by runs that pass --deck_db.
Use subcommands to list recorded decks or print one of them.`,
	}
	deckCmd.PersistentFlags().String("deck_db", "", "deck database (default: deck_db from config)")

	// --- list subcommand ---

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded decks, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openDeckStore(cmd, v)
			if err != nil {
				return err
			}
			defer store.Close()

			decks, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(decks) == 0 {
				fmt.Fprintln(out, "No decks recorded.")
				return nil
			}
			fmt.Fprintf(out, "%-36s  %-20s  %-5s  %-20s  %s\n", "ID", "Name", "Cards", "Created", "Source")
			for _, d := range decks {
				name := d.Name
				if len(name) > 20 {
					name = name[:17] + "..."
				}
				fmt.Fprintf(out, "%-36s  %-20s  %-5d  %-20s  %s\n",
					d.ID, name, d.CardCount, d.CreatedAt.Format("2006-01-02 15:04:05"), d.Source)
			}
			return nil
		},
	}

	// --- show subcommand ---

	showCmd := &cobra.Command{
		Use:   "show <deck-id>",
		Short: "Print a recorded deck as YAML or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")

			store, err := openDeckStore(cmd, v)
			if err != nil {
				return err
			}
			defer store.Close()

			d, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			switch format {
			case "yaml", "":
				return deck.WriteYAML(cmd.OutOrStdout(), d)
			case "json":
				return deck.WriteJSON(cmd.OutOrStdout(), d)
			default:
				return fmt.Errorf("unsupported format %q: use yaml or json", format)
			}
		},
	}
	showCmd.Flags().String("format", "yaml", "output format: yaml or json")

	deckCmd.AddCommand(listCmd)
	deckCmd.AddCommand(showCmd)
	return deckCmd
}

// openDeckStore opens the database named by --deck_db, falling back to the
// deck_db config key.
func openDeckStore(cmd *cobra.Command, v *viper.Viper) (*deck.Store, error) {
	path, _ := cmd.Flags().GetString("deck_db")
	if path == "" {
		path = v.GetString("deck_db")
	}
	if path == "" {
		return nil, fmt.Errorf("no deck database: pass --deck_db or set deck_db in the config file")
	}
	return deck.Open(path)
}
