package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Player mirrors the API's roster entry
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	State    string `json:"state"`
	Disabled bool   `json:"disabled"`
	Locked   *struct {
		ID     string `json:"id"`
		Amount int    `json:"amount"`
	} `json:"locked"`
	Banned     []string `json:"banned"`
	LoserSlots int      `json:"loser_slots"`
}

func newPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players <draft-id>",
		Short: "Show a draft's roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player
			if err := client.Get(fmt.Sprintf("/api/v1/drafts/%s/players", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(result)
				return nil
			}

			if len(result) == 0 {
				out.PrintMessage("No players yet")
				return nil
			}
			for _, p := range result {
				line := fmt.Sprintf("%-16s %-10s %-10s", p.Name, p.Color, p.State)
				if p.Locked != nil {
					line += fmt.Sprintf(" locked=%s", p.Locked.ID)
				}
				if p.Disabled {
					line += " (disabled)"
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newCharactersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "characters <game-id>",
		Short: "List a game's character catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []string
			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/characters", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(result)
				return nil
			}
			for _, id := range result {
				fmt.Println(id)
			}
			return nil
		},
	}
}
