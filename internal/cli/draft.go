package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Draft mirrors the API's draft representation
type Draft struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	GameID    string      `json:"game_id"`
	Params    DraftParams `json:"params"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

// DraftParams mirrors the API's draft rule parameters
type DraftParams struct {
	Random     int `json:"random"`
	Bans       int `json:"bans"`
	LoserBans  int `json:"loser_bans"`
	LoserSlots int `json:"loser_slots"`
	Repick     int `json:"repick"`
}

func newDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Draft management commands",
	}

	cmd.AddCommand(newDraftCreateCmd())
	cmd.AddCommand(newDraftListCmd())
	cmd.AddCommand(newDraftGetCmd())
	cmd.AddCommand(newDraftDeleteCmd())

	return cmd
}

func newDraftCreateCmd() *cobra.Command {
	var (
		password string
		gameID   string
		params   DraftParams
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name":     args[0],
				"password": password,
				"game_id":  gameID,
				"params":   params,
			}

			var result Draft
			if err := client.Post("/api/v1/drafts", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Draft password")
	cmd.Flags().StringVar(&gameID, "game", "coe5", "Game id (coe5, civ6)")
	cmd.Flags().IntVar(&params.Random, "random", 0, "Characters offered to each player per round")
	cmd.Flags().IntVar(&params.Bans, "bans", 0, "Bans per player before drafting")
	cmd.Flags().IntVar(&params.LoserBans, "loser-bans", 0, "Rounds a loser's character stays banned for them")
	cmd.Flags().IntVar(&params.LoserSlots, "loser-slots", 0, "Extra allocation slots granted on a loss")
	cmd.Flags().IntVar(&params.Repick, "repick", 0, "Skips allowed per player, 0 locks the first pick")

	return cmd
}

func newDraftListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Draft
			if err := client.Get("/api/v1/drafts", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newDraftGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get draft details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Draft
			if err := client.Get(fmt.Sprintf("/api/v1/drafts/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newDraftDeleteCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"password": password}
			if err := client.Delete(fmt.Sprintf("/api/v1/drafts/%s", args[0]), req); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Draft deleted")
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Draft password")

	return cmd
}
