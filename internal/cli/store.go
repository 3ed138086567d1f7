package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/vogue_nest/internal/repo"
	"github.com/Skotchmaster/vogue_nest/internal/util"
)

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed users and products that are missing or unreadable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := openApp(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Init(ctx, force); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Seeded")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite populated collections")
	return cmd
}

func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Overwrite users and products with the seed data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := openApp(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.ResetAll(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Reset")
			return nil
		},
	}
}

func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the stored products and users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := openApp(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			snap, err := a.store.Dump(ctx)
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}
			return writeSnapshotText(cmd.OutOrStdout(), snap)
		},
	}
}

func writeSnapshotText(w io.Writer, snap repo.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "PRODUCTS (%d)\n", len(snap.Products))
	fmt.Fprintln(tw, "ID\tSLUG\tCATEGORY\tPRICE")
	for _, p := range snap.Products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Slug, p.Category, util.Currency(p.Price))
	}

	fmt.Fprintf(tw, "\nUSERS (%d)\n", len(snap.Users))
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLE")
	for _, u := range snap.Users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.UserName, u.Email, u.Role)
	}
	return tw.Flush()
}
