package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/adedotun/medprep/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all saved data",
	Long:  "Erase quiz history, saved guides, reminders, and preferences from the local database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Print("This erases all quiz history, saved guides, reminders, and preferences. Continue? [y/N] ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		keys, err := st.Keys()
		if err != nil {
			return fmt.Errorf("list keys: %w", err)
		}
		if err := st.Clear(); err != nil {
			return fmt.Errorf("clear store: %w", err)
		}
		fmt.Printf("Erased %d saved entries.\n", len(keys))
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")
}
