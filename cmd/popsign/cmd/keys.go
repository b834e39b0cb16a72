package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage stored key pairs",
	Long: `Keystore management commands.

Examples:
  popsign keys list
  popsign keys show device-main
  popsign keys delete device-main`,
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored keys",
	RunE:  runKeysList,
}

var keysShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a stored key",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysShow,
}

var keysDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored key",
	Long: `Delete a key pair from the keystore. This action cannot be undone.

Signatures already produced with the key remain verifiable; new
payloads can no longer be signed with it.`,
	Args: cobra.ExactArgs(1),
	RunE: runKeysDelete,
}

func init() {
	keysShowCmd.Flags().Bool("show-private", false, "also print the private key")
	keysDeleteCmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")

	keysCmd.AddCommand(keysListCmd)
	keysCmd.AddCommand(keysShowCmd)
	keysCmd.AddCommand(keysDeleteCmd)

	rootCmd.AddCommand(keysCmd)
}

func runKeysList(cmd *cobra.Command, args []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}

	entries := store.List()

	if jsonOut {
		public := make([]map[string]interface{}, len(entries))
		for i, e := range entries {
			public[i] = map[string]interface{}{
				"id":         e.ID,
				"name":       e.Name,
				"scheme":     e.Scheme,
				"publicKey":  e.PublicKey,
				"created_at": e.CreatedAt,
			}
		}
		return printJSON(map[string]interface{}{
			"keys":  public,
			"count": len(public),
		})
	}

	if len(entries) == 0 {
		fmt.Println("No keys found")
		return nil
	}

	w := newTable()
	printTableHeader(w, "NAME", "SCHEME", "PUBLIC KEY", "CREATED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.Name,
			e.Scheme,
			truncate(e.PublicKey, 20),
			e.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func runKeysShow(cmd *cobra.Command, args []string) error {
	name := args[0]
	showPrivate, _ := cmd.Flags().GetBool("show-private")

	store, err := getStore()
	if err != nil {
		return err
	}
	entry, err := store.Get(name)
	if err != nil {
		return err
	}

	if jsonOut {
		out := map[string]interface{}{
			"id":         entry.ID,
			"name":       entry.Name,
			"scheme":     entry.Scheme,
			"publicKey":  entry.PublicKey,
			"created_at": entry.CreatedAt,
		}
		if showPrivate {
			out["privateKey"] = entry.PrivateKey
		}
		return printJSON(out)
	}

	fmt.Printf("ID:         %s\n", entry.ID)
	fmt.Printf("Name:       %s\n", entry.Name)
	fmt.Printf("Scheme:     %s\n", entry.Scheme)
	fmt.Printf("Public Key: %s\n", entry.PublicKey)
	if showPrivate {
		fmt.Printf("Private Key: %s\n", entry.PrivateKey)
	}
	fmt.Printf("Created:    %s\n", entry.CreatedAt.Format("2006-01-02 15:04:05"))

	return nil
}

func runKeysDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		fmt.Printf("%s Are you sure you want to delete key %s? [y/N]: ", colorYellow("⚠"), name)
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	store, err := getStore()
	if err != nil {
		return err
	}
	if err := store.Delete(name); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]string{
			"status":  "deleted",
			"message": fmt.Sprintf("Key %s deleted", name),
		})
	}

	fmt.Printf("%s Key deleted: %s\n", colorGreen("✓"), name)
	return nil
}
