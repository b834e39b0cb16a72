package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bidon15/popsign"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen <name>",
	Short: "Generate a new signing key pair",
	Long: `Generate a fresh ECDSA key pair and store it in the keystore
under the given name.

The private key is printed once; afterwards it only lives in the
keystore file.

Examples:
  popsign keygen device-main
  popsign keygen k1-key --scheme SIGNATURE_SCHEME_SECP256K1`,
	Args: cobra.ExactArgs(1),
	RunE: runKeygen,
}

func init() {
	keygenCmd.Flags().String("scheme", popsign.DefaultScheme, "signature scheme")
	keygenCmd.Flags().Bool("no-store", false, "print the pair without storing it")

	rootCmd.AddCommand(keygenCmd)
}

func runKeygen(cmd *cobra.Command, args []string) error {
	name := args[0]

	scheme, _ := cmd.Flags().GetString("scheme")
	noStore, _ := cmd.Flags().GetBool("no-store")

	signer, err := popsign.NewSigner(scheme)
	if err != nil {
		return err
	}

	pair, err := signer.GenerateKeyPair()
	if err != nil {
		return err
	}

	if !noStore {
		store, err := getStore()
		if err != nil {
			return err
		}
		if _, err := store.Add(name, pair); err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"name":       name,
			"scheme":     pair.Scheme,
			"publicKey":  pair.PublicKey,
			"privateKey": pair.PrivateKey,
			"stored":     !noStore,
		})
	}

	fmt.Printf("%s Key pair generated\n\n", colorGreen("✓"))
	fmt.Printf("  Name:        %s\n", name)
	fmt.Printf("  Scheme:      %s\n", pair.Scheme)
	fmt.Printf("  Public Key:  %s\n", pair.PublicKey)
	fmt.Printf("  Private Key: %s\n", pair.PrivateKey)
	fmt.Printf("\n%s Store the private key securely. It will not be shown again.\n", colorYellow("⚠"))

	return nil
}
