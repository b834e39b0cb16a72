package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Bidon15/popsign"
)

var signCmd = &cobra.Command{
	Use:   "sign <name>",
	Short: "Sign a payload with a stored key",
	Long: `Sign a payload with the named key from the keystore and print the
transport-encoded signature envelope.

The payload comes from --payload, --payload-file, or stdin.

Examples:
  popsign sign device-main --payload '{"device":"abc"}'
  popsign sign device-main --payload-file request.json
  cat request.json | popsign sign device-main`,
	Args: cobra.ExactArgs(1),
	RunE: runSign,
}

func init() {
	signCmd.Flags().StringP("payload", "p", "", "payload to sign")
	signCmd.Flags().String("payload-file", "", "file containing the payload")

	rootCmd.AddCommand(signCmd)
}

func runSign(cmd *cobra.Command, args []string) error {
	name := args[0]

	payload, err := readPayload(cmd)
	if err != nil {
		return err
	}

	store, err := getStore()
	if err != nil {
		return err
	}
	entry, err := store.Get(name)
	if err != nil {
		return err
	}

	signer, err := popsign.NewSigner(entry.Scheme)
	if err != nil {
		return err
	}

	result, err := signer.Sign(payload, entry.PrivateKey, entry.PublicKey)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(result)
	}

	fmt.Printf("%s Payload signed\n\n", colorGreen("✓"))
	fmt.Printf("  Scheme:       %s\n", result.Details.Scheme)
	fmt.Printf("  Public Key:   %s\n", result.Details.PublicKey)
	fmt.Printf("  Payload Hash: %s\n", result.Details.PayloadHash)
	fmt.Printf("  Raw Sig:      %s\n", truncate(result.Details.Signature, 64))
	fmt.Printf("\nSignature:\n%s\n", result.Signature)

	return nil
}

// readPayload resolves the payload from flags or stdin.
func readPayload(cmd *cobra.Command) (string, error) {
	payload, _ := cmd.Flags().GetString("payload")
	payloadFile, _ := cmd.Flags().GetString("payload-file")

	if payload != "" && payloadFile != "" {
		return "", fmt.Errorf("--payload and --payload-file are mutually exclusive")
	}
	if cmd.Flags().Changed("payload") {
		return payload, nil
	}
	if payloadFile != "" {
		data, err := os.ReadFile(payloadFile)
		if err != nil {
			return "", fmt.Errorf("failed to read payload file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read payload from stdin: %w", err)
	}
	return string(data), nil
}
