package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bidon15/popsign"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a transport-encoded signature against a payload",
	Long: `Decode a signature envelope and verify it against a payload.

The envelope carries its own public key and scheme, so no keystore
entry is needed.

Examples:
  popsign verify --signature <sig> --payload '{"device":"abc"}'
  cat request.json | popsign verify --signature <sig>`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringP("signature", "s", "", "transport-encoded signature (required)")
	verifyCmd.Flags().StringP("payload", "p", "", "payload that was signed")
	verifyCmd.Flags().String("payload-file", "", "file containing the payload")
	verifyCmd.MarkFlagRequired("signature")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	signature, _ := cmd.Flags().GetString("signature")

	payload, err := readPayload(cmd)
	if err != nil {
		return err
	}

	env, err := popsign.DecodeEnvelope(signature)
	if err != nil {
		return err
	}

	signer, err := popsign.NewSigner(env.Scheme)
	if err != nil {
		return err
	}

	result, err := signer.Verify(signature, payload)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(result)
	}

	if result.Valid {
		fmt.Printf("%s Signature is VALID\n\n", colorGreen("✓"))
	} else {
		fmt.Printf("%s Signature is INVALID\n\n", colorRed("✗"))
	}
	fmt.Printf("  Scheme:       %s\n", result.Scheme)
	fmt.Printf("  Public Key:   %s\n", result.PublicKey)
	fmt.Printf("  Payload Hash: %s\n", result.PayloadHash)

	if !result.Valid {
		return fmt.Errorf("signature does not verify")
	}
	return nil
}
