package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bidon15/popsign"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <signature>",
	Short: "Decode a transport-encoded signature envelope",
	Long: `Decode the base64url transport encoding and print the envelope
fields without verifying anything.

Example:
  popsign inspect eyJwdWJsaWNLZXkiOiIwMi4uLiJ9`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	env, err := popsign.DecodeEnvelope(args[0])
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(env)
	}

	fmt.Printf("Scheme:     %s\n", env.Scheme)
	fmt.Printf("Public Key: %s\n", env.PublicKey)
	fmt.Printf("Signature:  %s\n", env.Signature)

	return nil
}
