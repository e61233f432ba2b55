package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dgc-network/smart/internal/core/payload"
	"github.com/dgc-network/smart/pkg/protocol"
)

var (
	payloadFile string
	payloadOut  string
)

var payloadCmd = &cobra.Command{
	Use:   "payload",
	Short: "Encode and inspect action payloads",
}

var payloadEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a JSON action description into a payload envelope",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(payloadFile)
		if err != nil {
			return fmt.Errorf("read action description: %w", err)
		}
		encoded, err := encodeActionFile(data, filepath.Dir(payloadFile))
		if err != nil {
			return err
		}
		if err := os.WriteFile(payloadOut, encoded, 0644); err != nil {
			return fmt.Errorf("write payload: %w", err)
		}
		pterm.Success.Printfln("wrote %d byte payload to %s", len(encoded), payloadOut)
		return nil
	},
}

var payloadDecodeCmd = &cobra.Command{
	Use:   "decode <payload-file>",
	Short: "Decode a payload envelope and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read payload: %w", err)
		}
		action, err := payload.Decode(data)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(describeAction(action), "", "  ")
		if err != nil {
			return err
		}
		pterm.Println(string(out))
		return nil
	},
}

// encodeActionFile validates the described action the way the handler
// would and returns its envelope.
func encodeActionFile(data []byte, baseDir string) ([]byte, error) {
	var description actionFile
	if err := json.Unmarshal(data, &description); err != nil {
		return nil, fmt.Errorf("parse action description: %w", err)
	}
	action, err := description.toAction(baseDir)
	if err != nil {
		return nil, err
	}
	if err := payload.Validate(action); err != nil {
		return nil, err
	}
	return protocol.EncodePayload(action)
}

func init() {
	payloadEncodeCmd.Flags().StringVarP(&payloadFile, "file", "f", "", "JSON action description")
	payloadEncodeCmd.Flags().StringVarP(&payloadOut, "out", "o", "payload.bin", "output file")
	_ = payloadEncodeCmd.MarkFlagRequired("file")

	payloadCmd.AddCommand(payloadEncodeCmd)
	payloadCmd.AddCommand(payloadDecodeCmd)
}
