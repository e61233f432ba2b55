package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dgc-network/smart/internal/app"
	"github.com/dgc-network/smart/internal/core/handler"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/event"
	"github.com/dgc-network/smart/pkg/types"
)

var (
	applyPayload   string
	applySigner    string
	applySignature string
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply one transaction to the local state store",
	Long: `Apply decodes the payload envelope, runs it through the transaction
handler and commits the resulting state only when the transaction is accepted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(applyPayload)
		if err != nil {
			return fmt.Errorf("read payload: %w", err)
		}
		request := &types.ProcessRequest{
			Header: types.TransactionHeader{
				SignerPublicKey: applySigner,
				FamilyName:      handler.FamilyName,
				FamilyVersion:   handler.FamilyVersion,
			},
			Payload:   data,
			Signature: applySignature,
		}

		return withApp(func(a *app.App) error {
			printExecution := func(evt *types.ContractExecutionEvent) {
				if evt.HasResult {
					pterm.Info.Printfln("contract %s %s returned %d in %s", evt.Name, evt.Version, evt.ReturnCode, evt.Duration)
				} else {
					pterm.Info.Printfln("contract %s %s returned no result", evt.Name, evt.Version)
				}
			}
			topic := event.EventType(types.TopicContractExecuted)
			if err := a.Events.Subscribe(topic, printExecution); err != nil {
				return err
			}
			defer a.Events.Unsubscribe(topic, printExecution)

			if err := a.Apply(context.Background(), request); err != nil {
				if types.IsInternalError(err) {
					return fmt.Errorf("internal error: %w", err)
				}
				return fmt.Errorf("invalid transaction: %w", err)
			}
			pterm.Success.Println("transaction applied")
			return nil
		})
	},
}

func init() {
	applyCmd.Flags().StringVarP(&applyPayload, "payload", "p", "", "payload envelope file")
	applyCmd.Flags().StringVarP(&applySigner, "signer", "s", "", "signer public key")
	applyCmd.Flags().StringVar(&applySignature, "signature", "", "transaction signature passed to contracts")
	_ = applyCmd.MarkFlagRequired("payload")
	_ = applyCmd.MarkFlagRequired("signer")
}
