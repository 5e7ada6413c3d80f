package wallet

import (
	"fmt"
	"math/big"

	"github.com/Bridgeless-Project/ton-kit/cmd/utils"
	"github.com/Bridgeless-Project/ton-kit/internal/api/resources"
	"github.com/Bridgeless-Project/ton-kit/internal/chain/ton"
	"github.com/Bridgeless-Project/ton-kit/pkg/encoding"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/actions"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv1"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv2"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv3"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv4"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv5beta"
	"github.com/Bridgeless-Project/ton-kit/pkg/wallet/walletv5r1"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const (
	generationFlag = "generation"
	toFlag         = "to"
	amountFlag     = "amount"
	bounceFlag     = "bounce"
	modeFlag       = "mode"
	payloadFlag    = "payload"
	seqnoFlag      = "seqno"
	validUntilFlag = "valid-until"
	authFlag       = "auth"
	networkFlag    = "network"
	workchainFlag  = "workchain"
	walletIDFlag   = "wallet-id"
	queryIDFlag    = "query-id"
	signFlag       = "sign"
	seedFlag       = "seed"
	fetchSeqnoFlag = "fetch-seqno"
)

func init() {
	utils.RegisterConfigFlag(transferCmd)
	utils.RegisterEncodingFlag(transferCmd)

	f := transferCmd.Flags()
	f.StringP(generationFlag, "g", string(resources.GenerationV5R1), "Wallet generation: v1, v2, v3, v4, v5beta or v5r1")
	f.String(toFlag, "", "Destination address")
	f.String(amountFlag, "0", "Amount in nanotons")
	f.Bool(bounceFlag, true, "Bounce the message if the destination fails")
	f.Uint8(modeFlag, uint8(actions.SendModePayGasSeparately|actions.SendModeIgnoreErrors), "Send mode")
	f.String(payloadFlag, "", "Message body as a BOC in the selected encoding")
	f.Uint32(seqnoFlag, 0, "Wallet seqno")
	f.Uint32(validUntilFlag, 0, "Expiration unix time, now + 60s if zero")
	f.String(authFlag, string(wallet.AuthExternal), "Auth type for v5 wallets: external, internal or extension")
	f.Int32P(networkFlag, "n", walletv5r1.MainnetGlobalID, "Network global id")
	f.Int8P(workchainFlag, "w", 0, "Wallet workchain")
	f.Uint32(walletIDFlag, walletv4.DefaultWalletID, "v3 and v4 wallet id")
	f.Uint64(queryIDFlag, 0, "Query id of v5r1 extension requests")
	f.Bool(signFlag, false, "Sign with the wallet key stored in Vault")
	f.String(seedFlag, "", "0x-prefixed ed25519 seed to sign with instead of Vault")
	f.Bool(fetchSeqnoFlag, false, "Read the seqno of the configured wallet from lite servers")

	_ = transferCmd.MarkFlagRequired(toFlag)
}

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Builds a wallet request body carrying one transfer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()

		rawGen, _ := f.GetString(generationFlag)
		gen, err := resources.ParseGeneration(rawGen)
		if err != nil {
			return err
		}
		enc, err := utils.EncodingFromFlags(cmd)
		if err != nil {
			return err
		}

		msg, mode, err := messageFromFlags(cmd, enc)
		if err != nil {
			return err
		}

		signer, err := signerFromFlags(cmd)
		if err != nil {
			return err
		}

		seqno, err := seqnoFromFlags(cmd)
		if err != nil {
			return err
		}
		validUntil, _ := f.GetUint32(validUntilFlag)
		network, _ := f.GetInt32(networkFlag)
		workchain, _ := f.GetInt8(workchainFlag)
		rawAuth, _ := f.GetString(authFlag)
		auth := wallet.AuthType(rawAuth)

		batch := actions.Batch{Mode: mode, Messages: []*cell.Cell{msg.Message}}

		var body *cell.Cell
		switch gen {
		case resources.GenerationV1:
			body, err = walletv1.Transfer(cmd.Context(), signer, walletv1.TransferArgs{Seqno: seqno, Transfer: batch})
		case resources.GenerationV2:
			body, err = walletv2.Transfer(cmd.Context(), signer, walletv2.TransferArgs{
				Seqno:      seqno,
				ValidUntil: validUntil,
				Transfer:   batch,
			})
		case resources.GenerationV3:
			walletID, _ := f.GetUint32(walletIDFlag)
			body, err = walletv3.Transfer(cmd.Context(), signer, walletv3.TransferArgs{
				WalletID:   walletID,
				Seqno:      seqno,
				ValidUntil: validUntil,
				Transfer:   batch,
			})
		case resources.GenerationV4:
			walletID, _ := f.GetUint32(walletIDFlag)
			body, err = walletv4.Transfer(cmd.Context(), signer, walletv4.TransferArgs{
				WalletID:   walletID,
				Seqno:      seqno,
				ValidUntil: validUntil,
				Action:     walletv4.TransferBatch(batch),
			})
		case resources.GenerationV5Beta:
			body, err = walletv5beta.Transfer(cmd.Context(), signer, walletv5beta.TransferArgs{
				AuthType: auth,
				WalletID: walletv5beta.WalletID{
					NetworkGlobalID: network,
					Workchain:       workchain,
					Version:         walletv5beta.VersionV5,
				},
				Seqno:      seqno,
				ValidUntil: validUntil,
				Actions:    []actions.Action{msg},
			})
		case resources.GenerationV5R1:
			queryID, _ := f.GetUint64(queryIDFlag)
			body, err = walletv5r1.Transfer(cmd.Context(), signer, walletv5r1.TransferArgs{
				AuthType:   auth,
				WalletID:   walletv5r1.DefaultWalletID(network, workchain),
				Seqno:      seqno,
				ValidUntil: validUntil,
				QueryID:    queryID,
				Actions:    []actions.Action{msg},
			})
		}
		if err != nil {
			return errors.Wrap(err, "failed to build request")
		}

		out, err := encoding.EncodeBOC(body, enc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

		return err
	},
}

func messageFromFlags(cmd *cobra.Command, enc encoding.Type) (actions.SendMsg, actions.SendMode, error) {
	f := cmd.Flags()

	rawTo, _ := f.GetString(toFlag)
	to, err := address.ParseAddr(rawTo)
	if err != nil {
		return actions.SendMsg{}, 0, errors.Wrap(err, "failed to parse destination address")
	}

	rawAmount, _ := f.GetString(amountFlag)
	amount, ok := new(big.Int).SetString(rawAmount, 10)
	if !ok || amount.Sign() < 0 {
		return actions.SendMsg{}, 0, errors.Errorf("invalid amount %q", rawAmount)
	}

	body := cell.BeginCell().EndCell()
	if rawPayload, _ := f.GetString(payloadFlag); rawPayload != "" {
		if body, err = encoding.DecodeBOC(rawPayload, enc); err != nil {
			return actions.SendMsg{}, 0, errors.Wrap(err, "failed to decode payload")
		}
	}

	bounce, _ := f.GetBool(bounceFlag)
	rawMode, _ := f.GetUint8(modeFlag)
	mode := actions.SendMode(rawMode)

	msg, err := actions.NewSendMsg(mode, &tlb.InternalMessage{
		IHRDisabled: true,
		Bounce:      bounce,
		DstAddr:     to,
		Amount:      tlb.FromNanoTON(amount),
		Body:        body,
	})
	if err != nil {
		return actions.SendMsg{}, 0, err
	}

	return msg, mode, nil
}

func seqnoFromFlags(cmd *cobra.Command) (uint32, error) {
	if fetch, _ := cmd.Flags().GetBool(fetchSeqnoFlag); !fetch {
		return cmd.Flags().GetUint32(seqnoFlag)
	}

	cfg, err := utils.ConfigFromFlags(cmd)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get config from flags")
	}

	client, err := ton.NewClient(cmd.Context(), cfg.TonRPC(), cfg.Log().WithField("component", "ton_client"))
	if err != nil {
		return 0, errors.Wrap(err, "failed to create ton client")
	}

	return client.WalletSeqno(cmd.Context(), nil)
}

// signerFromFlags returns nil when no key source is selected.
func signerFromFlags(cmd *cobra.Command) (wallet.Signer, error) {
	f := cmd.Flags()

	if rawSeed, _ := f.GetString(seedFlag); rawSeed != "" {
		seed, err := hexutil.Decode(rawSeed)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode seed")
		}
		return wallet.NewKeySignerFromSeed(seed)
	}

	if sign, _ := f.GetBool(signFlag); !sign {
		return nil, nil
	}

	cfg, err := utils.ConfigFromFlags(cmd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config from flags")
	}

	signer, err := cfg.SecretsStorage().GetWalletSigner(cmd.Context())
	if err != nil {
		return nil, errors.Wrap(err, "failed to get wallet key from vault")
	}

	return signer, nil
}
