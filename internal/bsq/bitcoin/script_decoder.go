package bitcoin

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
)

// decodedScript is what the ledger keeps of an output script.
type decodedScript struct {
	addresses []string
	class     string
	opReturn  []byte
}

// scriptDecoder reads addresses, script class and OP_RETURN payloads from
// ScriptPubKey results.
type scriptDecoder struct {
	params *chaincfg.Params
}

func newScriptDecoder(network model.Network) (*scriptDecoder, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, err
	}
	return &scriptDecoder{params: params}, nil
}

// decode prefers what the node reported and falls back to the raw script
// for anything missing. Only the first push of an OP_RETURN is kept; an
// empty push carries no data.
func (d *scriptDecoder) decode(spk btcjson.ScriptPubKeyResult) (decodedScript, error) {
	out := decodedScript{class: spk.Type}
	switch {
	case len(spk.Addresses) > 0:
		out.addresses = append([]string(nil), spk.Addresses...)
	case spk.Address != "":
		out.addresses = []string{spk.Address}
	}
	if spk.Hex == "" {
		return out, nil
	}

	script, err := hex.DecodeString(spk.Hex)
	if err != nil {
		return decodedScript{}, fmt.Errorf("decode script hex: %w", err)
	}
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(script, d.params)
	if err != nil {
		return decodedScript{}, fmt.Errorf("extract addresses: %w", err)
	}
	if out.class == "" {
		out.class = class.String()
	}
	if out.addresses == nil {
		for _, addr := range addrs {
			out.addresses = append(out.addresses, addr.EncodeAddress())
		}
	}

	if class == txscript.NullDataTy {
		pushes, err := txscript.PushedData(script)
		if err != nil {
			return decodedScript{}, fmt.Errorf("read op_return data: %w", err)
		}
		if len(pushes) > 0 && len(pushes[0]) > 0 {
			out.opReturn = pushes[0]
		}
	}
	return out, nil
}

// ChainParams maps a network name to btcd chain parameters.
func ChainParams(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
