// Package rpcclient wraps the btcd RPC client with per-call metrics.
package rpcclient

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
)

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
	client interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
	}
)

var _ client = (*rpcclient.Client)(nil)

// ObservedClient exposes the bitcoind calls the ledger needs and records
// the outcome and latency of each one.
type ObservedClient struct {
	client  client
	metrics Metrics
}

func NewObservedClient(c *rpcclient.Client, metrics Metrics) *ObservedClient {
	return &ObservedClient{client: c, metrics: metrics}
}

func observe[T any](m Metrics, operation string, call func() (T, error)) (T, error) {
	started := time.Now()
	res, err := call()
	m.Observe(operation, err, started)
	return res, err
}

func (r *ObservedClient) GetBlockCount() (int64, error) {
	return observe(r.metrics, "get_block_count", r.client.GetBlockCount)
}

func (r *ObservedClient) GetBlockHash(blockHeight int64) (*chainhash.Hash, error) {
	return observe(r.metrics, "get_block_hash", func() (*chainhash.Hash, error) {
		return r.client.GetBlockHash(blockHeight)
	})
}

func (r *ObservedClient) GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error) {
	return observe(r.metrics, "get_block_verbose_tx", func() (*btcjson.GetBlockVerboseTxResult, error) {
		return r.client.GetBlockVerboseTx(blockHash)
	})
}

// GetRawTransactionVerbose requires bitcoind to run with txindex for
// transactions outside the mempool and the wallet.
func (r *ObservedClient) GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error) {
	return observe(r.metrics, "get_raw_transaction_verbose", func() (*btcjson.TxRawResult, error) {
		return r.client.GetRawTransactionVerbose(txHash)
	})
}
