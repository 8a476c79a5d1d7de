// Package main runs a BSQ full node: it parses the token ledger from a
// bitcoind node and persists periodic snapshots of the chain state.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/bitcoin"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/node"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/params"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/parser"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/snapshot"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/state"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/storage"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/storage/clickhouse"
	"github.com/goodnatureofminers/bsq-ledger/internal/metrics"
	observed "github.com/goodnatureofminers/bsq-ledger/internal/pkg/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	backendBadger     = "badger"
	backendClickhouse = "clickhouse"
	backendMemory     = "memory"
	backendNone       = "none"
)

type config struct {
	Network       model.Network `long:"network" env:"BSQ_NODE_NETWORK" description:"host network (mainnet, testnet, regtest)" required:"true"`
	RPCURL        string        `long:"rpc-url" env:"BSQ_NODE_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string        `long:"rpc-user" env:"BSQ_NODE_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword   string        `long:"rpc-password" env:"BSQ_NODE_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPS           int           `long:"rps" env:"BSQ_NODE_RPS" description:"max bitcoind requests per second" default:"50"`
	Workers       int           `long:"workers" env:"BSQ_NODE_WORKERS" description:"concurrent block fetches" default:"4"`
	PollInterval  time.Duration `long:"poll-interval" env:"BSQ_NODE_POLL_INTERVAL" description:"new block poll interval" default:"10s"`
	ZMQAddr       string        `long:"zmq-addr" env:"BSQ_NODE_ZMQ_ADDR" description:"bitcoind zmqpubhashblock endpoint"`
	GenesisTxID   string        `long:"genesis-tx-id" env:"BSQ_NODE_GENESIS_TX_ID" description:"override the network genesis tx id"`
	GenesisHeight uint64        `long:"genesis-height" env:"BSQ_NODE_GENESIS_HEIGHT" description:"override the network genesis block height"`
	CompReqFee    uint64        `long:"compensation-request-fee" env:"BSQ_NODE_COMPENSATION_REQUEST_FEE" description:"override the compensation request fee in effect from genesis"`
	VotingFee     uint64        `long:"voting-fee" env:"BSQ_NODE_VOTING_FEE" description:"override the voting fee in effect from genesis"`
	Snapshots     string        `long:"snapshots" env:"BSQ_NODE_SNAPSHOTS" description:"snapshot backend" choice:"badger" choice:"clickhouse" choice:"memory" choice:"none" default:"badger"`
	DataDir       string        `long:"data-dir" env:"BSQ_NODE_DATA_DIR" description:"badger snapshot directory" default:"data"`
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"BSQ_NODE_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	LiteMirror    bool          `long:"lite-mirror" env:"BSQ_NODE_LITE_MIRROR" description:"also run an in-process lite node fed by this full node"`
	MetricsAddr   string        `long:"metrics-addr" env:"BSQ_NODE_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if cfg.Snapshots == backendClickhouse && cfg.ClickhouseDSN == "" {
		logger.Fatal("ClickHouse DSN is required for clickhouse snapshots")
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("bsq full node failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	p, err := ledgerParams(cfg)
	if err != nil {
		return err
	}
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init btc rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	rpc := observed.NewObservedClient(rpcClient, metrics.NewRPCClient(model.BTC, cfg.Network))

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return fmt.Errorf("init block signal: %w", err)
	}
	source, err := bitcoin.NewSource(rpc, bitcoin.Config{
		Network:      cfg.Network,
		RPS:          cfg.RPS,
		Workers:      cfg.Workers,
		PollInterval: cfg.PollInterval,
		BlockSignal:  blockSignal,
	}, logger)
	if err != nil {
		return fmt.Errorf("init block source: %w", err)
	}

	chainState := state.New(p, logger)
	blockParser, err := parser.New(chainState, p, logger)
	if err != nil {
		return err
	}

	store, closeStore, err := openSnapshotStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var (
		nodeStore node.SnapshotStore
		candidate node.SnapshotCandidate
	)
	if store != nil {
		persister := snapshot.NewPersister(store, logger)
		persister.Start(context.WithoutCancel(ctx))
		defer persister.Stop()

		manager := snapshot.NewManager(chainState, persister, p, logger)
		chainState.OnBlockAdded(manager.OnBlockAdded)
		nodeStore, candidate = store, manager
	}

	var wg sync.WaitGroup
	if cfg.LiteMirror {
		hub := node.NewHub(chainState, logger)
		chainState.OnBlockAdded(hub.OnBlockAdded)
		lite, err := newLiteMirror(hub, p, cfg.Network, logger)
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := lite.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("lite mirror stopped", zap.Error(err))
			}
		}()
	}
	defer wg.Wait()

	controller, err := node.NewController(
		source,
		chainState,
		blockParser,
		nodeStore,
		candidate,
		metrics.NewNode(model.BTC, cfg.Network),
		model.BTC,
		cfg.Network,
		logger,
	)
	if err != nil {
		return err
	}
	return controller.Run(ctx)
}

func ledgerParams(cfg config) (params.Params, error) {
	p, err := params.ForNetwork(cfg.Network)
	if err != nil {
		return params.Params{}, err
	}
	if cfg.GenesisTxID != "" {
		p.GenesisTxID = cfg.GenesisTxID
	}
	if cfg.GenesisHeight != 0 {
		p.GenesisBlockHeight = cfg.GenesisHeight
	}
	if cfg.CompReqFee != 0 {
		p.CompensationRequestFee = cfg.CompReqFee
	}
	if cfg.VotingFee != 0 {
		p.VotingFee = cfg.VotingFee
	}
	return p, p.Validate()
}

func openSnapshotStore(cfg config, logger *zap.Logger) (snapshot.Store, func(), error) {
	switch cfg.Snapshots {
	case backendNone:
		logger.Warn("snapshots disabled, every restart parses from genesis")
		return nil, func() {}, nil
	case backendMemory:
		logger.Warn("snapshots kept in memory, every restart parses from genesis")
		return storage.NewSnapshotStore(storage.NewMemory(), cfg.Network, metrics.NewSnapshotStore(cfg.Network)), func() {}, nil
	case backendClickhouse:
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, cfg.Network, metrics.NewClickhouseRepository())
		if err != nil {
			return nil, nil, fmt.Errorf("init repository: %w", err)
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				logger.Warn("close repository", zap.Error(err))
			}
		}, nil
	case backendBadger:
		db, err := storage.NewBadger(filepath.Join(cfg.DataDir, "snapshots"))
		if err != nil {
			return nil, nil, err
		}
		return storage.NewSnapshotStore(db, cfg.Network, metrics.NewSnapshotStore(cfg.Network)), func() {
			if err := db.Close(); err != nil {
				logger.Warn("close snapshot db", zap.Error(err))
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown snapshot backend %q", cfg.Snapshots)
	}
}

func newLiteMirror(hub *node.Hub, p params.Params, network model.Network, logger *zap.Logger) (*node.Controller, error) {
	logger = logger.Named("lite")
	source, err := node.NewLiteSource(hub, logger)
	if err != nil {
		return nil, err
	}
	chainState := state.New(p, logger)
	blockParser, err := parser.New(chainState, p, logger)
	if err != nil {
		return nil, err
	}
	return node.NewController(source, chainState, blockParser, nil, nil, metrics.NewNode("BSQ-LITE", network), model.BTC, network, logger)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
