package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"powchain/config"
	"powchain/events"
	"powchain/exception"
	"powchain/ledger"
	"powchain/logx"
	"powchain/monitoring"
	"powchain/record"
	"powchain/utils"
)

var (
	chainConfigPath string
	minerConfigPath string
	recordCount     int
	difficulty      int
	metricsAddr     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build a chain, mine records onto it and dump the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChain()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&chainConfigPath, "config", "c", "", "Path to chain.yml (built-in defaults when empty)")
	runCmd.Flags().StringVar(&minerConfigPath, "miner-config", "", "Path to miner.ini (built-in defaults when empty)")
	runCmd.Flags().IntVarP(&recordCount, "count", "n", 3, "Number of records to mine onto the chain")
	runCmd.Flags().IntVarP(&difficulty, "difficulty", "d", -1, "Override chain difficulty (negative keeps the configured value)")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address (disabled when empty)")
}

func runChain() error {
	chainCfg := config.DefaultChainConfig()
	if chainConfigPath != "" {
		cfg, err := config.LoadChainConfig(chainConfigPath)
		if err != nil {
			return fmt.Errorf("could not load chain config: %w", err)
		}
		chainCfg = cfg
	}
	if difficulty >= 0 {
		chainCfg.Difficulty = difficulty
	}

	minerCfg := config.DefaultMinerConfig()
	if minerConfigPath != "" {
		cfg, err := config.LoadMinerConfig(minerConfigPath)
		if err != nil {
			return fmt.Errorf("could not load miner config: %w", err)
		}
		minerCfg = cfg
	}

	if metricsAddr != "" {
		exception.SafeGo("metrics-server", func() {
			monitoring.ServeMetrics(metricsAddr)
		})
	}

	eventBus := events.NewEventBus()
	subID, eventCh := eventBus.Subscribe()
	defer eventBus.Unsubscribe(subID)
	exception.SafeGo("mined-event-printer", func() {
		for event := range eventCh {
			mined, ok := event.(*events.RecordMined)
			if !ok {
				continue
			}
			fmt.Fprintf(os.Stderr, "mined record %d | digest=%s nonce=%d attempts=%d elapsed=%s\n",
				mined.Index(), utils.ShortenLog(mined.RecordDigest()), mined.Nonce(), mined.Attempts(), mined.Elapsed())
		}
	})

	chain, err := ledger.NewLedger(chainCfg, minerCfg, eventBus)
	if err != nil {
		return fmt.Errorf("could not construct ledger: %w", err)
	}

	ctx := context.Background()
	for i := 1; i <= recordCount; i++ {
		rec := record.New(uint64(i), utils.NowToken(), fmt.Sprintf("record %d data", i))
		if err := chain.Append(ctx, rec); err != nil {
			return fmt.Errorf("could not append record %d: %w", i, err)
		}
	}

	dump, err := chain.Dump()
	if err != nil {
		return fmt.Errorf("could not dump chain: %w", err)
	}
	fmt.Println(string(dump))

	if !chain.Validate() {
		logx.Error("CMD", "Chain failed validation after mining")
		return fmt.Errorf("chain invalid")
	}
	logx.Info("CMD", fmt.Sprintf("Chain valid | height=%d difficulty=%d", chain.Height(), chain.Difficulty()))
	return nil
}
