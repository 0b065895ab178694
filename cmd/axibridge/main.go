// Package main runs a vector-add demo on top of the bridge. Two input
// vectors are fetched from external memory into local buffers, added, and
// the sum is stored back, all through burst transfers.
package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

const (
	addrA   = 0x10000
	addrB   = 0x20000
	addrOut = 0x30000
)

var rootCmd = &cobra.Command{
	Use:   "axibridge",
	Short: "Run a vector-add workload through burst bridges",
	RunE:  run,
}

func init() {
	rootCmd.Flags().Int("length", 1024, "number of elements per vector")
	rootCmd.Flags().Int("latency", 10,
		"external memory latency in cycles")
	rootCmd.Flags().Int("max-burst-len", 256,
		"maximum number of beats per burst")
	rootCmd.Flags().Bool("no-monitor", false,
		"disable the monitoring server")
	rootCmd.Flags().Int("monitor-port", 0,
		"port for the monitoring server, 0 picks a free port")
	rootCmd.Flags().String("output", "",
		"name of the output database file")
	rootCmd.Flags().Bool("trace", false,
		"record bus transaction traces in the output database")
}

func configFromFlags(cmd *cobra.Command) platformConfig {
	cfg := platformConfig{}
	cfg.length, _ = cmd.Flags().GetInt("length")
	cfg.latency, _ = cmd.Flags().GetInt("latency")
	cfg.maxBurstLen, _ = cmd.Flags().GetInt("max-burst-len")
	cfg.output, _ = cmd.Flags().GetString("output")
	cfg.trace, _ = cmd.Flags().GetBool("trace")

	noMonitor, _ := cmd.Flags().GetBool("no-monitor")
	cfg.monitorOn = !noMonitor
	cfg.monitorPort, _ = cmd.Flags().GetInt("monitor-port")

	if cfg.monitorPort == 0 {
		if port, err := strconv.Atoi(
			os.Getenv("AXIBRIDGE_MONITOR_PORT")); err == nil {
			cfg.monitorPort = port
		}
	}

	return cfg
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := configFromFlags(cmd)

	p := buildPlatform(cfg)
	defer p.sim.Terminate()

	p.driver.srcAddrs = []uint64{addrA, addrB}
	p.driver.dstAddr = addrOut
	p.driver.length = cfg.length

	seedInputs(p, cfg.length)

	p.driver.TickLater()
	if err := p.sim.GetEngine().Run(); err != nil {
		return err
	}

	if !p.driver.done {
		return fmt.Errorf("simulation drained before the job completed")
	}

	mismatches := verify(p, cfg.length)
	if mismatches > 0 {
		return fmt.Errorf("%d of %d elements are wrong",
			mismatches, cfg.length)
	}

	fmt.Printf("vector add of %d elements completed at %.9fs\n",
		cfg.length, p.sim.GetEngine().CurrentTime())

	return nil
}

func seedInputs(p *platform, length int) {
	word := make([]byte, 4)
	for i := 0; i < length; i++ {
		binary.LittleEndian.PutUint32(word, uint32(i))
		p.storage.Write(addrA+uint64(4*i), word)

		binary.LittleEndian.PutUint32(word, uint32(2*i))
		p.storage.Write(addrB+uint64(4*i), word)
	}
}

func verify(p *platform, length int) int {
	mismatches := 0
	for i := 0; i < length; i++ {
		got := binary.LittleEndian.Uint32(
			p.storage.Read(addrOut+uint64(4*i), 4))
		if got != uint32(3*i) {
			mismatches++
		}
	}

	return mismatches
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
