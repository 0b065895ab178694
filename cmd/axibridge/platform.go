package main

import (
	"fmt"

	"github.com/sarchlab/axibridge/axislave"
	"github.com/sarchlab/axibridge/bridge"
	"github.com/sarchlab/axibridge/localmem"
	"github.com/sarchlab/axibridge/sim"
	"github.com/sarchlab/axibridge/sim/directconnection"
	"github.com/sarchlab/axibridge/simulation"
	"github.com/sarchlab/axibridge/tracing"
	"github.com/sarchlab/axibridge/xfer"
)

// platform is the vector-add demo system: three bridge lanes over one shared
// external memory, an orchestrator, and a driver.
type platform struct {
	sim     *simulation.Simulation
	storage *axislave.Storage
	driver  *driver
}

type platformConfig struct {
	length      int
	latency     int
	maxBurstLen int
	monitorOn   bool
	monitorPort int
	output      string
	trace       bool
}

// buildLane creates one bridge and one slave channel pair and wires their
// five channels together by port name.
func buildLane(
	s *simulation.Simulation,
	conn *directconnection.Comp,
	storage *axislave.Storage,
	mem *localmem.Memory,
	latency, maxBurstLen int,
	name string,
) *bridge.Comp {
	bridgeName := fmt.Sprintf("Bridge%s", name)
	slaveName := fmt.Sprintf("Slave%s", name)

	slave := axislave.MakeBuilder().
		WithEngine(s.GetEngine()).
		WithStorage(storage).
		WithLatency(latency).
		WithReadDataDst(sim.RemotePort(bridgeName + ".ReadData")).
		WithWriteRspDst(sim.RemotePort(bridgeName + ".WriteRsp")).
		Build(slaveName)

	brg := bridge.MakeBuilder().
		WithEngine(s.GetEngine()).
		WithLocalMemory(mem).
		WithMaxBurstLen(maxBurstLen).
		WithReadAddrDst(slave.GetPortByName("ReadAddr").AsRemote()).
		WithWriteAddrDst(slave.GetPortByName("WriteAddr").AsRemote()).
		WithWriteDataDst(slave.GetPortByName("WriteData").AsRemote()).
		Build(bridgeName)

	for _, p := range slave.Ports() {
		conn.PlugIn(p)
	}
	for _, p := range brg.Ports() {
		conn.PlugIn(p)
	}

	s.RegisterComponent(slave)
	s.RegisterComponent(brg)

	return brg
}

func buildPlatform(cfg platformConfig) *platform {
	simBuilder := simulation.MakeBuilder()
	if !cfg.monitorOn {
		simBuilder = simBuilder.WithoutMonitoring()
	}
	if cfg.monitorPort != 0 {
		simBuilder = simBuilder.WithMonitorPort(cfg.monitorPort)
	}
	if cfg.output != "" {
		simBuilder = simBuilder.WithOutputFileName(cfg.output)
	}
	s := simBuilder.Build()

	engine := s.GetEngine()
	storage := axislave.NewStorage(1 << 24)

	conn := directconnection.MakeBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Conn")

	memA := localmem.New("MemA", cfg.length)
	memB := localmem.New("MemB", cfg.length)
	memOut := localmem.New("MemOut", cfg.length)

	bridgeA := buildLane(s, conn, storage, memA,
		cfg.latency, cfg.maxBurstLen, "A")
	bridgeB := buildLane(s, conn, storage, memB,
		cfg.latency, cfg.maxBurstLen, "B")
	bridgeOut := buildLane(s, conn, storage, memOut,
		cfg.latency, cfg.maxBurstLen, "Out")

	orchestrator := xfer.MakeBuilder().
		WithEngine(engine).
		WithKernel(xfer.VectorAdd{}).
		WithSrcBridge(bridgeA.CtrlPort().AsRemote(), memA).
		WithSrcBridge(bridgeB.CtrlPort().AsRemote(), memB).
		WithDstBridge(bridgeOut.CtrlPort().AsRemote(), memOut).
		Build("Orchestrator")
	conn.PlugIn(orchestrator.CtrlPort())
	s.RegisterComponent(orchestrator)

	drv := newDriver(engine, "Driver")
	drv.dst = orchestrator.CtrlPort().AsRemote()
	conn.PlugIn(drv.ctrlPort)
	s.RegisterComponent(drv)

	if cfg.trace {
		tracer := s.GetVisTracer()
		tracing.CollectTrace(bridgeA, tracer)
		tracing.CollectTrace(bridgeB, tracer)
		tracing.CollectTrace(bridgeOut, tracer)
		tracing.CollectTrace(orchestrator, tracer)
	}

	return &platform{
		sim:     s,
		storage: storage,
		driver:  drv,
	}
}
