// Package monitoring turns a simulation into a server that can be inspected
// and controlled while it runs.
package monitoring

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/sarchlab/axibridge/sim"
	"github.com/shirou/gopsutil/process"
)

// Monitor exposes the state of a running simulation over HTTP.
type Monitor struct {
	engine     sim.Engine
	components []sim.Component
	portNumber int
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port that the monitoring server listens on. Port 0
// picks a random free port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitoring server. "+
				"Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine registers the engine that drives the simulation.
func (m *Monitor) RegisterEngine(e sim.Engine) {
	m.engine = e
}

// RegisterComponent registers a component to be monitored.
func (m *Monitor) RegisterComponent(c sim.Component) {
	m.components = append(m.components, c)
}

// StartServer starts the monitoring server in the background.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()
	r.HandleFunc("/api/now", m.handleNow)
	r.HandleFunc("/api/components", m.handleComponents)
	r.HandleFunc("/api/component/{name}", m.handleComponent)
	r.HandleFunc("/api/resources", m.handleResources)
	r.HandleFunc("/api/pause", m.handlePause)
	r.HandleFunc("/api/continue", m.handleContinue)

	listener, err := net.Listen("tcp",
		fmt.Sprintf("localhost:%d", m.portNumber))
	if err != nil {
		log.Panic(err)
	}

	fmt.Fprintf(os.Stderr, "Monitoring simulation at http://%s\n",
		listener.Addr().String())

	go func() {
		err := http.Serve(listener, r)
		if err != nil {
			log.Panic(err)
		}
	}()
}

func (m *Monitor) handleNow(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]float64{
		"now": float64(m.engine.CurrentTime()),
	})
}

func (m *Monitor) handleComponents(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(m.components))
	for _, c := range m.components {
		names = append(names, c.Name())
	}

	writeJSON(w, names)
}

func (m *Monitor) handleComponent(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	for _, c := range m.components {
		if c.Name() != name {
			continue
		}

		ports := make([]string, 0)
		for _, p := range c.Ports() {
			ports = append(ports, p.Name())
		}

		writeJSON(w, map[string]any{
			"name":  c.Name(),
			"ports": ports,
		})

		return
	}

	http.NotFound(w, r)
}

func (m *Monitor) handleResources(w http.ResponseWriter, _ *http.Request) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	memInfo, err := p.MemoryInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"memory_rss":  memInfo.RSS,
		"cpu_percent": cpuPercent,
	})
}

func (m *Monitor) handlePause(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) handleContinue(w http.ResponseWriter, _ *http.Request) {
	m.engine.Continue()
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
