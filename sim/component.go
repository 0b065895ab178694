package sim

import (
	"fmt"
	"os"
	"sync"
)

// A Named object has a name.
type Named interface {
	Name() string
}

// A Component is an element being simulated.
type Component interface {
	Named
	Handler
	Hookable

	Ports() []Port
	GetPortByName(name string) Port
	NotifyRecv(port Port)
	NotifyPortFree(port Port)
}

// ComponentBase provides the functions that other components can reuse.
type ComponentBase struct {
	HookableBase
	sync.Mutex

	name      string
	ports     map[string]Port
	portNames []string
}

// NewComponentBase creates a new ComponentBase.
func NewComponentBase(name string) *ComponentBase {
	c := new(ComponentBase)
	c.name = name
	c.ports = map[string]Port{}

	return c
}

// Name returns the name of the component.
func (c *ComponentBase) Name() string {
	return c.name
}

// AddPort registers a port under the given name.
func (c *ComponentBase) AddPort(name string, port Port) {
	if _, found := c.ports[name]; found {
		panic("port " + name + " already added")
	}

	c.ports[name] = port
	c.portNames = append(c.portNames, name)
}

// Ports returns all the ports of the component, in registration order.
func (c *ComponentBase) Ports() []Port {
	list := make([]Port, 0, len(c.ports))
	for _, n := range c.portNames {
		list = append(list, c.ports[n])
	}

	return list
}

// GetPortByName returns the port registered under the given name.
func (c *ComponentBase) GetPortByName(name string) Port {
	port, found := c.ports[name]
	if !found {
		errMsg := fmt.Sprintf(
			"Port %s is not available on component %s.\n", name, c.name)
		errMsg += "Available ports include:\n"
		for _, n := range c.portNames {
			errMsg += fmt.Sprintf("\t%s\n", n)
		}
		fmt.Fprint(os.Stderr, errMsg)

		panic("port not found")
	}

	return port
}
