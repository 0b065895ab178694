package sim

// SendError marks a failed send or delivery.
type SendError struct{}

// NewSendError creates a SendError.
func NewSendError() *SendError {
	return new(SendError)
}

// A Connection delivers messages from a source port to a destination port.
type Connection interface {
	Named
	Hookable

	PlugIn(port Port)
	Unplug(port Port)

	// NotifyAvailable is called by a port to notify that the port can accept
	// deliveries again.
	NotifyAvailable(port Port)

	// NotifySend is called by a port to notify that the port has outgoing
	// messages to transfer.
	NotifySend()
}
