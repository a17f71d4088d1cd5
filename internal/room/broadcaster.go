package room

// Transport delivers events to connected clients.
type Transport interface {
	Send(connID string, event string, data any)
	Broadcast(roomID string, event string, data any)
}

type nopTransport struct{}

func (nopTransport) Send(string, string, any)      {}
func (nopTransport) Broadcast(string, string, any) {}
