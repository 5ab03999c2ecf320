package arena

// Conn is the narrow capability the hub needs from a transport
// connection. It decouples the room engine from the websocket layer.
type Conn interface {
	ID() string
	Send(event string, payload any) error
}
