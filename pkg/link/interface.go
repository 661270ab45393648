package link

// Device defines the interface for irrigation controllers seen from the host (real or mocked).
type Device interface {
	Connect() error
	Close() error
	Records() <-chan Record
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
