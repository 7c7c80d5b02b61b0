package enums

// StoreStatus reflects whether a partner supermarket is currently open.
type StoreStatus string

const (
	StoreStatusOpen   StoreStatus = "open"
	StoreStatusClosed StoreStatus = "closed"
)

func (s StoreStatus) String() string {
	return string(s)
}

// IsOpen treats any unknown value as closed.
func (s StoreStatus) IsOpen() bool {
	return s == StoreStatusOpen
}
