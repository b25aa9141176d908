package api

// Method is an HTTP method supported by the API.
type Method string

const (
	GET    Method = "GET"
	POST   Method = "POST"
	PUT    Method = "PUT"
	DELETE Method = "DELETE"
)

// Methods returns the supported methods.
func Methods() []Method {
	return []Method{GET, POST, PUT, DELETE}
}

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	switch m {
	case GET, POST, PUT, DELETE:
		return true
	default:
		return false
	}
}

// HasBody reports whether requests with m carry a body.
func (m Method) HasBody() bool {
	return m == POST || m == PUT
}
