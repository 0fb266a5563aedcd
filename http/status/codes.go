package status

/*
INFO: a trimmed-down copy of net/http/status.go. Only the codes the file server is able
to produce are kept, so an exhaustive switch over them stays readable.
*/

type (
	Code   uint16
	Status string
)

// HTTP status codes as registered with IANA.
// See: https://www.iana.org/assignments/http-status-codes/http-status-codes.xhtml
const (
	OK             Code = 200 // RFC 9110, 15.3.1
	PartialContent Code = 206 // RFC 9110, 15.3.7

	NotFound Code = 404 // RFC 9110, 15.5.5

	InternalServerError Code = 500 // RFC 9110, 15.6.1
	NotImplemented      Code = 501 // RFC 9110, 15.6.2
)

// KnownCodes lists every code declared above.
var KnownCodes = []Code{
	OK, PartialContent,
	NotFound,
	InternalServerError, NotImplemented,
}

// Text returns a text for the HTTP status code. It returns "Unknown Status Code"
// if the code is unknown.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case PartialContent:
		return "Partial Content"
	case NotFound:
		return "Not Found"
	case InternalServerError:
		return "Internal Server Error"
	case NotImplemented:
		return "Not Implemented"
	default:
		return "Unknown Status Code"
	}
}

// StringCode returns the decimal representation of known codes without touching strconv.
// Empty string is returned for unknown ones.
func StringCode(code Code) string {
	switch code {
	case OK:
		return "200"
	case PartialContent:
		return "206"
	case NotFound:
		return "404"
	case InternalServerError:
		return "500"
	case NotImplemented:
		return "501"
	default:
		return ""
	}
}
