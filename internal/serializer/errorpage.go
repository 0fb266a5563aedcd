package serializer

import (
	"github.com/indigo-web/webserv/http/status"
)

func appendErrorPage(buff []byte, code status.Code) []byte {
	buff = append(buff, "<html>\r\n<head><title>"...)
	buff = append(buff, status.StringCode(code)...)
	buff = append(buff, ' ')
	buff = append(buff, status.Text(code)...)
	buff = append(buff, "</title></head>\r\n<body><p>"...)
	buff = append(buff, errorMessage(code)...)
	return append(buff, "</p></body>\r\n</html>\r\n"...)
}

func errorMessage(code status.Code) string {
	switch code {
	case status.NotFound:
		return "The specified URL could not be located on this server."
	case status.NotImplemented:
		return "The requested operation has not been implemented."
	case status.InternalServerError:
		return "The server failed to fulfil the request."
	default:
		return string(status.Text(code))
	}
}
