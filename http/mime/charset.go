package mime

type Charset = string

const (
	Unset Charset = ""
	UTF8  Charset = "UTF-8"
)
