package accounts

// Status is the single thing a page shows
type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusEmpty
	StatusContent
	// StatusRedirected means the page navigated away and shows nothing
	StatusRedirected
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusEmpty:
		return "empty"
	case StatusContent:
		return "content"
	case StatusRedirected:
		return "redirected"
	default:
		return "unknown"
	}
}

// View is the resolved state of a page. Exactly one of Error, Message or
// Data is meaningful, chosen by Status.
type View[T any] struct {
	Status   Status
	Error    string // StatusError
	Message  string // StatusEmpty
	Redirect string // StatusRedirected
	Data     T      // StatusContent
}

func loading[T any]() View[T] {
	return View[T]{Status: StatusLoading}
}

func failed[T any](msg string) View[T] {
	return View[T]{Status: StatusError, Error: msg}
}

func empty[T any](msg string) View[T] {
	return View[T]{Status: StatusEmpty, Message: msg}
}

func content[T any](data T) View[T] {
	return View[T]{Status: StatusContent, Data: data}
}

func redirected[T any](route string) View[T] {
	return View[T]{Status: StatusRedirected, Redirect: route}
}
