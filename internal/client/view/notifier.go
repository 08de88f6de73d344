package view

// Notifier shows short user-facing messages. Implementations must not block.
type Notifier interface {
	Success(msg string)
	Warn(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Warn(string)    {}
func (nopNotifier) Error(string)   {}

// NotifierFuncs adapts plain functions; nil fields are ignored.
type NotifierFuncs struct {
	OnSuccess func(string)
	OnWarn    func(string)
	OnError   func(string)
}

func (n NotifierFuncs) Success(msg string) {
	if n.OnSuccess != nil {
		n.OnSuccess(msg)
	}
}

func (n NotifierFuncs) Warn(msg string) {
	if n.OnWarn != nil {
		n.OnWarn(msg)
	}
}

func (n NotifierFuncs) Error(msg string) {
	if n.OnError != nil {
		n.OnError(msg)
	}
}
