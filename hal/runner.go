package hal

// App is what the runners drive: Step once per frame, Close once on exit.
type App interface {
	Step() error
	Close() error
}
