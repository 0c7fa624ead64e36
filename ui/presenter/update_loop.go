package presenter

// Loop aggregates feature presenters and drives periodic updates.
//
// It drains worker results and invokes a scheduler callback. The zero value
// is usable (methods are nil-safe).
type Loop struct {
	Processing *ProcessingPresenter
	Ticks      []func()
	Schedule   func()
}

func NewLoop(processing *ProcessingPresenter, schedule func(), extra ...func()) *Loop {
	return &Loop{Processing: processing, Schedule: schedule, Ticks: extra}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.Processing != nil {
		l.Processing.Tick()
	}
	for _, fn := range l.Ticks {
		if fn != nil {
			fn()
		}
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
