package pricing

// Observer is notified after each evaluation. res is nil when err is set.
type Observer interface {
	Observe(p Parameters, res *Result, err error)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(p Parameters, res *Result, err error)

func (f ObserverFunc) Observe(p Parameters, res *Result, err error) {
	f(p, res, err)
}

// Observers fans one evaluation out to several observers. Nil entries are
// skipped.
type Observers []Observer

func (obs Observers) Observe(p Parameters, res *Result, err error) {
	for _, o := range obs {
		if o != nil {
			o.Observe(p, res, err)
		}
	}
}
