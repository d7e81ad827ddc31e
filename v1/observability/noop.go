package observability

// NoOpObserver discards every OperationContext it receives. It is the
// default Observer for components constructed without one, so production
// code never has to nil-check before calling ObserveOperation.
type NoOpObserver struct{}

// NewNoOpObserver returns an Observer that does nothing.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// ObserveOperation implements Observer.
func (*NoOpObserver) ObserveOperation(OperationContext) {}
