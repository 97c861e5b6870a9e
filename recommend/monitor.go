package recommend

// Monitor provides hooks to observe a recommendation.
// Implement this interface to collect metrics or trace intermediate results.
type Monitor interface {
	Start(query string)
	AfterContainment(indices []int)
	AfterNormalize(normalized string)
	ExactMatch(index int)
	Finish(result Result)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)          {}
func (n *noopMonitor) AfterContainment(_ []int) {}
func (n *noopMonitor) AfterNormalize(_ string)  {}
func (n *noopMonitor) ExactMatch(_ int)         {}
func (n *noopMonitor) Finish(_ Result)          {}
