package verify

// Shape selects how claims contribute to the ledger and when scanning
// may stop early.
type Shape int

const (
	// ShapeScalar attributes have one true value (birth year); quorum on
	// any value ends the scan.
	ShapeScalar Shape = iota
	// ShapeStatus attributes carry a deceased-with-year ledger plus a
	// companion alive signal set; quorum on a death year ends the scan.
	ShapeStatus
	// ShapeSet attributes allow multiple simultaneously true values
	// (nationalities); scanning always runs to budget exhaustion so that
	// additional values can verify independently.
	ShapeSet
)

// StopReason records why a scan left the Scanning state
type StopReason string

const (
	StopQuorum StopReason = "quorum_reached"
	StopBudget StopReason = "budget_exhausted"
)

// controller is the early-stop state machine: Scanning -> Stopped(reason).
// It observes the ledger after each scanned chunk.
type controller struct {
	quorum        int
	maxScans      int
	exhaustBudget bool
	shape         Shape

	scanned int
	stopped bool
	reason  StopReason
}

func newController(quorum, maxScans int, exhaustBudget bool, shape Shape) *controller {
	if quorum <= 0 {
		quorum = 2
	}
	if maxScans <= 0 {
		maxScans = 10
	}
	return &controller{
		quorum:        quorum,
		maxScans:      maxScans,
		exhaustBudget: exhaustBudget,
		shape:         shape,
	}
}

// noteScan consumes one unit of budget. Returns false when the budget
// was already spent and the candidate must not be scanned.
func (c *controller) noteScan() bool {
	if c.stopped || c.scanned >= c.maxScans {
		return false
	}
	c.scanned++
	return true
}

// observe checks the ledger after a scanned chunk and transitions to
// Stopped when a quorum is reached or the budget is exhausted. Set-shape
// scans ignore quorum and always run to the budget.
func (c *controller) observe(l *Ledger) bool {
	if c.stopped {
		return true
	}
	if c.shape != ShapeSet && !c.exhaustBudget && l.MaxCount() >= c.quorum {
		c.stopped = true
		c.reason = StopQuorum
		return true
	}
	if c.scanned >= c.maxScans {
		c.stopped = true
		c.reason = StopBudget
		return true
	}
	return false
}

// finish forces the Stopped state when the candidate list ran out before
// the budget did.
func (c *controller) finish() {
	if !c.stopped {
		c.stopped = true
		c.reason = StopBudget
	}
}
