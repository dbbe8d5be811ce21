package simulator

import "github.com/chrisdamba/deliverysim/internal/models"

// Agent is the single delivery resource. It holds at most one in-progress
// request at any simulated instant.
type Agent struct {
	current *models.Request
}

func NewAgent() *Agent {
	return &Agent{}
}

func (a *Agent) Available() bool {
	return a.current == nil
}

func (a *Agent) Current() *models.Request {
	return a.current
}

// Assign hands a request to the agent and marks it in progress.
func (a *Agent) Assign(req *models.Request) {
	req.Status = models.StatusDelivering
	a.current = req
}

// Complete marks the held request delivered, releases the agent and
// returns the finished request. It returns nil when the agent is idle.
func (a *Agent) Complete() *models.Request {
	if a.current == nil {
		return nil
	}
	done := a.current
	done.Status = models.StatusDelivered
	a.current = nil
	return done
}
