package simulator

import "github.com/chrisdamba/deliverysim/internal/models"

// RequestQueue is a FIFO of awaiting requests for one priority class.
// Dispatch needs to scan in submission order and remove from the middle,
// so a plain slice with O(n) operations is the whole implementation.
type RequestQueue struct {
	requests []*models.Request
}

func NewRequestQueue() *RequestQueue {
	return &RequestQueue{}
}

func (q *RequestQueue) Add(req *models.Request) {
	q.requests = append(q.requests, req)
}

func (q *RequestQueue) Len() int {
	return len(q.requests)
}

// RemoveByID removes and returns the request with the given id, or nil.
func (q *RequestQueue) RemoveByID(id string) *models.Request {
	for i, req := range q.requests {
		if req.ID == id {
			q.requests = append(q.requests[:i], q.requests[i+1:]...)
			return req
		}
	}
	return nil
}

// PopFirstFit removes and returns the first awaiting request whose
// occupancy window [now, now+duration) avoids every reserved window.
func (q *RequestQueue) PopFirstFit(now models.SimTime, reservations *models.ReservationBook) *models.Request {
	for i, req := range q.requests {
		if req.Status != models.StatusAwaiting {
			continue
		}
		window := models.Interval{Start: now, End: now.Add(req.Duration)}
		if reservations.Conflicts(window) {
			continue
		}
		q.requests = append(q.requests[:i], q.requests[i+1:]...)
		return req
	}
	return nil
}

// PopExactTarget removes and returns the first awaiting appointment that
// must start this very minute to land exactly on its target time. Starting
// earlier would cross the reserved window boundary, later would miss the
// promise, so only the exact match is eligible.
func (q *RequestQueue) PopExactTarget(now models.SimTime) *models.Request {
	for i, req := range q.requests {
		if req.Status != models.StatusAwaiting || req.TargetTime == nil {
			continue
		}
		if now.Add(req.Duration).Equal(*req.TargetTime) {
			q.requests = append(q.requests[:i], q.requests[i+1:]...)
			return req
		}
	}
	return nil
}
