package simulator

import (
	"fmt"
	"log"
	"os"

	"github.com/chrisdamba/deliverysim/internal/models"
	"github.com/schollz/progressbar/v3"
)

// Scheduler owns the whole simulation state: the clock, the three class
// queues, the reservation book, the courier and the request registry. One
// Scheduler value is one independent simulation; nothing lives in package
// globals, so tests can run many side by side.
type Scheduler struct {
	Config *models.Config
	Clock  models.SimTime

	agent            *Agent
	appointmentQueue *RequestQueue
	expressQueue     *RequestQueue
	normalQueue      *RequestQueue
	reservations     *models.ReservationBook
	registry         map[string]*models.Request

	commands []models.Command
	next     int
}

func NewScheduler(config *models.Config) *Scheduler {
	return &Scheduler{
		Config:           config,
		Clock:            models.NewSimTime(1, 0, 0),
		agent:            NewAgent(),
		appointmentQueue: NewRequestQueue(),
		expressQueue:     NewRequestQueue(),
		normalQueue:      NewRequestQueue(),
		reservations:     models.NewReservationBook(),
		registry:         make(map[string]*models.Request),
	}
}

// LoadCommands hands the scheduler its full input, already sorted by
// timestamp (ties keep input order).
func (s *Scheduler) LoadCommands(commands []models.Command) {
	s.commands = commands
	s.next = 0
}

// Tick executes one simulated minute: completion check, admission of at
// most one command stamped with the current minute, one dispatch attempt,
// then the clock advance. It returns the observable events of the tick in
// occurrence order.
//
// Admission tests exact timestamp equality, so when several commands share
// a timestamp only the first is ever admitted; the clock has moved past
// that minute before the next one is looked at. Input relying on it never
// reaches the terminal condition, which is why Run carries a tick bound.
func (s *Scheduler) Tick() []*models.Event {
	var events []*models.Event

	if ev := s.checkCompletion(); ev != nil {
		events = append(events, ev)
	}
	if s.next < len(s.commands) && s.commands[s.next].Time.Equal(s.Clock) {
		events = append(events, s.applyCommand(s.commands[s.next]))
		s.next++
	}
	if ev := s.dispatch(); ev != nil {
		events = append(events, ev)
	}
	s.Clock.Step()

	return events
}

// Finished reports the terminal condition: every command consumed, the
// courier idle and all three queues drained.
func (s *Scheduler) Finished() bool {
	return s.next >= len(s.commands) &&
		s.agent.Available() &&
		s.appointmentQueue.Len() == 0 &&
		s.expressQueue.Len() == 0 &&
		s.normalQueue.Len() == 0
}

// Run drives the tick loop until the terminal condition, writing every
// event to the configured output destination.
func (s *Scheduler) Run() error {
	output, err := s.determineOutputDestination()
	if err != nil {
		return err
	}
	defer func() {
		if err := output.Close(); err != nil {
			log.Printf("Error closing output destination: %v", err)
		}
	}()

	var bar *progressbar.ProgressBar
	if s.Config.ShowProgress {
		bar = progressbar.NewOptions(len(s.commands),
			progressbar.OptionSetDescription("commands"),
			progressbar.OptionSetWriter(os.Stderr))
	}

	log.Printf("Simulation starts at %s with %d commands", s.Clock, len(s.commands))

	var ticks, eventsCount int
	for {
		admitted := s.next
		for _, ev := range s.Tick() {
			msg, err := serializeEvent(ev)
			if err != nil {
				log.Printf("Error serializing event: %v", err)
				continue
			}
			if err := output.WriteMessage(msg.Topic, msg.Message); err != nil {
				log.Printf("Failed to write message: %v", err)
			}
			eventsCount++
		}
		if bar != nil && s.next > admitted {
			_ = bar.Add(s.next - admitted)
		}
		ticks++
		if s.Finished() {
			break
		}
		if s.Config.MaxTicks > 0 && ticks >= s.Config.MaxTicks {
			return fmt.Errorf("simulation aborted after %d ticks: %d commands never admitted, %d requests still queued",
				ticks, len(s.commands)-s.next, s.queuedRequests())
		}
	}

	log.Printf("Simulation completed at %s: %d ticks, %d events", s.Clock, ticks, eventsCount)
	return nil
}

func (s *Scheduler) queuedRequests() int {
	return s.appointmentQueue.Len() + s.expressQueue.Len() + s.normalQueue.Len()
}

func (s *Scheduler) queueFor(class models.RequestClass) *RequestQueue {
	switch class {
	case models.ClassAppointment:
		return s.appointmentQueue
	case models.ClassExpress:
		return s.expressQueue
	default:
		return s.normalQueue
	}
}

// checkCompletion releases the courier when the held request finishes at
// the current minute. It runs before intake and dispatch so a courier
// freed this minute can take a new request within the same tick.
func (s *Scheduler) checkCompletion() *models.Event {
	current := s.agent.Current()
	if current == nil || current.CompletionTime == nil || !current.CompletionTime.Equal(s.Clock) {
		return nil
	}
	done := s.agent.Complete()
	return &models.Event{Time: s.Clock, Type: models.EventRequestDelivered, Data: done}
}

// applyCommand routes one admitted command. The switch is exhaustive over
// the command kinds; an unknown kind is a programming error upstream.
func (s *Scheduler) applyCommand(cmd models.Command) *models.Event {
	switch cmd.Kind {
	case models.CommandSubmitNormal, models.CommandSubmitExpress, models.CommandSubmitAppointment:
		return s.submit(cmd)
	case models.CommandCancel:
		return s.cancel(cmd)
	case models.CommandStatus:
		return s.statusOf(cmd)
	default:
		return s.reject(cmd, models.NewRejection(models.RejectNotFound, "The request is not found."))
	}
}

// submit validates a delivery submission; the first failing check wins and
// nothing is mutated on rejection.
func (s *Scheduler) submit(cmd models.Command) *models.Event {
	class := cmd.Kind.Class()

	var req *models.Request
	if class == models.ClassAppointment {
		req = models.NewAppointmentRequest(cmd.RequestID, cmd.Time, cmd.Duration, *cmd.Target)
	} else {
		req = models.NewRequest(cmd.RequestID, class, cmd.Time, cmd.Duration)
	}

	if req.Duration > req.MaxAllowedDuration() {
		return s.reject(cmd, models.NewRejection(models.RejectDurationExceeded,
			fmt.Sprintf("Delivery time cannot exceed %d minutes.", req.MaxAllowedDuration())))
	}

	if class == models.ClassAppointment {
		target := *cmd.Target

		// Even an immediate start must finish strictly before the target.
		if target.AbsoluteMinutes() <= cmd.Time.AbsoluteMinutes()+cmd.Duration {
			return s.reject(cmd, models.NewRejection(models.RejectAppointmentTooClose,
				"The scheduled delivery time is too close."))
		}

		if active := s.agent.Current(); active != nil && active.CompletionTime != nil {
			if target.AbsoluteMinutes() <= active.CompletionTime.AbsoluteMinutes()+cmd.Duration {
				return s.reject(cmd, models.NewRejection(models.RejectAppointmentActiveClash,
					"The scheduled delivery time is too close because other delivery is being made."))
			}
		}

		window, _ := req.ReservedWindow()
		if err := s.reservations.Reserve(window); err != nil {
			return s.reject(cmd, models.NewRejection(models.RejectAppointmentWindowClash,
				"The scheduled delivery time cannot be specified because the delivery person is busy making another delivery."))
		}
	}

	s.registry[req.ID] = req
	s.queueFor(class).Add(req)

	return &models.Event{Time: s.Clock, Type: models.EventRequestAccepted, Data: req}
}

func (s *Scheduler) cancel(cmd models.Command) *models.Event {
	req, ok := s.registry[cmd.RequestID]
	if !ok {
		return s.reject(cmd, models.NewRejection(models.RejectNotFound, "The request is not found."))
	}
	if req.Status != models.StatusAwaiting {
		return s.reject(cmd, models.NewRejection(models.RejectAlreadyProcessed,
			"The request that has been processed cannot be cancelled."))
	}

	if window, ok := req.ReservedWindow(); ok {
		s.reservations.Release(window)
	}
	s.queueFor(req.Class).RemoveByID(req.ID)
	delete(s.registry, req.ID)

	return &models.Event{Time: s.Clock, Type: models.EventRequestCancelled, Data: req}
}

func (s *Scheduler) statusOf(cmd models.Command) *models.Event {
	req, ok := s.registry[cmd.RequestID]
	if !ok {
		return s.reject(cmd, models.NewRejection(models.RejectNotFound, "The request is not found."))
	}
	return &models.Event{
		Time: s.Clock,
		Type: models.EventStatusReport,
		Data: &models.StatusReport{RequestID: req.ID, Status: req.Status},
	}
}

func (s *Scheduler) reject(cmd models.Command, rejection *models.RejectionError) *models.Event {
	return &models.Event{
		Time: s.Clock,
		Type: models.EventRequestRejected,
		Data: &models.RejectedSubmission{Command: cmd, Rejection: rejection},
	}
}

// dispatch makes at most one assignment per tick: an appointment that must
// start this exact minute beats everything, then the first express request
// clear of reserved windows, then the same over the normal queue.
func (s *Scheduler) dispatch() *models.Event {
	if !s.agent.Available() {
		return nil
	}

	req := s.appointmentQueue.PopExactTarget(s.Clock)
	if req == nil {
		req = s.expressQueue.PopFirstFit(s.Clock, s.reservations)
	}
	if req == nil {
		req = s.normalQueue.PopFirstFit(s.Clock, s.reservations)
	}
	if req == nil {
		return nil
	}

	completion := s.Clock.Add(req.Duration)
	req.CompletionTime = &completion
	s.agent.Assign(req)

	return &models.Event{Time: s.Clock, Type: models.EventRequestAssigned, Data: req}
}
