package factories

import (
	"math/rand"

	"github.com/chrisdamba/deliverysim/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

// CommandFactory synthesizes plausible command streams for load and soak
// runs: mostly valid submissions, a sprinkle of cancellations, status
// probes and over-limit durations so the rejection paths see traffic too.
type CommandFactory struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewCommandFactory(seed int64) *CommandFactory {
	return &CommandFactory{
		fake: faker.NewWithSeed(rand.NewSource(seed)),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// GenerateCommands produces a stream sorted by timestamp, starting at
// day 1 00:00 and staying within the configured horizon.
func (f *CommandFactory) GenerateCommands(config *models.GeneratorConfig) []models.Command {
	horizon := config.HorizonDays * 24 * 60
	if horizon <= 0 {
		horizon = 24 * 60
	}

	commands := make([]models.Command, 0, config.CommandCount)
	var knownIDs []string

	cursor := models.NewSimTime(1, 0, 0)
	for len(commands) < config.CommandCount {
		cursor = cursor.Add(f.fake.IntBetween(1, 30))
		if cursor.AbsoluteMinutes() >= horizon {
			break
		}

		roll := f.rng.Float64()
		switch {
		case roll < config.CancelRatio && len(knownIDs) > 0:
			commands = append(commands, models.Command{
				Time:      cursor,
				Kind:      models.CommandCancel,
				RequestID: knownIDs[f.rng.Intn(len(knownIDs))],
			})
		case roll < config.CancelRatio+config.StatusRatio && len(knownIDs) > 0:
			commands = append(commands, models.Command{
				Time:      cursor,
				Kind:      models.CommandStatus,
				RequestID: knownIDs[f.rng.Intn(len(knownIDs))],
			})
		case roll < config.CancelRatio+config.StatusRatio+config.AppointmentRatio:
			id := cuid.New()
			duration := f.fake.IntBetween(10, models.MaxAppointmentDuration)
			target := cursor.Add(duration + f.fake.IntBetween(30, 8*60))
			commands = append(commands, models.Command{
				Time:      cursor,
				Kind:      models.CommandSubmitAppointment,
				RequestID: id,
				Duration:  duration,
				Target:    &target,
			})
			knownIDs = append(knownIDs, id)
		default:
			id := cuid.New()
			kind := models.CommandSubmitNormal
			if f.rng.Float64() < config.ExpressRatio {
				kind = models.CommandSubmitExpress
			}
			duration := f.fake.IntBetween(10, models.MaxDuration)
			// A few over-limit submissions keep the rejection path honest.
			if f.rng.Float64() < 0.05 {
				duration = models.MaxDuration + f.fake.IntBetween(1, 60)
			}
			commands = append(commands, models.Command{
				Time:      cursor,
				Kind:      kind,
				RequestID: id,
				Duration:  duration,
			})
			knownIDs = append(knownIDs, id)
		}
	}

	return commands
}
