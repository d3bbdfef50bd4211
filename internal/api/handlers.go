package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/whosfree/internal/catchphrase"
	"github.com/julianstephens/whosfree/internal/timetable"
)

type addPhraseRequest struct {
	Phrase string `json:"phrase"`
}

func (s *Server) health(c *fiber.Ctx) error {
	ds := s.holder.Current()
	return c.JSON(fiber.Map{
		"success": true,
		"version": s.holder.Version(),
		"people":  len(ds.Roster),
		"loaded":  ds.LoadedAt,
	})
}

func (s *Server) people(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    s.holder.Current().Roster,
	})
}

// slot reads week, day and period query parameters, resolving them against
// the configured labels.
func (s *Server) slot(c *fiber.Ctx, engine *timetable.Engine) (string, string, int) {
	settings := engine.Settings()
	return settings.ResolveWeek(c.Query("week")), settings.ResolveDay(c.Query("day")), c.QueryInt("period", 0)
}

func (s *Server) availability(c *fiber.Ctx) (timetable.Availability, error) {
	engine := s.engine.Load()
	ds := s.holder.Current()
	week, day, period := s.slot(c, engine)
	return engine.FindByAvailability(ds.Roster, ds.Snapshot, week, day, period)
}

func (s *Server) free(c *fiber.Ctx) error {
	a, err := s.availability(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    a.Free,
		"missing": a.Missing,
	})
}

func (s *Server) lessons(c *fiber.Ctx) error {
	a, err := s.availability(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    a.Busy,
		"missing": a.Missing,
	})
}

func (s *Server) day(c *fiber.Ctx) error {
	engine := s.engine.Load()
	ds := s.holder.Current()
	week, day, _ := s.slot(c, engine)
	if week == "" || day == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please select who you are, the Week, and the Day.")
	}

	person, ok := ds.Roster.Lookup(strings.TrimSpace(c.Params("person")))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Person not found")
	}

	view := engine.BuildDayView(ds.Snapshot, person.ID, week, day)
	return c.JSON(fiber.Map{
		"success": true,
		"person":  person,
		"week":    week,
		"day":     day,
		"found":   view.Found(),
		"outcome": view.Outcome,
		"data":    view.Collect(),
	})
}

func (s *Server) search(c *fiber.Ctx) error {
	engine := s.engine.Load()
	ds := s.holder.Current()
	week, day, _ := s.slot(c, engine)

	matches, err := engine.FindBySubjectSubstring(ds.Roster, ds.Snapshot, week, day, c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    matches,
	})
}

func (s *Server) catchphrases(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    s.holder.Current().Catchphrases,
	})
}

func (s *Server) randomCatchphrase(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    catchphrase.Random(s.holder.Current().Catchphrases),
	})
}

func (s *Server) addCatchphrase(c *fiber.Ctx) error {
	var req addPhraseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	phrase, err := catchphrase.Normalize(req.Phrase)
	if err != nil {
		return err
	}

	added, err := s.store.AddCatchphrase(phrase)
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if added {
		status = fiber.StatusCreated
		// Publish without waiting for the change feed.
		ds := *s.holder.Current()
		ds.Catchphrases = append(append([]string{}, ds.Catchphrases...), phrase)
		s.holder.Replace(&ds)
	}

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"added":   added,
		"phrase":  phrase,
	})
}

func (s *Server) settings(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    s.engine.Load().Settings(),
	})
}
