package layout

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/mudmap/internal/hint"
)

// MoveRoom applies one move directive to g. Step strings walk a cursor from
// the room's cell; "h" and "v" insert a row or column at the cursor, which
// may push the room itself along. An absolute target moves the room straight
// to that cell. Unknown step characters are logged and skipped.
//
// Postcondition: on success the room sits on the target cell (shifted by any
// growth); on error the room has not moved.
func MoveRoom(g *Grid, m hint.Move, logger *zap.Logger) error {
	if m.To.Invalid != "" {
		return fmt.Errorf("room %d: %s: %w", m.Room, m.To.Invalid, ErrBadDirective)
	}
	from, ok := g.Find(m.Room)
	if !ok {
		return fmt.Errorf("room %d: %w", m.Room, ErrNotPlaced)
	}

	to := from
	if m.To.At != nil {
		to = Pos{Row: m.To.At.Row, Col: m.To.At.Col}
	} else {
		steps, unknown := hint.ParseSteps(m.To.Steps)
		for _, r := range unknown {
			logger.Warn("unknown move step skipped",
				zap.Int("room", int(m.Room)),
				zap.String("step", string(r)),
				zap.String("to", m.To.Steps),
			)
		}
		for _, s := range steps {
			switch s {
			case hint.StepInsertRow:
				g.InsertRow(to.Row)
			case hint.StepInsertCol:
				g.InsertCol(to.Col)
			case hint.StepPrint:
				logger.Debug("grid", zap.Int("room", int(m.Room)), zap.String("grid", g.String()))
			default:
				dRow, dCol := s.Delta()
				to = to.Add(dRow, dCol)
			}
		}
		from, _ = g.Find(m.Room)
	}

	if _, err := g.Move(from, to); err != nil {
		return fmt.Errorf("room %d: %w", m.Room, err)
	}
	return nil
}

// applyMoves runs each move in order, logging and skipping those that fail.
func applyMoves(g *Grid, moves []hint.Move, logger *zap.Logger) {
	for _, m := range moves {
		if err := MoveRoom(g, m, logger); err != nil {
			logger.Warn("move skipped",
				zap.Int("room", int(m.Room)),
				zap.Stringer("to", m.To),
				zap.Error(err),
			)
		}
	}
}
